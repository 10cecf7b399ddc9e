package cli

import (
	"errors"
	"fmt"

	"checklists-cli/internal/datamodel"
	"checklists-cli/internal/model"
	"checklists-cli/internal/reminder"
	"checklists-cli/internal/store"

	"github.com/spf13/cobra"
)

// session is one opened data dir: the checklists file, the preference area,
// the reminder registry and the data model on top of them.
type session struct {
	store store.Store
	prefs *store.Prefs
	ids   *store.IDAllocator
	reg   *reminder.SQLiteRegistry
	model *datamodel.DataModel
}

func openSession(cmd *cobra.Command, app *App) (*session, error) {
	ctx := cmd.Context()

	dir, err := app.dataDir()
	if err != nil {
		return nil, err
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return nil, err
	}

	prefs, err := store.OpenPrefs(ctx, s.PrefsPath())
	if err != nil {
		return nil, err
	}
	reg, err := reminder.OpenSQLiteRegistry(ctx, s.RemindersPath())
	if err != nil {
		_ = prefs.Close()
		return nil, err
	}

	log := app.logger()
	clock := reminder.SystemClock{}
	ids := store.NewIDAllocator(prefs)
	m := datamodel.New(datamodel.Options{
		Store:     s,
		Prefs:     prefs,
		IDs:       ids,
		Reminders: reminder.NewReconciler(reg, clock, log),
		Sorter:    model.NewSorter(model.ParseLocale(app.Locale)),
		Clock:     clock,
		Logger:    log,
	})
	sess := &session{store: s, prefs: prefs, ids: ids, reg: reg, model: m}

	if err := m.Initialize(ctx); err != nil {
		sess.Close()
		if store.IsCorrupt(err) {
			return nil, fmt.Errorf("%w (run `checklists doctor` for details; a previous copy may be at %s)", err, s.BackupPath())
		}
		return nil, err
	}
	return sess, nil
}

func (s *session) Close() error {
	return errors.Join(s.reg.Close(), s.prefs.Close())
}

// save persists the checklists after a mutating command.
func (s *session) save() error {
	return s.model.Persist()
}

func (s *session) summaries() []model.ChecklistSummary {
	lists := s.model.Lists()
	sel := s.model.SelectedIndex()
	out := make([]model.ChecklistSummary, 0, len(lists))
	for i, c := range lists {
		out = append(out, model.Summarize(i, c, i == sel))
	}
	return out
}

func (s *session) detail(i int) (model.ChecklistDetail, error) {
	c, err := s.model.Checklist(i)
	if err != nil {
		return model.ChecklistDetail{}, err
	}
	return model.Detail(i, c, i == s.model.SelectedIndex()), nil
}

// listOrSelected resolves a --list flag value; -1 means the selected checklist.
func (s *session) listOrSelected(list int) (int, error) {
	if list >= 0 {
		return list, nil
	}
	if _, i, ok := s.model.SelectedChecklist(); ok {
		return i, nil
	}
	return 0, errors.New("no checklist selected; pass --list <index> or run `checklists lists select <index>`")
}
