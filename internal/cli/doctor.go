package cli

import (
	"time"

	"checklists-cli/internal/model"
	"checklists-cli/internal/reminder"
	"checklists-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the checklists file, preferences and pending reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir, err := app.dataDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}

			prefs, err := store.OpenPrefs(ctx, s.PrefsPath())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer prefs.Close()

			report := store.Doctor(ctx, s, prefs)
			if report.Lists != nil {
				reg, err := reminder.OpenSQLiteRegistry(ctx, s.RemindersPath())
				if err != nil {
					report.Add(store.DoctorIssue{Level: store.DoctorIssueLevelError, Code: "reminders_unreadable", Message: err.Error(), Path: s.RemindersPath()})
				} else {
					defer reg.Close()
					auditReminders(cmd, &report, reg, report.Lists)
				}
			}

			meta := map[string]any{
				"dir":       dir,
				"issues":    len(report.Issues),
				"hasErrors": report.HasErrors(),
			}
			hints := []string{
				"checklists reminders sync",
			}

			var out any = report
			if app.isText() {
				out = issueLines(report)
			}
			if err := writeData(cmd, app, out, meta, hints...); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}

// auditReminders adds a warning per reminder finding. `reminders sync`
// repairs all of them.
func auditReminders(cmd *cobra.Command, report *store.DoctorReport, reg *reminder.SQLiteRegistry, lists []model.Checklist) {
	var items []model.Item
	for _, c := range lists {
		items = append(items, c.Items...)
	}
	findings, err := reminder.Audit(cmd.Context(), reg, items, time.Now())
	if err != nil {
		report.Add(store.DoctorIssue{Level: store.DoctorIssueLevelError, Code: "reminders_unreadable", Message: err.Error(), Path: reg.Path()})
		return
	}
	for _, f := range findings {
		id := f.ItemID
		report.Add(store.DoctorIssue{
			Level:   store.DoctorIssueLevelWarn,
			Code:    f.Code,
			Message: f.Message,
			Path:    reg.Path(),
			ItemID:  &id,
		})
	}
}

func issueLines(report store.DoctorReport) []string {
	if len(report.Issues) == 0 {
		return []string{"ok: no issues found"}
	}
	lines := make([]string, 0, len(report.Issues))
	for _, it := range report.Issues {
		lines = append(lines, string(it.Level)+": "+it.Code+": "+it.Message)
	}
	return lines
}
