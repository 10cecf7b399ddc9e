// Package datamodel is the single entry point for reading and changing
// checklists. It keeps the in-memory lists sorted, hands out item ids, keeps
// reminders in step with items and persists the selection.
//
// A DataModel is not safe for concurrent use.
package datamodel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"checklists-cli/internal/model"
	"checklists-cli/internal/reminder"
)

// Persister loads and saves the whole checklist graph.
type Persister interface {
	Load() ([]model.Checklist, error)
	Save(lists []model.Checklist) error
}

// Prefs is the scalar preference area.
type Prefs interface {
	SelectedIndex(ctx context.Context) (int, error)
	SetSelectedIndex(ctx context.Context, i int) error
	FirstRun(ctx context.Context) (bool, error)
	SetFirstRun(ctx context.Context, first bool) error
}

// IDSource hands out item ids that are never reused.
type IDSource interface {
	NextID(ctx context.Context) (int, error)
}

type Options struct {
	Store     Persister
	Prefs     Prefs
	IDs       IDSource
	Reminders *reminder.Reconciler
	Sorter    *model.Sorter
	Clock     reminder.Clock
	Logger    *slog.Logger
}

type DataModel struct {
	store  Persister
	prefs  Prefs
	ids    IDSource
	rem    *reminder.Reconciler
	sorter *model.Sorter
	clock  reminder.Clock
	log    *slog.Logger

	lists    []model.Checklist
	selected int
	ready    bool

	observers    []subscription
	nextObserver int
}

// ChecklistInput carries the user-editable fields of a checklist. On edit an
// empty IconName keeps the current icon.
type ChecklistInput struct {
	Name     string
	IconName string
}

// ItemInput describes a new item. A zero DueDate means now.
type ItemInput struct {
	Text         string
	Checked      bool
	DueDate      time.Time
	ShouldRemind bool
}

// ItemEdit is a partial item update; nil fields are left unchanged.
type ItemEdit struct {
	Text         *string
	Checked      *bool
	DueDate      *time.Time
	ShouldRemind *bool
}

func New(opts Options) *DataModel {
	clock := opts.Clock
	if clock == nil {
		clock = reminder.SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DataModel{
		store:    opts.Store,
		prefs:    opts.Prefs,
		ids:      opts.IDs,
		rem:      opts.Reminders,
		sorter:   opts.Sorter,
		clock:    clock,
		log:      logger,
		selected: -1,
	}
}

// Initialize loads the store. On the very first run it creates the default
// list, selects it and saves immediately. The lists are sorted afterwards.
func (m *DataModel) Initialize(ctx context.Context) error {
	lists, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("load checklists: %w", err)
	}
	sel, err := m.prefs.SelectedIndex(ctx)
	if err != nil {
		return fmt.Errorf("read selection: %w", err)
	}
	first, err := m.prefs.FirstRun(ctx)
	if err != nil {
		return fmt.Errorf("read first-run flag: %w", err)
	}

	m.selected = sel

	if first {
		// A run that saved the default list but died before clearing the
		// flag left it on disk already.
		def := indexOfName(lists, model.DefaultListName)
		if def < 0 {
			lists = append(lists, model.NewChecklist(model.DefaultListName, model.IconNone))
			def = len(lists) - 1
		}
		sorted, def, _ := m.sortLists(lists, def)
		if err := m.setSelected(ctx, def); err != nil {
			return err
		}
		m.lists = sorted
		if err := m.store.Save(m.lists); err != nil {
			return fmt.Errorf("save first-run checklist: %w", err)
		}
		if err := m.prefs.SetFirstRun(ctx, false); err != nil {
			return fmt.Errorf("clear first-run flag: %w", err)
		}
		m.log.Info("first run: created default checklist", "name", model.DefaultListName)
	} else {
		sorted, _, moved := m.sortLists(lists, -1)
		if err := m.commit(ctx, sorted, moved); err != nil {
			return err
		}
	}

	m.ready = true
	m.log.Debug("checklists loaded", "lists", len(m.lists), "selected", m.selected)
	return nil
}

func (m *DataModel) Ready() bool { return m.ready }

// Persist writes every checklist to the store.
func (m *DataModel) Persist() error {
	if !m.ready {
		return ErrNotInitialized
	}
	if err := m.store.Save(m.lists); err != nil {
		return fmt.Errorf("save checklists: %w", err)
	}
	m.log.Debug("checklists saved", "lists", len(m.lists))
	return nil
}

// Reminders returns the reconciler used for item reminders.
func (m *DataModel) Reminders() *reminder.Reconciler { return m.rem }

// Lists returns a copy of every checklist in display order.
func (m *DataModel) Lists() []model.Checklist {
	out := make([]model.Checklist, len(m.lists))
	for i, c := range m.lists {
		out[i] = cloneChecklist(c)
	}
	return out
}

func (m *DataModel) Len() int { return len(m.lists) }

func (m *DataModel) Checklist(i int) (model.Checklist, error) {
	if err := m.checkIndex(i); err != nil {
		return model.Checklist{}, err
	}
	return cloneChecklist(m.lists[i]), nil
}

func (m *DataModel) Items(i int) ([]model.Item, error) {
	c, err := m.Checklist(i)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

// AllItems returns every item of every checklist in display order.
func (m *DataModel) AllItems() []model.Item {
	var out []model.Item
	for _, c := range m.lists {
		out = append(out, c.Items...)
	}
	if out == nil {
		out = []model.Item{}
	}
	return out
}

// LocateItem finds the checklist holding itemID.
func (m *DataModel) LocateItem(itemID int) (int, model.Item, error) {
	for i, c := range m.lists {
		if j := c.FindItem(itemID); j >= 0 {
			return i, c.Items[j], nil
		}
	}
	return -1, model.Item{}, fmt.Errorf("%w: %d", ErrItemNotFound, itemID)
}

// SelectedIndex returns the persisted selection as stored. It may be stale;
// SelectedChecklist re-validates it.
func (m *DataModel) SelectedIndex() int { return m.selected }

func (m *DataModel) SelectedChecklist() (model.Checklist, int, bool) {
	if m.selected < 0 || m.selected >= len(m.lists) {
		return model.Checklist{}, -1, false
	}
	return cloneChecklist(m.lists[m.selected]), m.selected, true
}

// SetSelectedIndex selects checklist i, or clears the selection with -1.
func (m *DataModel) SetSelectedIndex(ctx context.Context, i int) error {
	if i != -1 {
		if err := m.checkIndex(i); err != nil {
			return err
		}
	}
	return m.setSelected(ctx, i)
}

func (m *DataModel) AddChecklist(ctx context.Context, in ChecklistInput) (model.Checklist, int, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return model.Checklist{}, -1, err
	}
	icon := strings.TrimSpace(in.IconName)
	if icon == "" {
		icon = model.IconFolder
	}
	if !model.IsKnownIcon(icon) {
		return model.Checklist{}, -1, fmt.Errorf("%w: %q", ErrUnknownIcon, icon)
	}

	n := len(m.lists)
	next := append(m.lists[:n:n], model.NewChecklist(name, icon))
	sorted, idx, sel := m.sortLists(next, n)
	if err := m.commit(ctx, sorted, sel); err != nil {
		return model.Checklist{}, -1, err
	}
	c := cloneChecklist(m.lists[idx])
	m.log.Info("checklist added", "name", name, "icon", icon, "index", idx)
	m.emit(Event{Kind: EventChecklistAdded, ListIndex: idx, Checklist: &c})
	return c, idx, nil
}

func (m *DataModel) EditChecklist(ctx context.Context, i int, in ChecklistInput) (model.Checklist, int, error) {
	if err := m.checkIndex(i); err != nil {
		return model.Checklist{}, -1, err
	}
	name, err := cleanName(in.Name)
	if err != nil {
		return model.Checklist{}, -1, err
	}
	icon := strings.TrimSpace(in.IconName)
	if icon == "" {
		icon = m.lists[i].IconName
	}
	if !model.IsKnownIcon(icon) {
		return model.Checklist{}, -1, fmt.Errorf("%w: %q", ErrUnknownIcon, icon)
	}

	next := make([]model.Checklist, len(m.lists))
	copy(next, m.lists)
	next[i].Name = name
	next[i].IconName = icon
	sorted, idx, sel := m.sortLists(next, i)
	if err := m.commit(ctx, sorted, sel); err != nil {
		return model.Checklist{}, -1, err
	}
	c := cloneChecklist(m.lists[idx])
	m.log.Info("checklist edited", "name", name, "icon", icon, "index", idx)
	m.emit(Event{Kind: EventChecklistEdited, ListIndex: idx, Checklist: &c})
	return c, idx, nil
}

// RemoveChecklist cancels the reminders of every item in checklist i and then
// removes it. If a cancel or the selection update fails the reminders already
// canceled are scheduled again and the checklist stays.
func (m *DataModel) RemoveChecklist(ctx context.Context, i int) (model.Checklist, error) {
	if err := m.checkIndex(i); err != nil {
		return model.Checklist{}, err
	}
	c := m.lists[i]

	for k, it := range c.Items {
		if err := m.rem.Cancel(ctx, it); err != nil {
			m.restoreReminders(ctx, c.Name, c.Items[:k])
			return model.Checklist{}, fmt.Errorf("remove checklist %q: %w", c.Name, err)
		}
	}

	sel := m.selected
	switch {
	case sel == i:
		sel = -1
	case sel > i && sel < len(m.lists):
		sel--
	}
	next := append(m.lists[:i:i], m.lists[i+1:]...)
	if err := m.commit(ctx, next, sel); err != nil {
		m.restoreReminders(ctx, c.Name, c.Items)
		return model.Checklist{}, fmt.Errorf("remove checklist %q: %w", c.Name, err)
	}
	m.log.Info("checklist removed", "name", c.Name, "items", len(c.Items))
	return c, nil
}

func (m *DataModel) restoreReminders(ctx context.Context, list string, items []model.Item) {
	var errs []error
	for _, it := range items {
		if _, err := m.rem.Schedule(ctx, it); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		m.log.Error("restore reminders after failed removal", "checklist", list, "error", errors.Join(errs...))
	}
}

// AddItem appends a new item to checklist list. The item id is consumed even
// when scheduling its reminder fails; the checklist is then left unchanged.
func (m *DataModel) AddItem(ctx context.Context, list int, in ItemInput) (model.Item, error) {
	if err := m.checkIndex(list); err != nil {
		return model.Item{}, err
	}
	text, err := cleanText(in.Text)
	if err != nil {
		return model.Item{}, err
	}
	due := in.DueDate
	if due.IsZero() {
		due = m.clock.Now()
	}

	id, err := m.ids.NextID(ctx)
	if err != nil {
		return model.Item{}, fmt.Errorf("allocate item id: %w", err)
	}
	it := model.Item{Text: text, Checked: in.Checked, DueDate: due, ShouldRemind: in.ShouldRemind, ItemID: id}
	if _, err := m.rem.Schedule(ctx, it); err != nil {
		return model.Item{}, err
	}

	m.lists[list].Items = append(m.lists[list].Items, it)
	m.log.Info("item added", "itemId", id, "list", list)
	out := it
	m.emit(Event{Kind: EventItemAdded, ListIndex: list, Item: &out})
	return it, nil
}

// EditItem applies edit to the item. If its reminder cannot be reconciled the
// previous item and reminder are restored.
func (m *DataModel) EditItem(ctx context.Context, list, itemID int, edit ItemEdit) (model.Item, error) {
	j, err := m.itemIndex(list, itemID)
	if err != nil {
		return model.Item{}, err
	}
	prev := m.lists[list].Items[j]
	next := prev
	if edit.Text != nil {
		text, err := cleanText(*edit.Text)
		if err != nil {
			return model.Item{}, err
		}
		next.Text = text
	}
	if edit.Checked != nil {
		next.Checked = *edit.Checked
	}
	if edit.DueDate != nil {
		next.DueDate = *edit.DueDate
	}
	if edit.ShouldRemind != nil {
		next.ShouldRemind = *edit.ShouldRemind
	}

	if _, err := m.rem.Schedule(ctx, next); err != nil {
		if _, rerr := m.rem.Schedule(ctx, prev); rerr != nil {
			m.log.Error("restore reminder after failed edit", "itemId", itemID, "error", rerr)
			return model.Item{}, errors.Join(err, rerr)
		}
		return model.Item{}, err
	}

	m.lists[list].Items[j] = next
	m.log.Info("item edited", "itemId", itemID, "list", list)
	out := next
	m.emit(Event{Kind: EventItemEdited, ListIndex: list, Item: &out})
	return next, nil
}

// ToggleChecked flips the item's checkmark. Reminders are not affected.
func (m *DataModel) ToggleChecked(ctx context.Context, list, itemID int) (model.Item, error) {
	j, err := m.itemIndex(list, itemID)
	if err != nil {
		return model.Item{}, err
	}
	m.lists[list].Items[j].Toggle()
	it := m.lists[list].Items[j]
	m.log.Debug("item toggled", "itemId", itemID, "checked", it.Checked)
	out := it
	m.emit(Event{Kind: EventItemEdited, ListIndex: list, Item: &out})
	return it, nil
}

// RemoveItem cancels the item's reminder and then removes it. If the cancel
// fails the item stays.
func (m *DataModel) RemoveItem(ctx context.Context, list, itemID int) (model.Item, error) {
	j, err := m.itemIndex(list, itemID)
	if err != nil {
		return model.Item{}, err
	}
	it := m.lists[list].Items[j]
	if err := m.rem.Cancel(ctx, it); err != nil {
		return model.Item{}, fmt.Errorf("remove item %d: %w", itemID, err)
	}
	items := m.lists[list].Items
	m.lists[list].Items = append(items[:j:j], items[j+1:]...)
	m.log.Info("item removed", "itemId", itemID, "list", list)
	return it, nil
}

// Cancel reports that the user abandoned an add or edit.
func (m *DataModel) Cancel() {
	m.emit(Event{Kind: EventCanceled, ListIndex: -1})
}

func (m *DataModel) checkIndex(i int) error {
	if i < 0 || i >= len(m.lists) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(m.lists))
	}
	return nil
}

func (m *DataModel) itemIndex(list, itemID int) (int, error) {
	if err := m.checkIndex(list); err != nil {
		return -1, err
	}
	j := m.lists[list].FindItem(itemID)
	if j < 0 {
		return -1, fmt.Errorf("%w: %d in %q", ErrItemNotFound, itemID, m.lists[list].Name)
	}
	return j, nil
}

func (m *DataModel) setSelected(ctx context.Context, i int) error {
	if err := m.prefs.SetSelectedIndex(ctx, i); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	m.selected = i
	return nil
}

// sortLists returns lists sorted by name, the new index of the list that was
// at track and the new index of the selected list. A stale selection is
// returned unchanged.
func (m *DataModel) sortLists(lists []model.Checklist, track int) ([]model.Checklist, int, int) {
	order := m.sorter.Order(lists)
	sorted := make([]model.Checklist, len(order))
	tracked, sel := -1, m.selected
	for pos, prev := range order {
		sorted[pos] = lists[prev]
		if prev == track {
			tracked = pos
		}
		if prev == m.selected {
			sel = pos
		}
	}
	return sorted, tracked, sel
}

// commit saves sel when it moved and then installs lists. If the selection
// cannot be saved the model is left as it was.
func (m *DataModel) commit(ctx context.Context, lists []model.Checklist, sel int) error {
	if sel != m.selected {
		if err := m.setSelected(ctx, sel); err != nil {
			return err
		}
	}
	m.lists = lists
	return nil
}

func indexOfName(lists []model.Checklist, name string) int {
	for i, c := range lists {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func cleanName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyName
	}
	return s, nil
}

func cleanText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyText
	}
	return s, nil
}

func cloneChecklist(c model.Checklist) model.Checklist {
	items := make([]model.Item, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
