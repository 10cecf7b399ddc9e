package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"checklists-cli/internal/model"
)

// Reconciler derives registry state from items. For any item, after Schedule
// the registry holds one entry when the item wants a reminder and none
// otherwise.
type Reconciler struct {
	reg   Registry
	clock Clock
	log   *slog.Logger
}

func NewReconciler(reg Registry, clock Clock, logger *slog.Logger) *Reconciler {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{reg: reg, clock: clock, log: logger}
}

func (r *Reconciler) entriesFor(ctx context.Context, itemID int) ([]Entry, error) {
	all, err := r.reg.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	var out []Entry
	for _, e := range all {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

// FindFor returns the first pending entry for item, if any.
func (r *Reconciler) FindFor(ctx context.Context, item model.Item) (Entry, bool, error) {
	entries, err := r.entriesFor(ctx, item.ItemID)
	if err != nil {
		return Entry{}, false, err
	}
	if len(entries) == 0 {
		return Entry{}, false, nil
	}
	return entries[0], true, nil
}

// Cancel removes every pending entry for item. It is a no-op when there are none.
func (r *Reconciler) Cancel(ctx context.Context, item model.Item) error {
	entries, err := r.entriesFor(ctx, item.ItemID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := r.reg.Cancel(ctx, e.Handle); err != nil {
			return fmt.Errorf("cancel reminder for item %d: %w", item.ItemID, err)
		}
		r.log.Debug("reminder canceled", "itemId", item.ItemID, "handle", e.Handle)
	}
	return nil
}

// Schedule replaces any pending entry for item with one firing at its due
// date. It reports whether an entry was registered; an item that does not
// want a reminder, or whose due date is already past, ends up with none.
func (r *Reconciler) Schedule(ctx context.Context, item model.Item) (bool, error) {
	if err := r.Cancel(ctx, item); err != nil {
		return false, err
	}
	if !item.WantsReminder(r.clock.Now()) {
		return false, nil
	}
	h, err := r.reg.Register(ctx, item.ItemID, item.DueDate, item.Text)
	if err != nil {
		return false, fmt.Errorf("register reminder for item %d: %w", item.ItemID, err)
	}
	r.log.Debug("reminder scheduled", "itemId", item.ItemID, "fireAt", item.DueDate, "handle", h)
	return true, nil
}

type SyncReport struct {
	// Orphans were pending for item ids no longer in the store and have been canceled.
	Orphans []Entry `json:"orphans"`
	// Scheduled lists the item ids that hold a pending entry after the sync.
	Scheduled []int `json:"scheduled"`
}

// Sync cancels entries that belong to no known item and reschedules every
// item in items.
func (r *Reconciler) Sync(ctx context.Context, items []model.Item) (SyncReport, error) {
	report := SyncReport{Orphans: []Entry{}, Scheduled: []int{}}

	known := make(map[int]bool, len(items))
	for _, it := range items {
		known[it.ItemID] = true
	}
	all, err := r.reg.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list reminders: %w", err)
	}
	for _, e := range all {
		if known[e.ItemID] {
			continue
		}
		if err := r.reg.Cancel(ctx, e.Handle); err != nil {
			return report, fmt.Errorf("cancel orphan reminder %s: %w", e.Handle, err)
		}
		report.Orphans = append(report.Orphans, e)
	}

	for _, it := range items {
		ok, err := r.Schedule(ctx, it)
		if err != nil {
			return report, err
		}
		if ok {
			report.Scheduled = append(report.Scheduled, it.ItemID)
		}
	}
	r.log.Info("reminders synced", "orphans", len(report.Orphans), "scheduled", len(report.Scheduled))
	return report, nil
}
