package reminder

import (
	"context"
	"fmt"
	"time"

	"checklists-cli/internal/model"
)

// Finding codes reported by Audit.
const (
	FindingOrphan    = "reminder_orphan"
	FindingMissing   = "reminder_missing"
	FindingDuplicate = "reminder_duplicate"
	FindingStale     = "reminder_stale"
)

type Finding struct {
	Code    string `json:"code"`
	ItemID  int    `json:"itemId"`
	Handle  Handle `json:"handle,omitempty"`
	Message string `json:"message"`
}

// Audit compares the registry with items without changing either. An entry
// still pending for a past-due item is not a finding; it is awaiting delivery.
func Audit(ctx context.Context, reg Registry, items []model.Item, now time.Time) ([]Finding, error) {
	entries, err := reg.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	byItem := map[int][]Entry{}
	for _, e := range entries {
		byItem[e.ItemID] = append(byItem[e.ItemID], e)
	}

	findings := []Finding{}
	known := map[int]bool{}
	for _, it := range items {
		known[it.ItemID] = true
		got := byItem[it.ItemID]
		switch {
		case len(got) == 0 && it.WantsReminder(now):
			findings = append(findings, Finding{
				Code:    FindingMissing,
				ItemID:  it.ItemID,
				Message: fmt.Sprintf("item %d wants a reminder at %s but none is pending", it.ItemID, it.DueDate.Format(time.RFC3339)),
			})
		case len(got) > 1:
			findings = append(findings, Finding{
				Code:    FindingDuplicate,
				ItemID:  it.ItemID,
				Message: fmt.Sprintf("item %d has %d pending reminders", it.ItemID, len(got)),
			})
		case len(got) == 1:
			e := got[0]
			if !it.ShouldRemind || !e.FireAt.Equal(it.DueDate) || e.Message != it.Text {
				findings = append(findings, Finding{
					Code:    FindingStale,
					ItemID:  it.ItemID,
					Handle:  e.Handle,
					Message: fmt.Sprintf("pending reminder for item %d does not match the item", it.ItemID),
				})
			}
		}
	}
	for _, e := range entries {
		if known[e.ItemID] {
			continue
		}
		findings = append(findings, Finding{
			Code:    FindingOrphan,
			ItemID:  e.ItemID,
			Handle:  e.Handle,
			Message: fmt.Sprintf("reminder %s belongs to unknown item %d", e.Handle, e.ItemID),
		})
	}
	return findings, nil
}
