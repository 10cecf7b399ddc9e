package store

import (
	"context"
	"math"
)

// IDAllocator hands out item ids from the persisted ChecklistItemID counter.
// Each id is returned exactly once, including across restarts.
type IDAllocator struct {
	prefs *Prefs
}

func NewIDAllocator(p *Prefs) *IDAllocator {
	return &IDAllocator{prefs: p}
}

// NextID returns the current counter value and persists counter+1 in the same
// transaction. Once the counter reaches math.MaxInt it fails with
// ErrAllocatorExhausted instead of wrapping.
func (a *IDAllocator) NextID(ctx context.Context) (int, error) {
	var id int
	err := a.prefs.UpdateInt(ctx, KeyChecklistItemID, func(cur int) (int, error) {
		if cur < 0 {
			return 0, corrupt(a.prefs.Path(), "negative item id counter", nil)
		}
		if cur == math.MaxInt {
			return 0, ErrAllocatorExhausted
		}
		id = cur
		return cur + 1, nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Peek returns the id the next call to NextID would hand out.
func (a *IDAllocator) Peek(ctx context.Context) (int, error) {
	return a.prefs.Int(ctx, KeyChecklistItemID)
}
