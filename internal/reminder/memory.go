package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRegistry is an in-process Registry. Entries are listed in
// registration order.
type MemoryRegistry struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{}
}

func (m *MemoryRegistry) Register(_ context.Context, itemID int, fireAt time.Time, message string) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := Handle(uuid.NewString())
	m.entries = append(m.entries, Entry{Handle: h, ItemID: itemID, FireAt: fireAt, Message: message})
	return h, nil
}

func (m *MemoryRegistry) Cancel(_ context.Context, h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.Handle == h {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return ErrUnknownHandle
}

func (m *MemoryRegistry) List(_ context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// Len returns the number of pending entries.
func (m *MemoryRegistry) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
