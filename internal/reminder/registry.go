// Package reminder keeps the external scheduled-notification registry in step
// with checklist items. At most one live entry exists per item id.
package reminder

import (
	"context"
	"errors"
	"time"
)

// Handle identifies one registered entry. Handles are opaque and never reused.
type Handle string

// Entry is one pending notification. ItemID is the payload used to match an
// entry back to its item.
type Entry struct {
	Handle  Handle    `json:"handle"`
	ItemID  int       `json:"itemId"`
	FireAt  time.Time `json:"fireAt"`
	Message string    `json:"message"`
}

// Registry is the scheduled-notification service.
type Registry interface {
	Register(ctx context.Context, itemID int, fireAt time.Time, message string) (Handle, error)
	Cancel(ctx context.Context, h Handle) error
	List(ctx context.Context) ([]Entry, error)
}

var ErrUnknownHandle = errors.New("unknown reminder handle")
