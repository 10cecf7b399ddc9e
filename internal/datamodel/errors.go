package datamodel

import "errors"

var (
	ErrIndexOutOfRange = errors.New("checklist index out of range")
	ErrItemNotFound    = errors.New("item not found")
	ErrEmptyName       = errors.New("checklist name must not be empty")
	ErrEmptyText       = errors.New("item text must not be empty")
	ErrUnknownIcon     = errors.New("unknown icon")
	ErrNotInitialized  = errors.New("data model not initialized")
)
