package datamodel

import "checklists-cli/internal/model"

type EventKind string

const (
	EventChecklistAdded  EventKind = "checklist.added"
	EventChecklistEdited EventKind = "checklist.edited"
	EventItemAdded       EventKind = "item.added"
	EventItemEdited      EventKind = "item.edited"
	EventCanceled        EventKind = "canceled"
)

// Event describes a completed mutation. ListIndex is the checklist's index
// after the mutation (and after re-sorting), or -1 for EventCanceled.
type Event struct {
	Kind      EventKind        `json:"kind"`
	ListIndex int              `json:"listIndex"`
	Checklist *model.Checklist `json:"checklist,omitempty"`
	Item      *model.Item      `json:"item,omitempty"`
}

type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// Subscribe registers o for every subsequent event and returns a function
// that removes it.
func (m *DataModel) Subscribe(o Observer) func() {
	m.nextObserver++
	id := m.nextObserver
	m.observers = append(m.observers, subscription{id: id, o: o})
	return func() {
		for i, s := range m.observers {
			if s.id == id {
				m.observers = append(m.observers[:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

type subscription struct {
	id int
	o  Observer
}

// emit walks a snapshot so observers may unsubscribe from OnEvent.
func (m *DataModel) emit(e Event) {
	for _, s := range append([]subscription(nil), m.observers...) {
		s.o.OnEvent(e)
	}
}
