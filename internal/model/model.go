package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Record is implemented by every entity persisted in the checklists file.
// The store validates decoded entities through it and nothing else.
type Record interface {
	RecordKind() string
	Validate() error
}

const (
	IconNone   = "No Icon"
	IconFolder = "Folder"

	DefaultListName = "List"
)

// Icons is the fixed icon catalogue a checklist may reference.
var Icons = []string{
	IconNone,
	"Appointments",
	"Birthdays",
	"Chores",
	"Drinks",
	IconFolder,
	"Groceries",
	"Inbox",
	"Photos",
	"Trips",
}

func IsKnownIcon(name string) bool {
	for _, ic := range Icons {
		if ic == name {
			return true
		}
	}
	return false
}

type Item struct {
	Text         string    `json:"Text"`
	Checked      bool      `json:"Checked"`
	DueDate      time.Time `json:"DueDate"`
	ShouldRemind bool      `json:"ShouldRemind"`
	ItemID       int       `json:"ItemID"`
}

func (it *Item) Toggle() {
	it.Checked = !it.Checked
}

// WantsReminder reports whether the item should have a live reminder at now.
// A due date equal to now still qualifies.
func (it Item) WantsReminder(now time.Time) bool {
	return it.ShouldRemind && !it.DueDate.Before(now)
}

func (it Item) RecordKind() string { return "item" }

func (it Item) Validate() error {
	if it.ItemID < 0 {
		return fmt.Errorf("item %q: negative ItemID %d", it.Text, it.ItemID)
	}
	return nil
}

type Checklist struct {
	Name     string `json:"Name"`
	IconName string `json:"IconName"`
	Items    []Item `json:"Items"`
}

// NewChecklist returns an empty checklist; an empty icon means IconNone.
func NewChecklist(name, icon string) Checklist {
	if strings.TrimSpace(icon) == "" {
		icon = IconNone
	}
	return Checklist{Name: name, IconName: icon, Items: []Item{}}
}

func (c Checklist) RecordKind() string { return "checklist" }

func (c Checklist) Validate() error {
	var errs []error
	for _, it := range c.Items {
		if err := it.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("checklist %q: %w", c.Name, errors.Join(errs...))
	}
	return nil
}

func (c Checklist) CountUnchecked() int {
	n := 0
	for _, it := range c.Items {
		if !it.Checked {
			n++
		}
	}
	return n
}

// FindItem returns the index of the item with the given id, or -1.
func (c Checklist) FindItem(itemID int) int {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// ChecklistSummary is the overview row for one checklist.
type ChecklistSummary struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	IconName  string `json:"iconName"`
	Total     int    `json:"total"`
	Remaining int    `json:"remaining"`
	Status    string `json:"status"`
	Selected  bool   `json:"selected"`
}

func Summarize(index int, c Checklist, selected bool) ChecklistSummary {
	remaining := c.CountUnchecked()
	return ChecklistSummary{
		Index:     index,
		Name:      c.Name,
		IconName:  c.IconName,
		Total:     len(c.Items),
		Remaining: remaining,
		Status:    StatusText(len(c.Items), remaining),
		Selected:  selected,
	}
}

// StatusText is the one-line progress label shown under a checklist name.
func StatusText(total, remaining int) string {
	switch {
	case total == 0:
		return "(No Items)"
	case remaining == 0:
		return "All Done!"
	default:
		return fmt.Sprintf("%d Remaining", remaining)
	}
}

// ChecklistDetail is one checklist with its items, as shown by "lists show".
type ChecklistDetail struct {
	ChecklistSummary
	Items []Item `json:"items"`
}

func Detail(index int, c Checklist, selected bool) ChecklistDetail {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	return ChecklistDetail{ChecklistSummary: Summarize(index, c, selected), Items: items}
}
