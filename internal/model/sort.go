package model

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders checklists by name the way a person reading the list expects:
// case-insensitive, numbers compared by value ("List 2" before "List 10"),
// using the collation rules of the configured language.
//
// A Sorter is not safe for concurrent use.
type Sorter struct {
	col *collate.Collator
}

func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{col: collate.New(tag, collate.IgnoreCase, collate.Numeric)}
}

// ParseLocale returns the language tag for s, falling back to language.Und
// for empty or malformed input.
func ParseLocale(s string) language.Tag {
	if s == "" {
		return language.Und
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und
	}
	return tag
}

func (s *Sorter) Less(a, b string) bool {
	return s.col.CompareString(a, b) < 0
}

// Order returns the stable sorted permutation of lists: Order(lists)[k] is
// the current index of the list that belongs at position k.
func (s *Sorter) Order(lists []Checklist) []int {
	order := make([]int, len(lists))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.Less(lists[order[a]].Name, lists[order[b]].Name)
	})
	return order
}

// Sort orders lists in place, ascending by name. Lists whose names compare
// equal keep their relative order.
func (s *Sorter) Sort(lists []Checklist) {
	sort.SliceStable(lists, func(i, j int) bool {
		return s.Less(lists[i].Name, lists[j].Name)
	})
}
