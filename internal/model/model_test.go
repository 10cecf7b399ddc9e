package model

import (
	"testing"
	"time"

	"golang.org/x/text/language"
)

func names(lists []Checklist) []string {
	out := make([]string, 0, len(lists))
	for _, l := range lists {
		out = append(out, l.Name)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSorter_CaseInsensitiveAscending(t *testing.T) {
	lists := []Checklist{{Name: "banana"}, {Name: "Apple"}, {Name: "cherry"}}
	NewSorter(language.Und).Sort(lists)

	want := []string{"Apple", "banana", "cherry"}
	if got := names(lists); !equalStrings(got, want) {
		t.Fatalf("sort order: want %v, got %v", want, got)
	}
}

func TestSorter_EqualNamesKeepPriorOrder(t *testing.T) {
	lists := []Checklist{
		{Name: "work", IconName: "first"},
		{Name: "Errands"},
		{Name: "Work", IconName: "second"},
		{Name: "WORK", IconName: "third"},
	}
	NewSorter(language.English).Sort(lists)

	if lists[0].Name != "Errands" {
		t.Fatalf("expected Errands first, got %v", names(lists))
	}
	gotIcons := []string{lists[1].IconName, lists[2].IconName, lists[3].IconName}
	want := []string{"first", "second", "third"}
	if !equalStrings(gotIcons, want) {
		t.Fatalf("tie-break should preserve prior order: want %v, got %v", want, gotIcons)
	}
}

func TestSorter_NumericAware(t *testing.T) {
	lists := []Checklist{{Name: "List 10"}, {Name: "List 2"}, {Name: "list 1"}}
	NewSorter(language.Und).Sort(lists)

	want := []string{"list 1", "List 2", "List 10"}
	if got := names(lists); !equalStrings(got, want) {
		t.Fatalf("numeric order: want %v, got %v", want, got)
	}
}

func TestParseLocale_FallsBackToUnd(t *testing.T) {
	if got := ParseLocale(""); got != language.Und {
		t.Fatalf("empty locale: want und, got %v", got)
	}
	if got := ParseLocale("!!"); got != language.Und {
		t.Fatalf("bad locale: want und, got %v", got)
	}
	if got := ParseLocale("sv"); got.String() != "sv" {
		t.Fatalf("sv: want Swedish, got %v", got)
	}
}

func TestStatusText(t *testing.T) {
	cases := []struct {
		total, remaining int
		want             string
	}{
		{0, 0, "(No Items)"},
		{3, 0, "All Done!"},
		{3, 2, "2 Remaining"},
	}
	for _, tc := range cases {
		if got := StatusText(tc.total, tc.remaining); got != tc.want {
			t.Fatalf("StatusText(%d,%d): want %q, got %q", tc.total, tc.remaining, tc.want, got)
		}
	}
}

func TestChecklist_CountUncheckedAndFind(t *testing.T) {
	c := NewChecklist("Groceries", "")
	if c.IconName != IconNone {
		t.Fatalf("expected default icon %q, got %q", IconNone, c.IconName)
	}
	c.Items = append(c.Items,
		Item{Text: "milk", ItemID: 4},
		Item{Text: "eggs", ItemID: 9, Checked: true},
	)
	if got := c.CountUnchecked(); got != 1 {
		t.Fatalf("CountUnchecked: want 1, got %d", got)
	}
	if got := c.FindItem(9); got != 1 {
		t.Fatalf("FindItem(9): want 1, got %d", got)
	}
	if got := c.FindItem(5); got != -1 {
		t.Fatalf("FindItem(5): want -1, got %d", got)
	}

	c.Items[1].Toggle()
	if c.Items[1].Checked {
		t.Fatalf("Toggle should uncheck")
	}
}

func TestValidate_RejectsNegativeIDs(t *testing.T) {
	var rec Record = Checklist{Name: "x", Items: []Item{{Text: "bad", ItemID: -1}}}
	if err := rec.Validate(); err == nil {
		t.Fatalf("expected validation error for negative ItemID")
	}
	rec = Checklist{Name: "x", Items: []Item{{Text: "ok", ItemID: 0}}}
	if err := rec.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestItem_WantsReminder(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		it   Item
		want bool
	}{
		{"off", Item{ShouldRemind: false, DueDate: now.Add(time.Hour)}, false},
		{"future", Item{ShouldRemind: true, DueDate: now.Add(time.Hour)}, true},
		{"exactly now", Item{ShouldRemind: true, DueDate: now}, true},
		{"past", Item{ShouldRemind: true, DueDate: now.Add(-time.Second)}, false},
	}
	for _, tc := range cases {
		if got := tc.it.WantsReminder(now); got != tc.want {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestIsKnownIcon(t *testing.T) {
	if !IsKnownIcon("Groceries") {
		t.Fatalf("Groceries should be known")
	}
	if IsKnownIcon("groceries") {
		t.Fatalf("icon names are case-sensitive")
	}
}

func TestSorter_OrderIsPermutation(t *testing.T) {
	lists := []Checklist{{Name: "c"}, {Name: "a"}, {Name: "b"}}
	order := NewSorter(language.Und).Order(lists)

	want := []int{1, 2, 0}
	if len(order) != len(want) {
		t.Fatalf("want %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("want %v, got %v", want, order)
		}
	}
	if lists[0].Name != "c" {
		t.Fatalf("Order must not reorder its input")
	}
}

func TestDetail_Summarizes(t *testing.T) {
	c := Checklist{Name: "Trips", IconName: "Trips", Items: []Item{{Text: "a", Checked: true}, {Text: "b"}}}
	d := Detail(2, c, true)
	if d.Index != 2 || d.Total != 2 || d.Remaining != 1 || !d.Selected {
		t.Fatalf("unexpected detail summary: %+v", d.ChecklistSummary)
	}
	if d.Status != "1 Remaining" {
		t.Fatalf("status: got %q", d.Status)
	}
	if len(Detail(0, Checklist{Name: "empty"}, false).Items) != 0 {
		t.Fatalf("expected empty items")
	}
}
