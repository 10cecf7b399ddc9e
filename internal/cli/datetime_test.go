package cli

import (
	"testing"
	"time"
)

func TestParseDue(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, loc)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"now", now},
		{"NOW", now},
		{"+30m", now.Add(30 * time.Minute)},
		{"+2h", now.Add(2 * time.Hour)},
		{"+3d", now.Add(72 * time.Hour)},
		{"+1w", now.Add(7 * 24 * time.Hour)},
		{"2026-04-01", time.Date(2026, 4, 1, 9, 0, 0, 0, loc)},
		{"2026-04-01 18:30", time.Date(2026, 4, 1, 18, 30, 0, 0, loc)},
		{"2026-04-01T18:30", time.Date(2026, 4, 1, 18, 30, 0, 0, loc)},
		{"2026-04-01 18:30:15", time.Date(2026, 4, 1, 18, 30, 15, 0, loc)},
		{"2026-04-01T18:30:00Z", time.Date(2026, 4, 1, 18, 30, 0, 0, time.UTC)},
		{"  2026-04-01  ", time.Date(2026, 4, 1, 9, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		got, err := parseDue(tc.in, now, loc)
		if err != nil {
			t.Fatalf("parseDue(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parseDue(%q): want %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseDue_Invalid(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	for _, in := range []string{"", "tomorrow", "2026-13-01", "2026-04-01 25:00", "+5y", "-2h", "01/04/2026"} {
		if _, err := parseDue(in, now, time.UTC); err == nil {
			t.Fatalf("parseDue(%q): expected error", in)
		}
	}
}

func TestParseIDs(t *testing.T) {
	t.Parallel()

	if n, err := parseItemID("#12"); err != nil || n != 12 {
		t.Fatalf("parseItemID(#12) = %d, %v", n, err)
	}
	if n, err := parseIndex(" 3 "); err != nil || n != 3 {
		t.Fatalf("parseIndex(3) = %d, %v", n, err)
	}
	for _, in := range []string{"-1", "x", "", "1.5"} {
		if _, err := parseIndex(in); err == nil {
			t.Fatalf("parseIndex(%q): expected error", in)
		}
		if _, err := parseItemID(in); err == nil {
			t.Fatalf("parseItemID(%q): expected error", in)
		}
	}
}
