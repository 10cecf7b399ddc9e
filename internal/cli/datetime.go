package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reDateTime = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})(?::(\d{2}))?$`)
	reRelative = regexp.MustCompile(`^\+(\d+)([mhdw])$`)
)

// dateOnlyHour is the time of day given to date-only due dates.
const dateOnlyHour = 9

// parseDue parses a due date:
// - now
// - +N{m,h,d,w} (relative to now)
// - YYYY-MM-DD (09:00 local)
// - YYYY-MM-DD HH:MM[:SS] (local date+time)
// - RFC3339 / RFC3339Nano (timezone-aware)
func parseDue(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty due date")
	}
	if loc == nil {
		loc = time.Local
	}

	if strings.EqualFold(s, "now") {
		return now, nil
	}

	if m := reRelative.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid due date %q: %w", s, err)
		}
		unit := map[string]time.Duration{"m": time.Minute, "h": time.Hour, "d": 24 * time.Hour, "w": 7 * 24 * time.Hour}[m[2]]
		return now.Add(time.Duration(n) * unit), nil
	}

	if reDateOnly.MatchString(s) {
		d, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid due date %q: %w", s, err)
		}
		return time.Date(d.Year(), d.Month(), d.Day(), dateOnlyHour, 0, 0, 0, loc), nil
	}

	if m := reDateTime.FindStringSubmatch(s); m != nil {
		layout, value := "2006-01-02 15:04", m[1]+" "+m[2]
		if m[3] != "" {
			layout, value = "2006-01-02 15:04:05", value+":"+m[3]
		}
		t, err := time.ParseInLocation(layout, value, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid due date %q: %w", s, err)
		}
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid due date %q (expected now, +N[m|h|d|w], YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339)", s)
}
