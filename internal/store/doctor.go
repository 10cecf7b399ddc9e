package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"checklists-cli/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

var ErrDoctorIssuesFound = errors.New("doctor found issues")

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`
	ItemID  *int             `json:"itemId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`

	// Lists is the decoded store, nil when the file could not be loaded.
	Lists []model.Checklist `json:"-"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

func (r *DoctorReport) Add(issue DoctorIssue) {
	r.Issues = append(r.Issues, issue)
}

// Doctor checks the checklists file and the preference area without
// modifying either. Problems are reported as issues, not returned as errors.
func Doctor(ctx context.Context, s Store, p *Prefs) DoctorReport {
	report := DoctorReport{Issues: []DoctorIssue{}}

	path := s.DataPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		report.Add(DoctorIssue{
			Level:   DoctorIssueLevelWarn,
			Code:    "data_missing",
			Message: "no checklists file yet; it is created on first save",
			Path:    path,
		})
	}

	lists, err := s.Load()
	if err != nil {
		code := "data_unreadable"
		if IsCorrupt(err) {
			code = "data_corrupt"
		}
		report.Add(DoctorIssue{Level: DoctorIssueLevelError, Code: code, Message: err.Error(), Path: path})
		return report
	}
	report.Lists = lists

	if p == nil {
		return report
	}
	snap, err := p.Snapshot(ctx)
	if err != nil {
		report.Add(DoctorIssue{Level: DoctorIssueLevelError, Code: "prefs_unreadable", Message: err.Error(), Path: p.Path()})
		return report
	}

	if hi := MaxItemID(lists); hi >= 0 && snap.ChecklistItemID <= hi {
		id := hi
		report.Add(DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    "id_counter_behind",
			Message: fmt.Sprintf("ChecklistItemID counter %d is not above the largest ItemID %d; new items would reuse ids", snap.ChecklistItemID, hi),
			Path:    p.Path(),
			ItemID:  &id,
		})
	}

	if idx := snap.ChecklistIndex; idx != -1 && (idx < 0 || idx >= len(lists)) {
		report.Add(DoctorIssue{
			Level:   DoctorIssueLevelWarn,
			Code:    "selection_stale",
			Message: fmt.Sprintf("ChecklistIndex %d is out of range for %d checklists", idx, len(lists)),
			Path:    p.Path(),
		})
	}

	return report
}
