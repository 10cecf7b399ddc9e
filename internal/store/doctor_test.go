package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"checklists-cli/internal/model"
)

func issueCodes(r DoctorReport) map[string]DoctorIssueLevel {
	out := map[string]DoctorIssueLevel{}
	for _, it := range r.Issues {
		out[it.Code] = it.Level
	}
	return out
}

func TestDoctor_FreshDirOnlyWarns(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}
	p := openTestPrefs(t, s.PrefsPath())

	r := Doctor(context.Background(), s, p)
	if r.HasErrors() {
		t.Fatalf("expected no errors; got %#v", r.Issues)
	}
	if lvl := issueCodes(r)["data_missing"]; lvl != DoctorIssueLevelWarn {
		t.Fatalf("expected data_missing warning; got %#v", r.Issues)
	}
}

func TestDoctor_ReportsCorruptFile(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := os.WriteFile(s.DataPath(), []byte("{not json}\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	r := Doctor(context.Background(), s, nil)
	if !r.HasErrors() {
		t.Fatalf("expected errors; got %#v", r)
	}
	if issueCodes(r)["data_corrupt"] != DoctorIssueLevelError {
		t.Fatalf("expected data_corrupt; got %#v", r.Issues)
	}
	if r.Lists != nil {
		t.Fatalf("expected no lists for corrupt store")
	}
}

func TestDoctor_CounterBehindAndStaleSelection(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	lists := []model.Checklist{{Name: "a", IconName: model.IconFolder, Items: []model.Item{{Text: "x", ItemID: 4}}}}
	if err := s.Save(lists); err != nil {
		t.Fatalf("Save: %v", err)
	}
	p := openTestPrefs(t, filepath.Join(s.Dir, "prefs.sqlite"))
	if err := p.SetInt(ctx, KeyChecklistItemID, 4); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	if err := p.SetSelectedIndex(ctx, 3); err != nil {
		t.Fatalf("SetSelectedIndex: %v", err)
	}

	r := Doctor(ctx, s, p)
	codes := issueCodes(r)
	if codes["id_counter_behind"] != DoctorIssueLevelError {
		t.Fatalf("expected id_counter_behind error; got %#v", r.Issues)
	}
	if codes["selection_stale"] != DoctorIssueLevelWarn {
		t.Fatalf("expected selection_stale warning; got %#v", r.Issues)
	}
	if len(r.Lists) != 1 {
		t.Fatalf("expected decoded lists on report")
	}
}

func TestDoctor_HealthyStore(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	if err := s.Save([]model.Checklist{{Name: "a", IconName: model.IconFolder, Items: []model.Item{{Text: "x", ItemID: 0}}}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	p := openTestPrefs(t, s.PrefsPath())
	if err := p.SetInt(ctx, KeyChecklistItemID, 1); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	if err := p.SetSelectedIndex(ctx, 0); err != nil {
		t.Fatalf("SetSelectedIndex: %v", err)
	}

	r := Doctor(ctx, s, p)
	if len(r.Issues) != 0 {
		t.Fatalf("expected no issues; got %#v", r.Issues)
	}
}
