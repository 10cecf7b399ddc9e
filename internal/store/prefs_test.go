package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestPrefs_Defaults(t *testing.T) {
	ctx := context.Background()
	p := openTestPrefs(t, filepath.Join(t.TempDir(), "prefs.sqlite"))

	snap, err := p.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := PrefsSnapshot{ChecklistIndex: -1, FirstTime: true, ChecklistItemID: 0}
	if snap != want {
		t.Fatalf("expected defaults %+v, got %+v", want, snap)
	}
}

func TestPrefs_SetAndReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.sqlite")

	p, err := OpenPrefs(ctx, path)
	if err != nil {
		t.Fatalf("OpenPrefs: %v", err)
	}
	if err := p.SetSelectedIndex(ctx, 2); err != nil {
		t.Fatalf("SetSelectedIndex: %v", err)
	}
	if err := p.SetFirstRun(ctx, false); err != nil {
		t.Fatalf("SetFirstRun: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p = openTestPrefs(t, path)
	idx, err := p.SelectedIndex(ctx)
	if err != nil {
		t.Fatalf("SelectedIndex: %v", err)
	}
	if idx != 2 {
		t.Fatalf("expected index 2, got %d", idx)
	}
	first, err := p.FirstRun(ctx)
	if err != nil {
		t.Fatalf("FirstRun: %v", err)
	}
	if first {
		t.Fatalf("expected FirstTime=false after reopen")
	}
}

func TestPrefs_UnknownKey(t *testing.T) {
	p := openTestPrefs(t, filepath.Join(t.TempDir(), "prefs.sqlite"))
	if _, err := p.Int(context.Background(), "NoSuchKey"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestPrefs_UnparsableValueIsCorrupt(t *testing.T) {
	ctx := context.Background()
	p := openTestPrefs(t, filepath.Join(t.TempDir(), "prefs.sqlite"))
	if err := p.set(ctx, nil, KeyChecklistIndex, "two"); err != nil {
		t.Fatalf("set: %v", err)
	}
	_, err := p.SelectedIndex(ctx)
	var ce *CorruptDataError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CorruptDataError, got %T: %v", err, err)
	}
}

func TestPrefs_UpdateIntErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	p := openTestPrefs(t, filepath.Join(t.TempDir(), "prefs.sqlite"))
	if err := p.SetInt(ctx, KeyChecklistItemID, 9); err != nil {
		t.Fatalf("SetInt: %v", err)
	}

	boom := errors.New("boom")
	err := p.UpdateInt(ctx, KeyChecklistItemID, func(cur int) (int, error) {
		return cur + 100, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, err := p.Int(ctx, KeyChecklistItemID)
	if err != nil {
		t.Fatalf("Int: %v", err)
	}
	if got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
}
