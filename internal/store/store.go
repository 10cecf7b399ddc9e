package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"checklists-cli/internal/model"
)

const (
	dataFileName      = "checklists.json"
	prefsFileName     = "prefs.sqlite"
	remindersFileName = "reminders.sqlite"

	fileVersion = 1
)

// File is the on-disk shape of the checklists file.
type File struct {
	Version    int               `json:"Version,omitempty"`
	Checklists []model.Checklist `json:"Checklists"`
}

// Store persists the checklist graph as a single JSON file inside Dir.
// It is not safe for concurrent writers.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return ioErr("mkdir", s.Dir, err)
	}
	return nil
}

func (s Store) DataPath() string {
	return filepath.Join(s.Dir, dataFileName)
}

func (s Store) BackupPath() string {
	return s.DataPath() + ".bak"
}

func (s Store) PrefsPath() string {
	return filepath.Join(s.Dir, prefsFileName)
}

func (s Store) RemindersPath() string {
	return filepath.Join(s.Dir, remindersFileName)
}

// Load reads every checklist in file order. A missing file is the first-run
// case and yields an empty slice.
func (s Store) Load() ([]model.Checklist, error) {
	return s.loadPath(s.DataPath())
}

func (s Store) loadPath(path string) ([]model.Checklist, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Checklist{}, nil
		}
		return nil, ioErr("read", path, err)
	}
	f, err := decodeFile(path, b)
	if err != nil {
		return nil, err
	}
	return f.Checklists, nil
}

// Save replaces the checklists file with lists. On failure the previous file
// is left as it was.
func (s Store) Save(lists []model.Checklist) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	if lists == nil {
		lists = []model.Checklist{}
	}
	b, err := json.MarshalIndent(File{Version: fileVersion, Checklists: lists}, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	path := s.DataPath()

	// Best-effort safety net: keep the previous generation around for manual recovery.
	_ = backupFile(path, s.BackupPath())

	if err := atomicWriteFile(path, dataFileName+".*.tmp", b, 0o644); err != nil {
		return ioErr("write", path, err)
	}
	return nil
}
