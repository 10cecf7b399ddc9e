package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"checklists-cli/internal/model"
)

// wireFile mirrors File with a pointer so a missing "Checklists" key can be
// told apart from an empty list.
type wireFile struct {
	Version    int                `json:"Version"`
	Checklists *[]model.Checklist `json:"Checklists"`
}

func decodeFile(path string, b []byte) (File, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return File{}, corrupt(path, "empty file", nil)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	var w wireFile
	if err := dec.Decode(&w); err != nil {
		return File{}, corrupt(path, "decode", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return File{}, corrupt(path, "trailing data after checklists record", nil)
	}
	if w.Checklists == nil {
		return File{}, corrupt(path, `missing "Checklists"`, nil)
	}
	if w.Version != 0 && w.Version != fileVersion {
		return File{}, corrupt(path, fmt.Sprintf("unsupported version %d", w.Version), nil)
	}

	lists := *w.Checklists
	if err := validateRecords(lists); err != nil {
		return File{}, corrupt(path, "invalid record", err)
	}
	for i := range lists {
		if lists[i].Items == nil {
			lists[i].Items = []model.Item{}
		}
	}
	return File{Version: fileVersion, Checklists: lists}, nil
}

func validateRecords(lists []model.Checklist) error {
	seen := map[int]string{}
	for i, c := range lists {
		var rec model.Record = c
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("%s %d: %w", rec.RecordKind(), i, err)
		}
		for _, it := range c.Items {
			if owner, dup := seen[it.ItemID]; dup {
				return fmt.Errorf("duplicate ItemID %d in %q and %q", it.ItemID, strings.TrimSpace(owner), strings.TrimSpace(c.Name))
			}
			seen[it.ItemID] = c.Name
		}
	}
	return nil
}

// MaxItemID returns the largest ItemID in lists, or -1 when there are no items.
func MaxItemID(lists []model.Checklist) int {
	hi := -1
	for _, c := range lists {
		for _, it := range c.Items {
			if it.ItemID > hi {
				hi = it.ItemID
			}
		}
	}
	return hi
}
