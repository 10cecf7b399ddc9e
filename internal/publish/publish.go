package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"checklists-cli/internal/model"
)

type WriteOptions struct {
	HideChecked bool
	Overwrite   bool
	Render      RenderOptions
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteChecklist writes checklist c to <toDir>/<slug>.md.
func WriteChecklist(c model.Checklist, index int, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	ro := opt.Render
	ro.HideChecked = opt.HideChecked
	outPath := filepath.Join(toDir, FileName(index, c.Name))
	if err := writeFile(outPath, []byte(RenderChecklistMarkdown(c, ro)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// WriteAll writes an index page plus one page per checklist. It stops at the
// first error.
func WriteAll(lists []model.Checklist, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	names := make([]string, len(lists))
	for i, c := range lists {
		names[i] = FileName(i, c.Name)
	}
	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderIndexMarkdown(lists, names)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	written := []string{indexPath}
	for i, c := range lists {
		res, err := WriteChecklist(c, i, toDir, opt)
		if err != nil {
			return WriteResult{Written: written}, err
		}
		written = append(written, res.Written...)
	}
	return WriteResult{Written: written}, nil
}

// FileName is the export file name for the checklist at index. The index
// keeps names unique when two checklists share a name.
func FileName(index int, name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "checklist"
	}
	return fmt.Sprintf("%02d-%s.md", index, slug)
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
