package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"checklists-cli/internal/model"
)

func sampleChecklist() model.Checklist {
	return model.Checklist{
		Name:     "Weekend trip",
		IconName: "Trips",
		Items: []model.Item{
			{Text: "pack *snacks*", DueDate: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC), ShouldRemind: true, ItemID: 1},
			{Text: "book cabin", Checked: true, DueDate: time.Date(2026, 4, 20, 18, 0, 0, 0, time.UTC), ItemID: 2},
		},
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderChecklistMarkdown_Golden(t *testing.T) {
	g := newGoldie(t)
	utc := RenderOptions{Location: time.UTC}

	g.Assert(t, "checklist", []byte(RenderChecklistMarkdown(sampleChecklist(), utc)))

	hide := utc
	hide.HideChecked = true
	g.Assert(t, "checklist_hide_checked", []byte(RenderChecklistMarkdown(sampleChecklist(), hide)))

	empty := model.NewChecklist(model.DefaultListName, model.IconNone)
	g.Assert(t, "checklist_empty", []byte(RenderChecklistMarkdown(empty, utc)))
}

func TestRenderIndexMarkdown_Golden(t *testing.T) {
	lists := []model.Checklist{sampleChecklist(), model.NewChecklist("List", model.IconNone)}
	names := []string{FileName(0, lists[0].Name), FileName(1, lists[1].Name)}
	newGoldie(t).Assert(t, "index", []byte(RenderIndexMarkdown(lists, names)))
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"Weekend trip":   "03-weekend-trip.md",
		"  Ünïcode! ok ": "03-ünïcode-ok.md",
		"???":            "03-checklist.md",
	}
	for in, want := range cases {
		if got := FileName(3, in); got != want {
			t.Fatalf("FileName(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestWriteAll_WritesIndexAndPagesAndRespectsOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	lists := []model.Checklist{sampleChecklist(), model.NewChecklist("List", model.IconNone)}
	opt := WriteOptions{Render: RenderOptions{Location: time.UTC}}

	res, err := WriteAll(lists, dir, opt)
	if err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	want := []string{
		filepath.Join(dir, "index.md"),
		filepath.Join(dir, "00-weekend-trip.md"),
		filepath.Join(dir, "01-list.md"),
	}
	if len(res.Written) != len(want) {
		t.Fatalf("written: want %v, got %v", want, res.Written)
	}
	for i := range want {
		if res.Written[i] != want[i] {
			t.Fatalf("written[%d]: want %q, got %q", i, want[i], res.Written[i])
		}
	}
	b, err := os.ReadFile(want[1])
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.Contains(string(b), "# Weekend trip") {
		t.Fatalf("unexpected page:\n%s", string(b))
	}

	if _, err := WriteAll(lists, dir, opt); err == nil || !strings.Contains(err.Error(), "file exists") {
		t.Fatalf("expected file exists error, got %v", err)
	}
	opt.Overwrite = true
	if _, err := WriteAll(lists, dir, opt); err != nil {
		t.Fatalf("WriteAll(overwrite): %v", err)
	}
}

func TestWriteChecklist_MissingDir(t *testing.T) {
	if _, err := WriteChecklist(sampleChecklist(), 0, "  ", WriteOptions{}); err == nil {
		t.Fatalf("expected error for missing --to")
	}
}

func TestRenderTerminal_PlainStyle(t *testing.T) {
	out, err := RenderTerminal(RenderChecklistMarkdown(sampleChecklist(), RenderOptions{Location: time.UTC}), 80, TerminalStyle("never"))
	if err != nil {
		t.Fatalf("RenderTerminal: %v", err)
	}
	for _, want := range []string{"Weekend trip", "book cabin", "1 Remaining"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered output:\n%s", want, out)
		}
	}
}
