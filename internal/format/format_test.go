package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"checklists-cli/internal/model"
	"checklists-cli/internal/reminder"
)

type envelope struct {
	Data any `json:"data"`
}

func sampleSummary() model.ChecklistSummary {
	return model.Summarize(0, model.Checklist{
		Name:     "Groceries",
		IconName: "Groceries",
		Items:    []model.Item{{Text: "milk"}, {Text: "eggs", Checked: true}},
	}, true)
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, envelope{Data: sampleSummary()}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got struct {
		Data model.ChecklistSummary `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if got.Data.Status != "1 Remaining" || got.Data.Total != 2 {
		t.Fatalf("unexpected payload: %+v", got.Data)
	}
}

func TestWrite_EDNKeywords(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"iconName": "Folder", "ItemID": 3, "done": true, "note": nil}, "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:item-id 3 :done true :icon-name "Folder" :note nil}` + "\n"
	if buf.String() != want {
		t.Fatalf("edn: want %q, got %q", want, buf.String())
	}
}

func TestWriteEDN_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"a": []any{1, 2.5}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :a [\n    1\n    2.5\n  ]\n}\n"
	if buf.String() != want {
		t.Fatalf("pretty edn: want %q, got %q", want, buf.String())
	}
}

func TestWrite_YAMLUsesJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, envelope{Data: sampleSummary()}, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var got map[string]map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, buf.String())
	}
	if got["data"]["iconName"] != "Groceries" || got["data"]["remaining"] != 1 {
		t.Fatalf("unexpected yaml: %#v", got)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, 1, "xml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if Valid("xml") || !Valid("YAML") || !Valid("") {
		t.Fatalf("Valid disagrees with Write")
	}
}

func TestWriteText_ChecklistDetail(t *testing.T) {
	due := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	c := model.Checklist{
		Name:     "Trips",
		IconName: "Trips",
		Items: []model.Item{
			{Text: "passport", DueDate: due, ShouldRemind: true, ItemID: 4},
			{Text: "tickets", Checked: true, DueDate: due, ItemID: 5},
		},
	}
	var buf bytes.Buffer
	opts := TextOptions{Color: "never", Glyphs: "ascii", Location: time.UTC}
	if err := WriteText(&buf, model.Detail(1, c, true), opts); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	want := strings.Join([]string{
		"> 1  Trips [Trips]  1 Remaining",
		"  [ ] passport  #4  due 2026-05-01 09:30 (!)",
		"  [x] tickets  #5  due 2026-05-01 09:30",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("text:\nwant:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestWriteText_OverviewAndEmptyStates(t *testing.T) {
	opts := TextOptions{Color: "never", Glyphs: "unicode"}

	var buf bytes.Buffer
	lists := []model.ChecklistSummary{
		model.Summarize(0, model.Checklist{Name: "List", IconName: model.IconNone}, false),
		model.Summarize(1, model.Checklist{Name: "Done", IconName: "Chores", Items: []model.Item{{Checked: true}}}, true),
	}
	if err := WriteText(&buf, lists, opts); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	want := "  0  List  (No Items)\n▸ 1  Done [Chores]  All Done!\n"
	if buf.String() != want {
		t.Fatalf("overview: want %q, got %q", want, buf.String())
	}

	buf.Reset()
	if err := WriteText(&buf, []reminder.Entry{}, opts); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if buf.String() != "(no pending reminders)\n" {
		t.Fatalf("empty reminders: got %q", buf.String())
	}
}

func TestWriteText_TruncatesToWidth(t *testing.T) {
	var buf bytes.Buffer
	opts := TextOptions{Color: "never", Glyphs: "ascii", Width: 12}
	if err := WriteText(&buf, []string{"a rather long line of text", "short"}, opts); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	want := "a rather ...\nshort\n"
	if buf.String() != want {
		t.Fatalf("truncate: want %q, got %q", want, buf.String())
	}
}

func TestWriteText_FallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, map[string]int{"orphans": 2}, TextOptions{Color: "never"}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if buf.String() != "orphans: 2\n" {
		t.Fatalf("fallback: got %q", buf.String())
	}
}

func TestParseGlyphs(t *testing.T) {
	if ParseGlyphs(" ASCII ") != GlyphsASCII {
		t.Fatalf("expected ascii")
	}
	if ParseGlyphs("emoji") != GlyphsUnicode {
		t.Fatalf("unknown values should mean unicode")
	}
}
