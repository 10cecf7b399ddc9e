package format

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"checklists-cli/internal/model"
	"checklists-cli/internal/reminder"
)

const dueLayout = "2006-01-02 15:04"

type TextOptions struct {
	// Color is auto|always|never. auto follows the writer and NO_COLOR.
	Color string
	// Glyphs is unicode|ascii.
	Glyphs string
	// Width truncates each line to this many cells; 0 disables truncation.
	Width int
	// Location for due dates; nil means time.Local.
	Location *time.Location
}

// TextRenderer renders checklist payloads for people. Styles are bound to the
// writer's color profile.
type TextRenderer struct {
	glyphs GlyphSet
	width  int
	loc    *time.Location

	heading lipgloss.Style
	muted   lipgloss.Style
	done    lipgloss.Style
	accent  lipgloss.Style
	warn    lipgloss.Style
}

func NewTextRenderer(w io.Writer, opts TextOptions) *TextRenderer {
	r := lipgloss.NewRenderer(w)
	switch strings.ToLower(strings.TrimSpace(opts.Color)) {
	case "never":
		r.SetColorProfile(termenv.Ascii)
	case "always":
		r.SetColorProfile(termenv.ANSI256)
	default:
		if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
			r.SetColorProfile(termenv.Ascii)
		}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &TextRenderer{
		glyphs:  ParseGlyphs(opts.Glyphs),
		width:   opts.Width,
		loc:     loc,
		heading: r.NewStyle().Bold(true),
		muted:   r.NewStyle().Faint(true),
		done:    r.NewStyle().Faint(true).Strikethrough(true),
		accent:  r.NewStyle().Foreground(lipgloss.Color("39")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// WriteText renders v for a terminal. Payloads without a dedicated text form
// fall back to YAML.
func WriteText(w io.Writer, v any, opts TextOptions) error {
	s, ok := NewTextRenderer(w, opts).Render(v)
	if !ok {
		return WriteYAML(w, v)
	}
	_, err := io.WriteString(w, s)
	return err
}

// Render returns the text form of v and whether v has one.
func (t *TextRenderer) Render(v any) (string, bool) {
	var lines []string
	switch x := v.(type) {
	case []model.ChecklistSummary:
		if len(x) == 0 {
			lines = append(lines, t.muted.Render("(no checklists)"))
		}
		for _, s := range x {
			lines = append(lines, t.summaryLine(s))
		}
	case model.ChecklistSummary:
		lines = append(lines, t.summaryLine(x))
	case model.ChecklistDetail:
		lines = append(lines, t.summaryLine(x.ChecklistSummary))
		for _, it := range x.Items {
			lines = append(lines, "  "+t.itemLine(it))
		}
	case []model.Item:
		if len(x) == 0 {
			lines = append(lines, t.muted.Render("(No Items)"))
		}
		for _, it := range x {
			lines = append(lines, t.itemLine(it))
		}
	case model.Item:
		lines = append(lines, t.itemLine(x))
	case []reminder.Entry:
		if len(x) == 0 {
			lines = append(lines, t.muted.Render("(no pending reminders)"))
		}
		for _, e := range x {
			lines = append(lines, t.entryLine(e))
		}
	case []string:
		lines = append(lines, x...)
	case string:
		lines = append(lines, x)
	default:
		return "", false
	}

	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(t.fit(ln))
		b.WriteByte('\n')
	}
	return b.String(), true
}

func (t *TextRenderer) summaryLine(s model.ChecklistSummary) string {
	marker := " "
	if s.Selected {
		marker = t.accent.Render(t.glyphs.Selected())
	}
	status := t.muted.Render(s.Status)
	if s.Total > 0 && s.Remaining == 0 {
		status = t.accent.Render(s.Status)
	}
	icon := ""
	if s.IconName != "" && s.IconName != model.IconNone {
		icon = " " + t.muted.Render("["+s.IconName+"]")
	}
	return fmt.Sprintf("%s %d  %s%s  %s", marker, s.Index, t.heading.Render(s.Name), icon, status)
}

func (t *TextRenderer) itemLine(it model.Item) string {
	box := t.glyphs.Unchecked()
	text := it.Text
	if it.Checked {
		box = t.glyphs.Checked()
		text = t.done.Render(text)
	}
	line := fmt.Sprintf("%s %s  %s", box, text, t.muted.Render(fmt.Sprintf("#%d  due %s", it.ItemID, it.DueDate.In(t.loc).Format(dueLayout))))
	if it.ShouldRemind {
		line += " " + t.warn.Render(t.glyphs.Bell())
	}
	return line
}

func (t *TextRenderer) entryLine(e reminder.Entry) string {
	return fmt.Sprintf("%s %s %s  %s",
		e.FireAt.In(t.loc).Format(dueLayout),
		t.glyphs.Arrow(),
		e.Message,
		t.muted.Render(fmt.Sprintf("#%d", e.ItemID)),
	)
}

func (t *TextRenderer) fit(line string) string {
	if t.width <= 0 || xansi.StringWidth(line) <= t.width {
		return line
	}
	return xansi.Truncate(line, t.width, t.glyphs.Ellipsis())
}
