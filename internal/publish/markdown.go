package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"checklists-cli/internal/model"
)

const dueLayout = "2006-01-02 15:04"

type RenderOptions struct {
	// HideChecked leaves checked items out of the export.
	HideChecked bool
	// Location for due dates; nil means time.Local.
	Location *time.Location
}

func (o RenderOptions) loc() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// RenderChecklistMarkdown renders one checklist as a Markdown task list.
func RenderChecklistMarkdown(c model.Checklist, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + escapeInline(strings.TrimSpace(c.Name)))
	writeLn("")
	if c.IconName != "" && c.IconName != model.IconNone {
		writeLn("- Icon: " + c.IconName)
	}
	writeLn("- Status: " + model.StatusText(len(c.Items), c.CountUnchecked()))

	items := make([]model.Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.Checked && opt.HideChecked {
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return buf.String()
	}

	writeLn("")
	writeLn("## Items")
	writeLn("")
	for _, it := range items {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		meta := "due " + it.DueDate.In(opt.loc()).Format(dueLayout)
		if it.ShouldRemind {
			meta += ", reminder"
		}
		writeLn(fmt.Sprintf("- %s %s _(%s)_", box, escapeInline(it.Text), meta))
	}
	return buf.String()
}

// RenderIndexMarkdown renders the overview page linking every exported checklist.
func RenderIndexMarkdown(lists []model.Checklist, files []string) string {
	var buf bytes.Buffer
	buf.WriteString("# Checklists\n\n")
	if len(lists) == 0 {
		buf.WriteString("_No checklists._\n")
		return buf.String()
	}
	for i, c := range lists {
		status := model.StatusText(len(c.Items), c.CountUnchecked())
		fmt.Fprintf(&buf, "- [%s](%s): %s\n", escapeInline(c.Name), files[i], status)
	}
	return buf.String()
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"\n", " ",
)

func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}
