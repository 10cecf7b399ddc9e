package cli

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"checklists-cli/internal/datamodel"
	"checklists-cli/internal/model"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Item commands (items are addressed by item id)",
	}

	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	cmd.AddCommand(newItemsToggleCmd(app))
	cmd.AddCommand(newItemsRmCmd(app))

	return cmd
}

// itemView is an item plus the checklist that holds it.
type itemView struct {
	model.Item
	ListIndex int    `json:"listIndex"`
	ListName  string `json:"listName"`
}

func newItemsListCmd(app *App) *cobra.Command {
	var list int
	var all bool
	var unchecked bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the items of a checklist (default: the selected checklist)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			var items []model.Item
			meta := map[string]any{}
			if all {
				items = sess.model.AllItems()
			} else {
				idx, err := sess.listOrSelected(list)
				if err != nil {
					return writeErr(cmd, err)
				}
				items, err = sess.model.Items(idx)
				if err != nil {
					return writeErr(cmd, listErr(err, []string{strconv.Itoa(idx)}))
				}
				meta["listIndex"] = idx
			}
			if unchecked {
				kept := make([]model.Item, 0, len(items))
				for _, it := range items {
					if !it.Checked {
						kept = append(kept, it)
					}
				}
				items = kept
			}
			meta["count"] = len(items)
			return writeData(cmd, app, items, meta)
		},
	}

	cmd.Flags().IntVar(&list, "list", -1, "Checklist index")
	cmd.Flags().BoolVar(&all, "all", false, "Items of every checklist")
	cmd.Flags().BoolVar(&unchecked, "unchecked", false, "Only items that are not checked")
	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show an item, its checklist and its pending reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			idx, it, err := sess.model.LocateItem(id)
			if err != nil {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			if app.isText() {
				return writeData(cmd, app, it, nil)
			}
			c, err := sess.model.Checklist(idx)
			if err != nil {
				return writeErr(cmd, err)
			}

			meta := map[string]any{"reminder": nil}
			e, ok, err := sess.model.Reminders().FindFor(cmd.Context(), it)
			if err != nil {
				return writeErr(cmd, err)
			}
			if ok {
				meta["reminder"] = e
			}
			return writeData(cmd, app, itemView{Item: it, ListIndex: idx, ListName: c.Name}, meta)
		},
	}
}

func newItemsAddCmd(app *App) *cobra.Command {
	var list int
	var due string
	var remind bool
	var checked bool

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add an item to a checklist (default: the selected checklist)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			idx, err := sess.listOrSelected(list)
			if err != nil {
				return writeErr(cmd, err)
			}
			in := datamodel.ItemInput{
				Text:         strings.Join(args, " "),
				Checked:      checked,
				ShouldRemind: remind,
			}
			if strings.TrimSpace(due) != "" {
				t, err := parseDue(due, time.Now(), time.Local)
				if err != nil {
					return writeErr(cmd, err)
				}
				in.DueDate = t
			}

			it, err := sess.model.AddItem(cmd.Context(), idx, in)
			if err != nil {
				return writeErr(cmd, listErr(err, []string{strconv.Itoa(idx)}))
			}
			if err := sess.save(); err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, it, map[string]any{"listIndex": idx}, "checklists items toggle "+strconv.Itoa(it.ItemID))
		},
	}

	cmd.Flags().IntVar(&list, "list", -1, "Checklist index")
	cmd.Flags().StringVar(&due, "due", "", "Due date: now, +N[m|h|d|w], YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC3339 (default: now)")
	cmd.Flags().BoolVar(&remind, "remind", false, "Schedule a reminder at the due date")
	cmd.Flags().BoolVar(&checked, "checked", false, "Add the item already checked")
	return cmd
}

func newItemsEditCmd(app *App) *cobra.Command {
	var text string
	var due string
	var remind bool
	var checked bool

	cmd := &cobra.Command{
		Use:   "edit <item-id>",
		Short: "Edit an item; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			var edit datamodel.ItemEdit
			flags := cmd.Flags()
			if flags.Changed("text") {
				edit.Text = &text
			}
			if flags.Changed("due") {
				t, err := parseDue(due, time.Now(), time.Local)
				if err != nil {
					return writeErr(cmd, err)
				}
				edit.DueDate = &t
			}
			if flags.Changed("remind") {
				edit.ShouldRemind = &remind
			}
			if flags.Changed("checked") {
				edit.Checked = &checked
			}
			if edit == (datamodel.ItemEdit{}) {
				return writeErr(cmd, errors.New("nothing to change; pass --text, --due, --remind or --checked"))
			}

			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			idx, _, err := sess.model.LocateItem(id)
			if err != nil {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			it, err := sess.model.EditItem(cmd.Context(), idx, id, edit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.save(); err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, it, map[string]any{"listIndex": idx})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New text")
	cmd.Flags().StringVar(&due, "due", "", "New due date (same forms as `items add --due`)")
	cmd.Flags().BoolVar(&remind, "remind", false, "Remind at the due date (--remind=false turns it off)")
	cmd.Flags().BoolVar(&checked, "checked", false, "Set the checkmark (--checked=false clears it)")
	return cmd
}

func newItemsToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <item-id>",
		Aliases: []string{"check"},
		Short:   "Flip an item's checkmark",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			idx, _, err := sess.model.LocateItem(id)
			if err != nil {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			it, err := sess.model.ToggleChecked(cmd.Context(), idx, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.save(); err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, it, map[string]any{"listIndex": idx})
		},
	}
}

func newItemsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an item and cancel its reminder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			idx, _, err := sess.model.LocateItem(id)
			if err != nil {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			it, err := sess.model.RemoveItem(cmd.Context(), idx, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.save(); err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, it, map[string]any{"listIndex": idx, "removed": true})
		},
	}
}
