package cli

import (
	"errors"
	"strconv"
	"strings"

	"checklists-cli/internal/datamodel"
	"checklists-cli/internal/model"

	"github.com/spf13/cobra"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"list", "checklists"},
		Short:   "Checklist commands",
	}

	cmd.AddCommand(newListsListCmd(app))
	cmd.AddCommand(newListsShowCmd(app))
	cmd.AddCommand(newListsAddCmd(app))
	cmd.AddCommand(newListsEditCmd(app))
	cmd.AddCommand(newListsRmCmd(app))
	cmd.AddCommand(newListsSelectCmd(app))
	cmd.AddCommand(newListsSelectedCmd(app))

	return cmd
}

func newListsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List checklists in display order with their remaining counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverview(cmd, app)
		},
	}
}

func newListsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [index]",
		Short: "Show a checklist and its items (default: the selected checklist)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			idx := -1
			if len(args) == 1 {
				if idx, err = parseIndex(args[0]); err != nil {
					return writeErr(cmd, err)
				}
			}
			idx, err = sess.listOrSelected(idx)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := sess.detail(idx)
			if err != nil {
				return writeErr(cmd, listErr(err, args))
			}
			return writeData(cmd, app, d, nil, "checklists items add <text> --list "+strconv.Itoa(idx))
		},
	}
}

func newListsAddCmd(app *App) *cobra.Command {
	var icon string
	var sel bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a checklist (icon defaults to Folder)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			ctx := cmd.Context()
			_, idx, err := sess.model.AddChecklist(ctx, datamodel.ChecklistInput{Name: args[0], IconName: icon})
			if err != nil {
				return writeErr(cmd, err)
			}
			if sel {
				if err := sess.model.SetSelectedIndex(ctx, idx); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := sess.save(); err != nil {
				return writeErr(cmd, err)
			}
			d, err := sess.detail(idx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, d, map[string]any{"index": idx}, "checklists items add <text> --list "+strconv.Itoa(idx))
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "Icon name (see `checklists icons`)")
	cmd.Flags().BoolVar(&sel, "select", false, "Select the new checklist")
	return cmd
}

func newListsEditCmd(app *App) *cobra.Command {
	var name string
	var icon string

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Rename a checklist or change its icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("icon") {
				return writeErr(cmd, errors.New("nothing to change; pass --name and/or --icon"))
			}

			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			cur, err := sess.model.Checklist(idx)
			if err != nil {
				return writeErr(cmd, listErr(err, args))
			}
			in := datamodel.ChecklistInput{Name: cur.Name, IconName: icon}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			_, newIdx, err := sess.model.EditChecklist(cmd.Context(), idx, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.save(); err != nil {
				return writeErr(cmd, err)
			}
			d, err := sess.detail(newIdx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, d, map[string]any{"index": newIdx, "previousIndex": idx})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon name")
	return cmd
}

func newListsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a checklist, its items and their reminders",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			c, err := sess.model.RemoveChecklist(cmd.Context(), idx)
			if err != nil {
				return writeErr(cmd, listErr(err, args))
			}
			if err := sess.save(); err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, model.Detail(idx, c, false), map[string]any{"removed": true})
		},
	}
}

func newListsSelectCmd(app *App) *cobra.Command {
	var clearSel bool

	cmd := &cobra.Command{
		Use:   "select [index]",
		Short: "Select a checklist (or clear the selection with --clear)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := -1
			switch {
			case clearSel && len(args) == 0:
			case !clearSel && len(args) == 1:
				n, err := parseIndex(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				idx = n
			default:
				return writeErr(cmd, errors.New("pass either <index> or --clear"))
			}

			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			if err := sess.model.SetSelectedIndex(cmd.Context(), idx); err != nil {
				return writeErr(cmd, listErr(err, args))
			}
			if idx < 0 {
				return writeData(cmd, app, nil, map[string]any{"selected": -1})
			}
			c, err := sess.model.Checklist(idx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, model.Summarize(idx, c, true), map[string]any{"selected": idx})
		},
	}

	cmd.Flags().BoolVar(&clearSel, "clear", false, "Clear the selection")
	return cmd
}

func newListsSelectedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "selected",
		Short: "Show the selected checklist (data is null when none is selected)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			c, idx, ok := sess.model.SelectedChecklist()
			if !ok {
				if app.isText() {
					return writeData(cmd, app, "(no checklist selected)", nil)
				}
				return writeData(cmd, app, nil, map[string]any{"selected": -1}, "checklists lists select <index>")
			}
			return writeData(cmd, app, model.Detail(idx, c, true), map[string]any{"selected": idx})
		},
	}
}

// listErr turns an out-of-range index into a not-found error naming the
// argument the user typed.
func listErr(err error, args []string) error {
	if errors.Is(err, datamodel.ErrIndexOutOfRange) && len(args) > 0 {
		return errNotFound("checklist", strings.TrimSpace(args[0]))
	}
	return err
}
