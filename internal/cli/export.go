package cli

import (
	"errors"
	"io"
	"strings"

	"checklists-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var toDir string
	var hideChecked bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export checklists as Markdown (derived copies, not read back)",
	}

	opts := func() publish.WriteOptions {
		return publish.WriteOptions{HideChecked: hideChecked, Overwrite: overwrite}
	}

	listCmd := &cobra.Command{
		Use:   "list <index>",
		Short: "Write one checklist as a Markdown page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(toDir) == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}

			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			c, err := sess.model.Checklist(idx)
			if err != nil {
				return writeErr(cmd, listErr(err, args))
			}
			res, err := publish.WriteChecklist(c, idx, toDir, opts())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, res, map[string]any{"files": len(res.Written)})
		},
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Write an index page plus one page per checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(toDir) == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}

			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			res, err := publish.WriteAll(sess.model.Lists(), toDir, opts())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, res, map[string]any{"files": len(res.Written)})
		},
	}

	var render bool
	var width int
	printCmd := &cobra.Command{
		Use:   "print [index]",
		Short: "Print a checklist as Markdown to stdout (default: the selected checklist)",
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
			c, err := sess.model.Checklist(idx)
			if err != nil {
				return writeErr(cmd, listErr(err, args))
			}

			md := publish.RenderChecklistMarkdown(c, publish.RenderOptions{HideChecked: hideChecked})
			if render {
				color := ""
				if app.cfg != nil {
					color = app.cfg.Color
				}
				md, err = publish.RenderTerminal(md, width, publish.TerminalStyle(color))
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			_, err = io.WriteString(cmd.OutOrStdout(), md)
			return err
		},
	}
	printCmd.Flags().BoolVar(&render, "render", false, "Render for the terminal instead of raw Markdown")
	printCmd.Flags().IntVar(&width, "width", 80, "Word-wrap width for --render")

	cmd.PersistentFlags().StringVar(&toDir, "to", "", "Output directory")
	cmd.PersistentFlags().BoolVar(&hideChecked, "hide-checked", false, "Leave checked items out")
	cmd.PersistentFlags().BoolVar(&overwrite, "overwrite", true, "Overwrite existing files")

	cmd.AddCommand(listCmd)
	cmd.AddCommand(allCmd)
	cmd.AddCommand(printCmd)
	return cmd
}
