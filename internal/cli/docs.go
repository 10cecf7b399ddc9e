package cli

import (
	"fmt"

	"checklists-cli/internal/docs"
	"checklists-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var render bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show on-demand documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				if app.isText() {
					return writeData(cmd, app, topics, nil)
				}
				return writeData(cmd, app, map[string]any{"topics": topics}, nil, "checklists docs overview --render")
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `checklists docs` to list topics)", topic))
			}

			if render {
				color := ""
				if app.cfg != nil {
					color = app.cfg.Color
				}
				out, err := publish.RenderTerminal(body, 80, publish.TerminalStyle(color))
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			if raw || app.isText() {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			return writeData(cmd, app, map[string]any{"topic": topic, "markdown": body}, nil)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	cmd.Flags().BoolVar(&render, "render", false, "Render markdown for the terminal")

	return cmd
}
