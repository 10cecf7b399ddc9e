package cli

import (
	"checklists-cli/internal/model"

	"github.com/spf13/cobra"
)

func newIconsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "List the icon names a checklist can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			icons := append([]string(nil), model.Icons...)
			return writeData(cmd, app, icons, map[string]any{
				"default": model.IconFolder,
				"none":    model.IconNone,
			})
		},
	}
}
