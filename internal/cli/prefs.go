package cli

import (
	"checklists-cli/internal/store"

	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prefs",
		Short: "Show stored preferences (selection, first-run flag, item id counter)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.dataDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}
			prefs, err := store.OpenPrefs(cmd.Context(), s.PrefsPath())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer prefs.Close()

			snap, err := prefs.Snapshot(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			next, err := store.NewIDAllocator(prefs).Peek(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, snap, map[string]any{
				"path":       prefs.Path(),
				"nextItemId": next,
			})
		},
	}
}
