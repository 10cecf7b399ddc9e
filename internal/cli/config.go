package cli

import (
	"fmt"
	"strings"

	"checklists-cli/internal/format"
	"checklists-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Global config (~/.checklists/config.json)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the global config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, cfg, map[string]any{"path": path, "keys": store.ConfigKeys()})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value (an empty value restores the default)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Start over from an empty config when the file does not decode.
			cfg, err := store.LoadConfig()
			if err != nil {
				app.logger().Warn("replacing unreadable config", "error", err)
				cfg = &store.GlobalConfig{}
			}
			if args[0] == "format" && !format.Valid(args[1]) {
				return writeErr(cmd, fmt.Errorf("unknown format: %s (expected %s)", args[1], strings.Join(format.Formats, "|")))
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, cfg, map[string]any{"key": args[0]})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, path, nil)
		},
	})

	return cmd
}
