package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"checklists-cli/internal/format"
	"checklists-cli/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Format     string
	PrettyJSON bool
	Verbose    bool
	Locale     string

	cfg *store.GlobalConfig
	log *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "checklists",
		Short:        "Checklists: named lists of checkable items with due-date reminders",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Overview of every checklist
  checklists

  # Add a list and an item with a reminder
  checklists lists add Groceries --icon Groceries
  checklists items add "buy milk" --list 0 --due "2026-11-02 09:00" --remind

  # Direct list lookup (shortcut for: checklists lists show <index>)
  checklists 0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => overview of all checklists.
			if len(args) == 0 {
				return runOverview(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.configure(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CHECKLISTS_DIR", ""), "Path to data dir (default: dataDir from config, else ~/.checklists)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CHECKLISTS_FORMAT", ""), "Output format (json|edn|yaml|text)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log debug detail to stderr")
	cmd.PersistentFlags().StringVar(&app.Locale, "locale", envOr("CHECKLISTS_LOCALE", ""), "Collation locale for sorting checklist names (BCP 47, e.g. sv)")

	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newRemindersCmd(app))
	cmd.AddCommand(newIconsCmd(app))
	cmd.AddCommand(newPrefsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// configure resolves settings in order flag/env, then config file, then
// built-in default, and sets up logging.
func (app *App) configure(cmd *cobra.Command) error {
	// A broken config must not lock the user out of `config set`.
	configCmd := strings.HasPrefix(cmd.CommandPath(), "checklists config")
	cfg, err := store.LoadConfig()
	if err != nil {
		if !configCmd {
			return writeErr(cmd, fmt.Errorf("%w (fix it with `checklists config set` or remove the file)", err))
		}
		cfg = &store.GlobalConfig{}
	}
	app.cfg = cfg

	if strings.TrimSpace(app.Format) == "" {
		app.Format = cfg.Format
	}
	if strings.TrimSpace(app.Format) == "" {
		app.Format = "json"
	}
	if !format.Valid(app.Format) {
		if configCmd && !cmd.Flags().Changed("format") {
			app.Format = "json"
		} else {
			return writeErr(cmd, fmt.Errorf("unknown format: %s (expected %s)", app.Format, strings.Join(format.Formats, "|")))
		}
	}
	if strings.TrimSpace(app.Locale) == "" {
		app.Locale = cfg.Locale
	}

	level := parseLevel(cfg.LogLevel)
	if app.Verbose {
		level = slog.LevelDebug
	}
	app.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func (app *App) logger() *slog.Logger {
	if app.log == nil {
		return slog.Default()
	}
	return app.log
}

func (app *App) dataDir() (string, error) {
	return store.ResolveDataDir(app.Dir, app.cfg)
}

func (app *App) textOptions() format.TextOptions {
	opts := format.TextOptions{}
	if app.cfg != nil {
		opts.Color = app.cfg.Color
		opts.Glyphs = app.cfg.Glyphs
	}
	return opts
}

func (app *App) isText() bool {
	return strings.EqualFold(strings.TrimSpace(app.Format), "text")
}

func runOverview(cmd *cobra.Command, app *App) error {
	sess, err := openSession(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer sess.Close()

	return writeData(cmd, app, sess.summaries(), map[string]any{
		"count":    sess.model.Len(),
		"selected": sess.model.SelectedIndex(),
	}, "checklists lists show <index>", "checklists items add <text> --list <index>")
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeData writes v wrapped as {"data", "meta", "_hints"} for machine formats,
// or v alone for text output.
func writeData(cmd *cobra.Command, app *App, v any, meta map[string]any, hints ...string) error {
	if app.isText() {
		return format.WriteText(cmd.OutOrStdout(), v, app.textOptions())
	}
	out := map[string]any{"data": v}
	if len(meta) > 0 {
		out["meta"] = meta
	}
	if len(hints) > 0 {
		out["_hints"] = hints
	}
	return writeOut(cmd, app, out)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
