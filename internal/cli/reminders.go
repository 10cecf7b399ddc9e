package cli

import (
	"time"

	"checklists-cli/internal/reminder"

	"github.com/spf13/cobra"
)

func newRemindersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminders",
		Aliases: []string{"reminder"},
		Short:   "Pending reminder commands",
	}

	cmd.AddCommand(newRemindersListCmd(app))
	cmd.AddCommand(newRemindersFireCmd(app))
	cmd.AddCommand(newRemindersSyncCmd(app))

	return cmd
}

func newRemindersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pending reminders by fire time",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			entries, err := sess.reg.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeData(cmd, app, entries, map[string]any{"count": len(entries)})
		},
	}
}

func newRemindersFireCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "fire",
		Short: "Deliver every reminder that is due (prints and removes them)",
		Long: `Deliver every reminder whose fire time is not after now (or --at).

Delivered reminders are printed and removed from the pending set. Run this
from cron or a launchd/systemd timer to get notified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if at != "" {
				t, err := parseDue(at, now, time.Local)
				if err != nil {
					return writeErr(cmd, err)
				}
				now = t
			}

			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			fired, err := sess.reg.Fire(cmd.Context(), now)
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, e := range fired {
				app.logger().Info("reminder delivered", "itemId", e.ItemID, "handle", e.Handle, "fireAt", e.FireAt)
			}
			return writeData(cmd, app, fired, map[string]any{"count": len(fired), "at": now})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Deliver as if it were this time (same forms as `items add --due`)")
	return cmd
}

func newRemindersSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Cancel orphaned reminders and reschedule every item's reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			report, err := sess.model.Reminders().Sync(cmd.Context(), sess.model.AllItems())
			if err != nil {
				return writeErr(cmd, err)
			}
			if app.isText() {
				return writeData(cmd, app, pendingOrReport(cmd, sess, report), nil)
			}
			return writeData(cmd, app, report, map[string]any{
				"orphans":   len(report.Orphans),
				"scheduled": len(report.Scheduled),
			})
		},
	}
}

// pendingOrReport shows the pending set after a sync, falling back to the
// report when the registry cannot be listed.
func pendingOrReport(cmd *cobra.Command, sess *session, report reminder.SyncReport) any {
	entries, err := sess.reg.List(cmd.Context())
	if err != nil {
		return report
	}
	return entries
}
