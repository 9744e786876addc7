package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tasklyst/backend/internal/infrastructure/monitor"
	"github.com/tasklyst/backend/internal/services/lifecycle"
	"github.com/tasklyst/backend/internal/services/sweeper"
	"github.com/tasklyst/backend/pkg/logger"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tasklyst",
		Short: "Personal task manager with a persistent session",
		Long: `tasklyst keeps a single user's tasks in a local key-value store.
Log in once; the session persists across invocations until it expires.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.ContextWithOperation(cmd.Context(), cmd.Name())
			cmd.SetContext(ctx)
			return a.bootstrap(ctx)
		},
	}

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newMoveCmd(a),
		newEditCmd(a),
		newRemoveCmd(a),
		newStatusCmd(a),
		newAgentCmd(a),
	)
	return root
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report session and storage health",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			probe := monitor.New(a.store, 0, a.logger)
			state := probe.Refresh()

			fmt.Fprintf(cmd.OutOrStdout(), "storage: %s (%s backend)\n",
				onlineWord(state.Storage), a.cfg.Storage.Backend)
			if user := a.sessions.CurrentUser(ctx); user != nil {
				session := a.sessions.Session(ctx)
				fmt.Fprintf(cmd.OutOrStdout(), "session: %s, expires %s\n",
					user.Email, session.ExpiresAt.Format("2006-01-02 15:04"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "session: none")
			return nil
		},
	}
}

func newAgentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "agent",
		Short: "Run the background monitor and session sweeper until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			manager := lifecycle.New(0, a.logger)

			mon := monitor.New(a.store, a.cfg.Session.SweepInterval, a.logger)
			mon.Start()
			manager.Register("monitor", func(ctx context.Context) error {
				mon.Stop()
				return nil
			})

			sw := sweeper.New(a.sessions, a.logger, sweeper.Config{
				Interval: a.cfg.Session.SweepInterval,
			})
			sw.Start()
			manager.Register("sweeper", func(ctx context.Context) error {
				sw.Stop(ctx)
				return nil
			})

			manager.Listen(cancel)
			fmt.Fprintln(cmd.OutOrStdout(), "agent running, press Ctrl+C to stop")
			<-ctx.Done()

			return manager.Shutdown(context.Background())
		},
	}
}
