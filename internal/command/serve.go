package command

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/example/amabot/internal/bot"
	"github.com/example/amabot/internal/config"
	"github.com/example/amabot/internal/gateway"
	"github.com/example/amabot/internal/store"
	"github.com/example/amabot/internal/templates"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				Prefix:          AppName,
			})

			st, err := store.Open(cfg.DataDir)
			if err != nil {
				return err
			}

			tmpl, err := templates.New(cfg.StaticDir)
			if err != nil {
				return err
			}
			defer tmpl.Close()

			token, err := cfg.Token()
			if err != nil {
				return err
			}
			tg, err := gateway.NewTelegram(token)
			if err != nil {
				return err
			}

			logger.Info("starting",
				"bot", tg.Self(),
				"data_dir", cfg.DataDir,
				"snapshot_interval", cfg.SnapshotInterval,
				"users", len(st.Users()))

			b := bot.New(st, tg, tmpl, cfg, logger)

			// Patch notes go out before any command is consumed so the
			// broadcast order is deterministic.
			b.BroadcastPatchIfNew()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = b.Run(ctx, tg.Updates())
			tg.Stop()

			if errors.Is(err, bot.ErrRestartRequested) {
				// Exit zero with a fresh snapshot on disk; the supervisor
				// relaunches the process.
				logger.Info("exiting for supervisor relaunch")
				return nil
			}
			logger.Info("stopped")
			return err
		},
	}
}
