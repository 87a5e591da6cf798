package command

import (
	"fmt"

	"github.com/example/amabot/internal/config"
	"github.com/example/amabot/internal/db"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-user queue depth and overall totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			conn, err := db.Open(cfg.DataDir)
			if err != nil {
				return err
			}
			defer conn.Close()

			stats, err := db.UserStats(conn)
			if err != nil {
				return err
			}
			totals, err := db.CountTotals(conn)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range stats {
				fmt.Fprintf(out, "(%d) %s [%d]: %d pending, %d replied\n",
					s.Position, s.User.Name, s.User.ID, s.Pending, s.Replied)
			}
			fmt.Fprintf(out, "\n%d users, %d open questions, %d replies, %d feedback entries\n",
				totals.Users, totals.Questions, totals.Replies, totals.Feedback)
			return nil
		},
	}
}
