package command

import (
	"fmt"

	"github.com/example/amabot/internal/config"
	"github.com/example/amabot/internal/db"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent replies from the query index",
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

			limit, _ := cmd.Flags().GetInt("limit")
			replier, _ := cmd.Flags().GetInt64("replier")

			replies, err := db.RecentReplies(conn, limit, replier)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(replies) == 0 {
				fmt.Fprintln(out, "No replies recorded.")
				return nil
			}
			for _, r := range replies {
				fmt.Fprintf(out, "#%d  %d -> %d\n  Q: %s\n  A: %s\n", r.Seq, r.AskerID, r.ReplierID, r.Question, r.Text)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum replies to show")
	cmd.Flags().Int64("replier", 0, "only replies sent by this user ID")
	return cmd
}
