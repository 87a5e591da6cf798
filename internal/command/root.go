package command

import (
	"os"

	"github.com/spf13/cobra"
)

const AppName = "amabot"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Amabot - anonymous AMA boards over Telegram",
		Long:          "Amabot hosts anonymous ask-me-anything question boards for a closed community over Telegram.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("config", "config.yaml", "path to the YAML config file")

	cmd.AddCommand(
		NewServeCmd(),
		NewHistoryCmd(),
		NewStatsCmd(),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd(Version).Execute()
}
