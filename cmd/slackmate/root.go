package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	team       string
	silent     bool
}

func newRootCmd() *cobra.Command {
	opts := new(rootOptions)

	cmd := &cobra.Command{
		Use:   "slackmate",
		Short: "Call the Slack web API as the signed-in team",
		Long: `slackmate performs Slack web API calls with the token of the current team,
checking connectivity first and alerting on failures through the configured
notification platforms (console, Slack webhook, Telegram).

Configuration is read from --config and overridden by SLACKMATE_* environment variables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "slackmate.yaml", "path to the yaml config")
	flags.StringVar(&opts.team, "team", "", "team id to use instead of the current one")
	flags.BoolVar(&opts.silent, "silent", false, "do not alert on failure")

	cmd.AddCommand(
		newCallCmd(opts),
		newPostCmd(opts),
		newPingCmd(opts),
		newHeaderCmd(),
	)
	return cmd
}
