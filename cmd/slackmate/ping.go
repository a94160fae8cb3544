package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kodekoding/slackmate/go/apps"
	pcontext "github.com/kodekoding/slackmate/go/context"
	"github.com/kodekoding/slackmate/go/network"
	"github.com/kodekoding/slackmate/go/notifications"
)

const defaultProbeURL = "https://slack.com"

func newPingCmd(root *rootOptions) *cobra.Command {
	var probeURL string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity, then who the current token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			url := probeURL
			if url == "" {
				url = a.cfg.ProbeURL
			}
			if url == "" {
				url = defaultProbeURL
			}

			probe, err := network.NewProbe(url)
			if err != nil {
				return err
			}
			connected, err := probe.IsConnected(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !connected {
				_, err = fmt.Fprintf(out, "offline (%s unreachable)\n", url)
				return err
			}
			if _, err = fmt.Fprintf(out, "online (%s)\n", url); err != nil {
				return err
			}

			// identity is informative only, a failure here should not alert
			ctx := pcontext.SetNotifier(cmd.Context(), notifications.Discard)
			identity, err := apps.NewSlack(a.client).AuthTest(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "signed in as %s on %s (%s)\n", identity.User, identity.Team, identity.TeamID)
			return err
		},
	}
	cmd.Flags().StringVar(&probeURL, "url", "", "url to probe, defaults to the configured probe url")

	return cmd
}
