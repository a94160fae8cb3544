package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kodekoding/slackmate/go/apps"
	pcontext "github.com/kodekoding/slackmate/go/context"
	entity "github.com/kodekoding/slackmate/go/entity/slack"
	"github.com/kodekoding/slackmate/go/notifications"
)

func newPostCmd(root *rootOptions) *cobra.Command {
	var thread string

	cmd := &cobra.Command{
		Use:   "post <channel> <text...>",
		Short: "Post a message to a channel",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, end := a.trace(cmd.Context(), "slackmate post")
			defer end()
			if root.silent {
				ctx = pcontext.SetNotifier(ctx, notifications.Discard)
			}

			result, err := apps.NewSlack(a.client).PostMessage(ctx, &entity.PostMessageRequest{
				Channel:  args[0],
				Text:     strings.Join(args[1:], " "),
				ThreadTs: thread,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "posted to %s at %s\n", result.Channel, result.Ts)
			return err
		},
	}
	cmd.Flags().StringVar(&thread, "thread", "", "reply in the thread of this message ts")

	return cmd
}
