package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kodekoding/slackmate/go/header"
)

func newHeaderCmd() *cobra.Command {
	var (
		left, title, right string
		width              int
		dark               bool
	)

	cmd := &cobra.Command{
		Use:     "header",
		Short:   "Render a header bar",
		Example: `  slackmate header --left back --title general --right menu`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			props := header.Props{
				Left:   header.Slot{Text: left},
				Center: header.TitleSlot(title),
				Right:  header.Slot{Text: right},
			}
			if dark {
				props.Theme = header.DarkTheme()
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), header.Resolve(props).Render(width))
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&left, "left", "", "left button: back or menu")
	flags.StringVar(&title, "title", "", "center title")
	flags.StringVar(&right, "right", "", "right button: back or menu")
	flags.IntVarP(&width, "width", "w", 60, "width in cells")
	flags.BoolVar(&dark, "dark", false, "use the dark theme")

	return cmd
}
