package main

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kodekoding/slackmate/go/request"
)

var ErrInvalidData = errors.New("data must be key=value")

type callOptions struct {
	data   []string
	method string
	json   bool
}

func newCallCmd(root *rootOptions) *cobra.Command {
	opts := new(callOptions)

	cmd := &cobra.Command{
		Use:   "call <path>",
		Short: "Perform a raw API call and print the payload",
		Example: `  slackmate call /auth.test
  slackmate call /chat.postMessage -d channel=C1 -d text=hi`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parseData(opts.data)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, end := a.trace(cmd.Context(), "slackmate call "+args[0])
			defer end()

			callOpts := request.Options{
				Path:   normalizePath(args[0]),
				Method: opts.method,
				Silent: root.silent,
				Body:   body,
			}
			if opts.json {
				callOpts.IsFormData = request.Bool(false)
			}

			payload, err := a.client.Perform(ctx, callOpts)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(payload)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.data, "data", "d", nil, "body field as key=value, repeatable")
	flags.StringVarP(&opts.method, "method", "X", "", "GET or POST, a body always means POST")
	flags.BoolVar(&opts.json, "json", false, "send the body as json instead of form data")

	return cmd
}

// parseData turns key=value pairs into a body, nil when there are none
func parseData(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	body := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, errors.Wrapf(ErrInvalidData, "got %q", pair)
		}
		body[key] = value
	}
	return body, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
