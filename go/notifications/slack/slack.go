package slack

import (
	"context"
	"fmt"
	"strings"

	sgw "github.com/ashwanthkumar/slack-go-webhook"
	"github.com/pkg/errors"

	"github.com/kodekoding/slackmate/go/helper"
	"github.com/kodekoding/slackmate/go/monitoring"
)

var ErrMissingWebhookURL = errors.New("slack webhook URL is required")

type (
	Service struct {
		url       string
		recipient string
		isActive  bool
	}

	SlackConfig struct {
		IsActive  bool   `yaml:"is_active"`
		URL       string `yaml:"webhook_url"`
		Recipient string `yaml:"recipient"`
	}
)

const alertColor = "#ff0e0a"

var sendSlack = sgw.Send

// New instance of Slack Service
func New(cfg *SlackConfig) (*Service, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, ErrMissingWebhookURL
	}
	return &Service{
		url:       cfg.URL,
		recipient: cfg.Recipient,
		isActive:  cfg.IsActive,
	}, nil
}

// Alert posts the message to the webhook with a trace id attachment
func (p *Service) Alert(ctx context.Context, message string) error {
	txn := monitoring.BeginTrxFromContext(ctx)
	if txn != nil {
		defer txn.StartSegment("Notification-Slack-Alert").End()
	}

	traceID := monitoring.TraceID(ctx)
	if traceID == "" {
		traceID = helper.GenerateUUIDV4()
	}

	users := "<!here>"
	if p.recipient != "" {
		users = p.recipient
	}

	color := alertColor
	attachment := sgw.Attachment{Color: &color}
	attachment.AddField(sgw.Field{
		Title: "Trace/Request ID",
		Value: traceID,
		Short: true,
	})

	payload := sgw.Payload{
		Text:        fmt.Sprintf("Hallo %s :broken_heart: %s", users, message),
		Attachments: []sgw.Attachment{attachment},
	}
	errs := sendSlack(p.url, "", payload)
	if len(errs) > 0 {
		errStr := make([]string, 0, len(errs))
		for _, errVal := range errs {
			errStr = append(errStr, errVal.Error())
		}
		return errors.Wrap(errors.New(strings.Join(errStr, ",")), "error when send slack")
	}
	return nil
}

func (p *Service) IsActive() bool {
	return p.isActive
}

func (p *Service) Type() string {
	return "slack"
}
