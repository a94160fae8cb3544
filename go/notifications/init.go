package notifications

//go:generate mockgen -source=init.go -destination=../mocks/notifications.go -package=mocks -exclude_interfaces=Action

import (
	"context"
	"io"

	"github.com/pkg/errors"

	plog "github.com/kodekoding/slackmate/go/log"
	"github.com/kodekoding/slackmate/go/notifications/console"
	"github.com/kodekoding/slackmate/go/notifications/slack"
	"github.com/kodekoding/slackmate/go/notifications/telegram"
)

type (
	// Notifier surfaces a failure message to the user
	Notifier interface {
		Alert(ctx context.Context, message string) error
	}

	Action interface {
		Notifier
		IsActive() bool
		Type() string
	}

	Options func(platform *Platform)

	// Platform fans an alert out to every active action
	Platform struct {
		list []Action
	}

	Config struct {
		Console  bool                     `yaml:"console"`
		Telegram *telegram.TelegramConfig `yaml:"telegram"`
		Slack    *slack.SlackConfig       `yaml:"slack"`
	}

	discard struct{}
)

// Discard drops every alert
var Discard Notifier = discard{}

func (discard) Alert(context.Context, string) error { return nil }

func New(opt ...Options) *Platform {
	notifPlatform := new(Platform)
	for _, options := range opt {
		options(notifPlatform)
	}
	return notifPlatform
}

// FromConfig activates every configured platform
func FromConfig(cfg Config, consoleOut io.Writer) *Platform {
	var opts []Options
	if cfg.Console {
		opts = append(opts, ActivateConsole(consoleOut))
	}
	if cfg.Slack != nil && cfg.Slack.IsActive {
		opts = append(opts, ActivateSlack(cfg.Slack))
	}
	if cfg.Telegram != nil && cfg.Telegram.IsActive {
		opts = append(opts, ActivateTelegram(cfg.Telegram))
	}
	return New(opts...)
}

func ActivateConsole(out io.Writer) Options {
	return func(platform *Platform) {
		platform.list = append(platform.list, console.New(out))
	}
}

func ActivateSlack(cfg *slack.SlackConfig) Options {
	return func(platform *Platform) {
		log := plog.Get()
		service, err := slack.New(cfg)
		if err != nil {
			log.Error().Msgf("slack cannot initialized: %s", err)
			return
		}
		platform.list = append(platform.list, service)
		log.Debug().Msg("slack notification initialized")
	}
}

func ActivateTelegram(cfg *telegram.TelegramConfig) Options {
	return func(platform *Platform) {
		log := plog.Get()
		service, err := telegram.New(cfg)
		if err != nil {
			log.Error().Msgf("telegram cannot initialized: %s", err)
			return
		}
		platform.list = append(platform.list, service)
		log.Debug().Msg("telegram notification initialized")
	}
}

// WithAction registers a custom action
func WithAction(action Action) Options {
	return func(platform *Platform) {
		platform.list = append(platform.list, action)
	}
}

func (p *Platform) GetAllPlatform() []Action {
	return p.list
}

// Alert sends message to every active action; a failing action does not stop the others
func (p *Platform) Alert(ctx context.Context, message string) error {
	var firstErr error
	for _, action := range p.list {
		if !action.IsActive() {
			continue
		}
		if err := action.Alert(ctx, message); err != nil {
			plog.Ctx(ctx).Warn().Err(err).Str("platform", action.Type()).Msg("failed to send alert")
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "slackmate.go.notifications.Platform.Alert.%s", action.Type())
			}
		}
	}
	return firstErr
}
