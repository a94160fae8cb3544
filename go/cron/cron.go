package cron

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	plog "github.com/kodekoding/slackmate/go/log"
)

const defaultTimeoutProcess = 5 * time.Minute

type (
	Options func(*option)
	option  struct {
		timezone       string
		timeoutProcess time.Duration
	}

	HandlerFunc func(ctx context.Context)

	Engine struct {
		engine         *cron.Cron
		timeoutProcess time.Duration
		handlerTotal   int
	}
)

func New(configOptions ...Options) (*Engine, error) {
	options := option{timeoutProcess: defaultTimeoutProcess}
	for _, opt := range configOptions {
		opt(&options)
	}

	var cronOpts []cron.Option
	if options.timezone != "" {
		location, err := time.LoadLocation(options.timezone)
		if err != nil {
			return nil, errors.Wrap(err, "slackmate.go.cron.New.LoadLocation")
		}

		cronOpts = append(cronOpts, cron.WithLocation(location))
	}
	return &Engine{
		engine:         cron.New(cronOpts...),
		timeoutProcess: options.timeoutProcess,
	}, nil
}

func WithTimeZone(timeZone string) Options {
	return func(c *option) {
		c.timezone = timeZone
	}
}

// WithTimeoutProcess bounds every handler run, default 5 minutes
func WithTimeoutProcess(timeout time.Duration) Options {
	return func(c *option) {
		c.timeoutProcess = timeout
	}
}

// RegisterScheduler runs handler on pattern, e.g. "@every 10s" or "*/5 * * * *"
func (eg *Engine) RegisterScheduler(pattern string, handler HandlerFunc) error {
	if _, err := eg.engine.AddFunc(pattern, func() {
		ctx, cancel := context.WithTimeout(context.Background(), eg.timeoutProcess)
		defer cancel()
		handler(ctx)
	}); err != nil {
		return errors.Wrap(err, "slackmate.go.cron.RegisterScheduler.AddFunc")
	}
	eg.handlerTotal++
	return nil
}

func (eg *Engine) Start() {
	plog.Get().Info().Msgf("Scheduler is running, handle %d handler(s)", eg.handlerTotal)
	eg.engine.Start()
}

// Stop halts the scheduler and waits for running handlers
func (eg *Engine) Stop() {
	<-eg.engine.Stop().Done()
	plog.Get().Info().Msg("Scheduler stopped")
}
