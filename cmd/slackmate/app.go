package main

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/kodekoding/slackmate/go/config"
	"github.com/kodekoding/slackmate/go/cron"
	plog "github.com/kodekoding/slackmate/go/log"
	"github.com/kodekoding/slackmate/go/monitoring"
	"github.com/kodekoding/slackmate/go/network"
	"github.com/kodekoding/slackmate/go/notifications"
	"github.com/kodekoding/slackmate/go/request"
	"github.com/kodekoding/slackmate/go/session"
)

const shutdownTimeout = 5 * time.Second

// app holds everything a command needs, built from the config
type app struct {
	cfg      *config.Config
	log      *zerolog.Logger
	client   *request.Client
	newRelic *monitoring.NewRelic
	closers  []func()
}

func newApp(ctx context.Context, opts *rootOptions, alertOut io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, errors.Wrap(err, "slackmate.cmd.newApp.Config")
	}

	a := &app{cfg: cfg}

	logOpts := []plog.LoggerOption{
		plog.WithAppName("slackmate"),
		plog.WithAppVersion(version),
		plog.WithOutput(alertOut),
	}
	if cfg.Log.JSON {
		logOpts = append(logOpts, plog.WithJSON())
	}
	if cfg.NewRelic.Enabled {
		a.newRelic, err = monitoring.InitNewRelic(
			monitoring.WithAppName(cfg.NewRelic.AppName),
			monitoring.WithLicenseKey(cfg.NewRelic.LicenseKey),
			monitoring.WithEnabled(true),
		)
		if err != nil {
			return nil, errors.Wrap(err, "slackmate.cmd.newApp.NewRelic")
		}
		logOpts = append(logOpts, plog.WithNewRelicApp(a.newRelic.GetApp()))
	}
	a.log = plog.Get(logOpts...)

	reader, logout, err := a.newSession(ctx, opts.team)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.log.Debug().Str("driver", cfg.Session.Driver).Int("teams", len(cfg.Session.Teams)).Msg("session ready")

	checker, err := a.newChecker()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.client = request.New(cfg.APIURL,
		request.WithChecker(checker),
		request.WithSession(reader),
		request.WithNotifier(notifications.FromConfig(cfg.Notification, alertOut)),
		request.WithLogout(logout),
	)
	return a, nil
}

// newSession picks the store from the config and selects team, or the configured current team
func (a *app) newSession(ctx context.Context, team string) (session.Reader, request.LogoutFunc, error) {
	cfg := a.cfg.Session
	if team == "" {
		team = cfg.Current
	}

	if cfg.Driver == config.SessionRedis {
		pool := session.NewPool(cfg.Redis)
		a.closers = append(a.closers, func() { _ = pool.Close() })

		store := session.NewRedis(pool,
			session.WithPrefixKey(cfg.Redis.PrefixKey),
			session.WithMaxRetry(cfg.Redis.MaxRetry),
		)
		if err := store.Ping(ctx); err != nil {
			return nil, nil, errors.Wrap(err, "slackmate.cmd.newSession.Ping")
		}
		for _, t := range cfg.Teams {
			if err := store.Add(ctx, t); err != nil {
				return nil, nil, errors.Wrap(err, "slackmate.cmd.newSession.Add")
			}
		}
		if team != "" {
			if err := store.SetCurrentTeam(ctx, team); err != nil {
				return nil, nil, errors.Wrapf(err, "slackmate.cmd.newSession.SetCurrentTeam(%s)", team)
			}
		}
		return store, store.Logout, nil
	}

	store := session.NewStore(cfg.Teams...)
	if team != "" {
		if err := store.SetCurrentTeam(team); err != nil {
			return nil, nil, errors.Wrapf(err, "slackmate.cmd.newSession.SetCurrentTeam(%s)", team)
		}
	}
	return store, store.Logout, nil
}

// newChecker probes ProbeURL on a schedule, without one the network is assumed up
func (a *app) newChecker() (network.Checker, error) {
	if a.cfg.ProbeURL == "" {
		return network.Static(true), nil
	}

	probe, err := network.NewProbe(a.cfg.ProbeURL)
	if err != nil {
		return nil, errors.Wrap(err, "slackmate.cmd.newChecker.Probe")
	}
	monitor := network.NewMonitor(probe)

	engine, err := cron.New()
	if err != nil {
		return nil, errors.Wrap(err, "slackmate.cmd.newChecker.Cron")
	}
	if err = monitor.Schedule(engine, a.cfg.ProbeEvery); err != nil {
		return nil, errors.Wrap(err, "slackmate.cmd.newChecker.Schedule")
	}
	engine.Start()
	a.closers = append(a.closers, engine.Stop)

	return monitor, nil
}

// trace wraps ctx in a new relic transaction when the agent is enabled
func (a *app) trace(ctx context.Context, name string) (context.Context, func()) {
	if a.newRelic == nil {
		return ctx, func() {}
	}
	txn := a.newRelic.GetApp().StartTransaction(name)
	return monitoring.NewContext(ctx, txn), txn.End
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	if a.newRelic != nil {
		a.newRelic.GetApp().Shutdown(shutdownTimeout)
	}
}
