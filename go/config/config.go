package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/kodekoding/slackmate/go/env"
	"github.com/kodekoding/slackmate/go/notifications"
	"github.com/kodekoding/slackmate/go/notifications/slack"
	"github.com/kodekoding/slackmate/go/notifications/telegram"
	"github.com/kodekoding/slackmate/go/request"
	"github.com/kodekoding/slackmate/go/session"
)

const (
	SessionMemory = "memory"
	SessionRedis  = "redis"

	defaultTeamID     = "default"
	defaultProbeEvery = "@every 30s"
)

type (
	Config struct {
		APIURL string `yaml:"api_url" validate:"required,url"`
		// ProbeURL is requested to decide connectivity, empty means the network is assumed up
		ProbeURL     string               `yaml:"probe_url" validate:"omitempty,url"`
		ProbeEvery   string               `yaml:"probe_every"`
		Session      SessionConfig        `yaml:"session"`
		Notification notifications.Config `yaml:"notification"`
		NewRelic     NewRelicConfig       `yaml:"new_relic"`
		Log          LogConfig            `yaml:"log"`
	}

	SessionConfig struct {
		Driver  string           `yaml:"driver" validate:"oneof=memory redis"`
		Current string           `yaml:"current"`
		Teams   []session.Team   `yaml:"teams" validate:"dive"`
		Redis   session.RedisCfg `yaml:"redis"`
	}

	NewRelicConfig struct {
		Enabled    bool   `yaml:"enabled"`
		AppName    string `yaml:"app_name"`
		LicenseKey string `yaml:"license_key" validate:"required_with=Enabled"`
	}

	LogConfig struct {
		JSON bool `yaml:"json"`
	}
)

var (
	ErrMissingRedisAddress = errors.New("redis session needs an address")

	validate = validator.New()
)

func Default() *Config {
	return &Config{
		APIURL:     request.DefaultAPIURL,
		ProbeEvery: defaultProbeEvery,
		Session:    SessionConfig{Driver: SessionMemory},
		Notification: notifications.Config{
			Console: true,
		},
		NewRelic: NewRelicConfig{AppName: "slackmate"},
	}
}

// Load reads path on top of the defaults, then applies environment overrides.
// A missing file is not an error, an empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "slackmate.go.config.Load.ReadFile")
		}
		if err == nil {
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(err, "slackmate.go.config.Load.Unmarshal")
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, errors.Wrap(err, "slackmate.go.config.Load.Env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "slackmate.go.config.Validate")
	}
	if c.Session.Driver == SessionRedis && c.Session.Redis.Address == "" {
		return ErrMissingRedisAddress
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if apiURL := os.Getenv("SLACKMATE_API_URL"); apiURL != "" {
		c.APIURL = apiURL
	}
	if probeURL := os.Getenv("SLACKMATE_PROBE_URL"); probeURL != "" {
		c.ProbeURL = probeURL
	}

	team := os.Getenv("SLACKMATE_TEAM")
	if token := os.Getenv("SLACKMATE_TOKEN"); token != "" {
		teamID := team
		if teamID == "" {
			teamID = defaultTeamID
		}
		c.Session.upsert(session.Team{ID: teamID, Name: teamID, Token: token})
	}
	if team != "" {
		c.Session.Current = team
	}

	if address := os.Getenv("REDIS_ADDRESS"); address != "" {
		c.Session.Driver = SessionRedis
		c.Session.Redis.Address = address
		c.Session.Redis.Password = env.Get("REDIS_PASSWORD", c.Session.Redis.Password)
	}

	if webhook := os.Getenv("SLACK_WEBHOOK_URL"); webhook != "" {
		if c.Notification.Slack == nil {
			c.Notification.Slack = new(slack.SlackConfig)
		}
		c.Notification.Slack.IsActive = true
		c.Notification.Slack.URL = webhook
	}

	if botToken := os.Getenv("TELEGRAM_BOT_TOKEN"); botToken != "" {
		if c.Notification.Telegram == nil {
			c.Notification.Telegram = new(telegram.TelegramConfig)
		}
		c.Notification.Telegram.IsActive = true
		c.Notification.Telegram.BotToken = botToken
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return errors.Wrap(err, "TELEGRAM_CHAT_ID")
		}
		if c.Notification.Telegram == nil {
			c.Notification.Telegram = new(telegram.TelegramConfig)
		}
		c.Notification.Telegram.ChatId = id
	}

	if licenseKey := os.Getenv("NEW_RELIC_LICENSE_KEY"); licenseKey != "" {
		c.NewRelic.Enabled = true
		c.NewRelic.LicenseKey = licenseKey
	}
	c.NewRelic.AppName = env.Get("NEW_RELIC_APP_NAME", c.NewRelic.AppName)

	return nil
}

func (s *SessionConfig) upsert(team session.Team) {
	for i := range s.Teams {
		if s.Teams[i].ID == team.ID {
			s.Teams[i].Token = team.Token
			return
		}
	}
	s.Teams = append(s.Teams, team)
}
