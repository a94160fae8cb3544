package telegram

import (
	"context"

	tbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

type (
	Service struct {
		chatId   int64
		bot      *tbot.BotAPI
		isActive bool
	}

	TelegramConfig struct {
		IsActive    bool   `yaml:"is_active"`
		BotToken    string `yaml:"bot_token"`
		ChatId      int64  `yaml:"chat_id"`
		APIEndpoint string `yaml:"api_endpoint"`
	}
)

func (s *Service) Type() string {
	return "telegram"
}

// New authenticates the bot, which costs one getMe call
func New(cfg *TelegramConfig) (*Service, error) {
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tbot.APIEndpoint
	}
	bot, err := tbot.NewBotAPIWithAPIEndpoint(cfg.BotToken, endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "slackmate.go.notifications.telegram.NewBot")
	}
	return &Service{
		chatId:   cfg.ChatId,
		bot:      bot,
		isActive: cfg.IsActive,
	}, nil
}

func (s *Service) Alert(_ context.Context, message string) error {
	newMessage := tbot.NewMessage(s.chatId, message)
	if _, err := s.bot.Send(newMessage); err != nil {
		return errors.Wrap(err, "slackmate.go.notifications.telegram.Alert")
	}
	return nil
}

func (s *Service) IsActive() bool {
	return s.isActive
}
