package repo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
)

// TelegramIdentityService resolves Telegram user ids through the Bot API
type TelegramIdentityService struct {
	bot *bot.Bot
}

// NewTelegramIdentityService creates a bot client without calling getMe, so
// startup does not depend on Telegram being reachable.
func NewTelegramIdentityService(botToken string, opts ...bot.Option) (*TelegramIdentityService, error) {
	opts = append([]bot.Option{bot.WithSkipGetMe()}, opts...)
	b, err := bot.New(botToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating bot: %w", err)
	}
	return &TelegramIdentityService{bot: b}, nil
}

// ResolveName returns "first last" for a Telegram user, or the username when
// the user has no name set.
func (s *TelegramIdentityService) ResolveName(ctx context.Context, senderID string) (string, error) {
	userID, err := strconv.ParseInt(senderID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid telegram user id %q: %w", senderID, err)
	}

	chat, err := s.bot.GetChat(ctx, &bot.GetChatParams{ChatID: userID})
	if err != nil {
		return "", fmt.Errorf("error getting chat %d: %w", userID, err)
	}

	name := strings.TrimSpace(chat.FirstName + " " + chat.LastName)
	if name == "" {
		name = chat.Username
	}
	if name == "" {
		return "", fmt.Errorf("couldn't retrieve name for telegram user %d", userID)
	}
	return name, nil
}
