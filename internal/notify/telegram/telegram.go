// Package telegram posts organizer notifications to a Telegram chat.
package telegram

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"cyber-oasis/internal/models"
)

// maxText is the Bot API limit for a single message.
const maxText = 4096

type Sink struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

// New talks to the public Bot API. timeout caps every HTTP call the bot
// makes, including the getMe check done here.
func New(token string, chatID int64, timeout time.Duration, log *zap.Logger) (*Sink, error) {
	return NewWithClient(token, tgbotapi.APIEndpoint, chatID, &http.Client{Timeout: timeout}, log)
}

// NewWithClient talks to a custom Bot API endpoint, formatted like
// tgbotapi.APIEndpoint ("https://host/bot%s/%s").
func NewWithClient(token, endpoint string, chatID int64, client *http.Client, log *zap.Logger) (*Sink, error) {
	b, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	if log == nil {
		log = zap.NewNop()
	}
	return &Sink{bot: b, chatID: chatID, log: log}, nil
}

func (s *Sink) Name() string { return "telegram" }

func (s *Sink) Notify(ctx context.Context, event string, n models.Notification) error {
	if n.Audience != models.AudienceOrganizers {
		s.log.Debug("telegram sink skips non-organizer notification",
			zap.String("event", event),
			zap.String("audience", string(n.Audience)),
		)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(s.chatID, Format(event, n))
	msg.DisableWebPagePreview = true

	// bot.Send takes no context; wait for whichever finishes first.
	done := make(chan error, 1)
	go func() {
		_, err := s.bot.Send(msg)
		done <- err
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		s.log.Warn("telegram send abandoned", zap.String("event", event), zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

// Format renders a notification as plain text: subject, event, then the
// data fields in key order.
func Format(event string, n models.Notification) string {
	var b strings.Builder
	b.WriteString(n.Subject)
	b.WriteString("\n")
	b.WriteString("event: " + event)

	keys := make([]string, 0, len(n.Data))
	for k := range n.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := n.Data[k]
		if v == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(k + ": " + v)
	}

	text := b.String()
	if r := []rune(text); len(r) > maxText {
		text = string(r[:maxText-1]) + "…"
	}
	return text
}
