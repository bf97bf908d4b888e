package notify

import (
	"fmt"

	"go.uber.org/zap"

	"cyber-oasis/internal/config"
	"cyber-oasis/internal/notify/logsink"
	"cyber-oasis/internal/notify/telegram"
)

func NewSink(cfg config.Config, log *zap.Logger) (Sink, error) {
	switch cfg.Notify.Provider {
	case "", "log":
		return logsink.New(log), nil
	case "telegram":
		return telegram.New(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID, cfg.Notify.Timeout, log)
	default:
		return nil, fmt.Errorf("unknown notify provider: %s", cfg.Notify.Provider)
	}
}
