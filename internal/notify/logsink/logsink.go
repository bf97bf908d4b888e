// Package logsink prepares notifications without sending them. Every
// notification ends up as one structured log line.
package logsink

import (
	"context"

	"go.uber.org/zap"

	"cyber-oasis/internal/models"
)

type Sink struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sink{log: log}
}

func (s *Sink) Name() string { return "log" }

func (s *Sink) Notify(ctx context.Context, event string, n models.Notification) error {
	s.log.Info("notification prepared",
		zap.String("event", event),
		zap.String("audience", string(n.Audience)),
		zap.String("to", n.To),
		zap.String("subject", n.Subject),
		zap.String("template", n.Template),
		zap.Any("data", n.Data),
	)
	return nil
}
