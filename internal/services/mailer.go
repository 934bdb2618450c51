package services

import (
	"github.com/taskhive-dev/taskhive/internal/logger"
	"go.uber.org/zap"
)

// Mailer is the outbound mail boundary. Delivery is fire-and-forget; no
// guarantee surfaces to callers.
type Mailer interface {
	Send(subject, body, from string, to []string) error
}

// LogMailer records outbound mail instead of delivering it. It is the
// default until a real delivery backend is configured.
type LogMailer struct{}

func (LogMailer) Send(subject, body, from string, to []string) error {
	logger.Log.Info("outbound mail",
		zap.String("subject", subject),
		zap.String("from", from),
		zap.Strings("to", to),
	)
	return nil
}
