package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StdoutAuditLogger emits audit entries through the global zap logger.
type StdoutAuditLogger struct {
	log *zap.Logger
}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{log: zap.L().Named("audit")}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	l.log.Info(entry.Action,
		zap.Time("at", time.Now().UTC()),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
