package logging

import (
	"context"
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppLogger wraps otelzap so every context-aware log line carries the
// active trace and span ids.
type AppLogger struct {
	*otelzap.Logger
	serviceName string
}

func New(serviceName, environment string) (*AppLogger, error) {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()

	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return &AppLogger{
		Logger:      otelzap.New(zapLogger),
		serviceName: serviceName,
	}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *AppLogger {
	return &AppLogger{Logger: otelzap.New(zap.NewNop())}
}

// Zap exposes the underlying zap logger for collaborators that take
// one directly.
func (l *AppLogger) Zap() *zap.Logger {
	return l.Logger.Logger
}

func (l *AppLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.Ctx(ctx).Info(msg, l.withService(fields)...)
}

func (l *AppLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.Ctx(ctx).Warn(msg, l.withService(fields)...)
}

func (l *AppLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.Ctx(ctx).Error(msg, l.withService(fields)...)
}

func (l *AppLogger) withService(fields []zap.Field) []zap.Field {
	if l.serviceName == "" {
		return fields
	}

	return append(fields, zap.String("service", l.serviceName))
}
