package logger

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/kafka_consumer/internal/ports"
	"github.com/Gunvolt24/kafka_consumer/pkg/ctxmeta"
	"go.uber.org/zap"
)

var _ ports.Logger = (*ZapLogger)(nil)

// severityNotice — у zap нет уровня notice; пишем info с явной пометкой.
const severityNotice = "NOTICE"

type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	loggerWrap := NewFromZap(logger)
	loggerWrap.isProd = isProd

	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// NewFromZap — обёртка над уже созданным *zap.Logger (например, observer в тестах).
func NewFromZap(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, sugar: base.Sugar()}
}

func (z *ZapLogger) Debugf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Debugf(format, args...)
}
func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}
func (z *ZapLogger) Noticef(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infow(fmt.Sprintf(format, args...), "severity", severityNotice)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}
func (z *ZapLogger) Errorw(ctx context.Context, msg string, keysAndValues ...any) {
	z.with(ctx).Errorw(msg, keysAndValues...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }

// with — добавляет к записи метаданные из контекста (request_id, delivery, trace/span).
func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.sugar
	}

	var fields []any
	if v, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", v)
	}
	if v, ok := ctxmeta.DeliveryFromContext(ctx); ok {
		fields = append(fields, "delivery", v)
	}
	if v, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", v)
	}
	if v, ok := ctxmeta.SpanIDFromContext(ctx); ok {
		fields = append(fields, "span_id", v)
	}

	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}
