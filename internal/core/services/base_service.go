package services

import (
	"context"
	"log/slog"

	"github.com/fxledger/fxledger/internal/middleware"
)

// baseService carries the logging helpers every service embeds. The request
// logger travels in the context; background callers get their task logger or
// the process default.
type baseService struct{}

func (baseService) logger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

func (b baseService) LogDebug(ctx context.Context, msg string, attrs ...any) {
	b.logger(ctx).Debug(msg, attrs...)
}

func (b baseService) LogInfo(ctx context.Context, msg string, attrs ...any) {
	b.logger(ctx).Info(msg, attrs...)
}

func (b baseService) LogWarn(ctx context.Context, msg string, attrs ...any) {
	b.logger(ctx).Warn(msg, attrs...)
}

func (b baseService) LogError(ctx context.Context, err error, msg string, attrs ...any) {
	all := append([]any{slog.String("error", err.Error())}, attrs...)
	b.logger(ctx).Error(msg, all...)
}
