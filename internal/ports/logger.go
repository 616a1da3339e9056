package ports

import "context"

// Logger — минимальный контракт логгера для внешних слоёв.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any)  // Debugf — отладочные сообщения.
	Infof(ctx context.Context, format string, args ...any)   // Infof — информационные сообщения.
	Noticef(ctx context.Context, format string, args ...any) // Noticef — важные штатные события (остановка и т.п.).
	Warnf(ctx context.Context, format string, args ...any)   // Warnf — предупреждения.
	Errorf(ctx context.Context, format string, args ...any)  // Errorf — ошибки.

	// Errorw — ошибка со структурированным контекстом (пары ключ/значение).
	Errorw(ctx context.Context, msg string, keysAndValues ...any)
}
