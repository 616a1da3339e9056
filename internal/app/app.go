// Package app — сборка зависимостей и жизненный цикл процесса консьюмера.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
)

// App — собранное приложение: консьюмер и служебный HTTP-сервер.
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // служебный HTTP (метрики, пробы); nil — выключен
	Consumer        ports.MessageConsumer // цикл чтения Kafka
	shutdownTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Run — поднимает служебный HTTP, подписывает консьюмера на выбранные топики
// и крутит цикл до остановки. Возвращает ошибку старта или фатальный сбой цикла.
func (a *App) Run(ctx context.Context, sel domain.Selection) error {
	if a.HTTPServer != nil {
		go func() {
			a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
			if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.Logger.Warnf(ctx, "http server stopped: %v", err)
			}
		}()
		defer a.shutdownHTTP(ctx)
	}

	if err := a.Consumer.Start(ctx, sel); err != nil {
		return err
	}

	a.Logger.Infof(ctx, "kafka consumer starting")
	if err := a.Consumer.Run(ctx); err != nil {
		a.Logger.Errorf(ctx, "kafka consumer failed: %v", err)
		return err
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}

// shutdownHTTP — корректная остановка HTTP-сервера.
func (a *App) shutdownHTTP(ctx context.Context) {
	gt := a.shutdownTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}
}
