package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/kafka_consumer/config"
	"github.com/Gunvolt24/kafka_consumer/internal/app"
	"github.com/Gunvolt24/kafka_consumer/internal/cli"
	"github.com/Gunvolt24/kafka_consumer/internal/domain"
)

func main() {
	_ = godotenv.Load(".env.local")

	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr, run))
}

// run — загрузка конфигурации, сборка и запуск приложения.
// Сигналы остановки обрабатывает сам консьюмер.
func run(ctx context.Context, sel domain.Selection) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, cleanup, err := app.Bootstrap(ctx, &cfg, sel)
	if err != nil {
		return err
	}
	defer cleanup()

	return a.Run(ctx, sel)
}
