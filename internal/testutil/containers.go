//go:build integration

// Package testutil — окружение интеграционных тестов: Redpanda и Postgres в testcontainers.
package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"
)

// Общий логгер жизненного цикла контейнеров.
var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// Stop — остановка контейнера и связанных ресурсов.
type Stop func(context.Context) error

func shortID(c tc.Container) string {
	id := c.GetContainerID()
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// stage — хук, пишущий в лог этап жизни контейнера.
func stage(l *log.Logger, name string) tc.ContainerHook {
	return func(_ context.Context, c tc.Container) error {
		l.Printf("%s id=%s", name, shortID(c))
		return nil
	}
}

func lifecycleLog(l *log.Logger) tc.CustomizeRequestOption {
	return tc.WithLifecycleHooks(tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				l.Printf("creating image=%s", req.Image)
				return nil
			},
		},
		PostStarts:    []tc.ContainerHook{stage(l, "started")},
		PostReadies:   []tc.ContainerHook{stage(l, "ready")},
		PreTerminates: []tc.ContainerHook{stage(l, "terminating")},
	})
}

// PGContainer — Postgres с открытым пулом.
type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// StartPostgresTC — Postgres с базой "consumer" и пулом на 5 соединений.
func StartPostgresTC(ctx context.Context) (*PGContainer, Stop, error) {
	pg, err := postgres.Run(ctx, postgresImage,
		lifecycleLog(tcLogger),
		postgres.WithDatabase("consumer"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = tc.TerminateContainer(pg)
		return nil, nil, fmt.Errorf("conn string: %w", err)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		_ = tc.TerminateContainer(pg)
		return nil, nil, fmt.Errorf("parse cfg: %w", err)
	}
	cfg.MaxConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		_ = tc.TerminateContainer(pg)
		return nil, nil, fmt.Errorf("new pool: %w", err)
	}

	stop := func(context.Context) error {
		pool.Close()
		return tc.TerminateContainer(pg)
	}
	return &PGContainer{Container: pg, Pool: pool, DSN: dsn}, stop, nil
}

// KafkaEnv — одноузловой Redpanda, совместимый с протоколом Kafka.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

// StartKafkaTC — Redpanda с автосозданием топиков.
func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, Stop, error) {
	rp, err := redpanda.Run(ctx, redpandaImage,
		lifecycleLog(tcLogger),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	stop := func(context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}, stop, nil
}
