package app

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/kafka_consumer/config"
	cachemem "github.com/Gunvolt24/kafka_consumer/internal/cache/memory"
	"github.com/Gunvolt24/kafka_consumer/internal/cleanup"
	"github.com/Gunvolt24/kafka_consumer/internal/consumer"
	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/franz"
	"github.com/Gunvolt24/kafka_consumer/internal/handler"
	"github.com/Gunvolt24/kafka_consumer/internal/kafka"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
	"github.com/Gunvolt24/kafka_consumer/internal/repo/postgres"
	"github.com/Gunvolt24/kafka_consumer/internal/subscription"
	rest "github.com/Gunvolt24/kafka_consumer/internal/transport/http"
	"github.com/Gunvolt24/kafka_consumer/internal/usecase"
	"github.com/Gunvolt24/kafka_consumer/pkg/logger"
	"github.com/Gunvolt24/kafka_consumer/pkg/metrics"
	"github.com/Gunvolt24/kafka_consumer/pkg/telemetry"
)

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → release и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to release", mode)
	}
}

// Bootstrap — собирает зависимости под выбор топиков sel и возвращает приложение,
// функцию очистки и ошибку. Выбор разрешается по конфигурации до любых подключений:
// пустой результат → subscription.ErrNoTopics, Postgres открывается, только если
// в выбор попал архивируемый топик.
func Bootstrap(ctx context.Context, cfg *config.Config, sel domain.Selection) (*App, Cleanup, error) {
	archive, err := needsArchive(cfg, sel)
	if err != nil {
		return nil, func() {}, err
	}

	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Ресурсы, закрываемые в обратном порядке.
	var closers []func()
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		release()
		return nil, func() {}, err
	}

	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			closers = append(closers, func() {
				if err := shutdownTrace(context.Background()); err != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", err)
				}
			})
		}
	}

	var pool *pgxpool.Pool
	if archive {
		pool, err = postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return fail(fmt.Errorf("postgres: %w", err))
		}
		closers = append(closers, pool.Close)

		if cfg.Postgres.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				return fail(err)
			}
		}
	}

	subs, cache := buildBindings(cfg, pool, logg)
	registry := subscription.NewRegistry(subs...)
	logg.Infof(ctx, "registered %d subscriptions", registry.Len())

	source, err := newSource(&cfg.Kafka, logg)
	if err != nil {
		return fail(err)
	}

	opts := []consumer.Option{consumer.WithReceiveTimeout(cfg.Kafka.ReceiveTimeout)}
	if cache != nil {
		opts = append(opts, consumer.WithCleaner(cleanup.NewChain(cache)))
	}
	cons := consumer.New(registry, source, logg, opts...)
	closers = append(closers, func() {
		if err := cons.Close(); err != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	})

	app := &App{
		Logger:          logg,
		Consumer:        cons,
		shutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}

	if cfg.Metrics.Enabled {
		applyGinMode(ctx, cfg.HTTP.GinMode, logg)

		// Имя сервиса для otelgin (только при включённом трейсинге).
		otelServiceName := ""
		if cfg.Tracing.Enabled {
			otelServiceName = cfg.Tracing.ServiceName
		}

		router := rest.NewRouter(rest.NewHandler(cons, logg), otelServiceName)
		app.HTTPServer = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           router,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		}
	}

	return app, release, nil
}

// needsArchive — разрешает sel по именам топиков из конфигурации
// и сообщает, попал ли в результат хоть один архивируемый топик.
func needsArchive(cfg *config.Config, sel domain.Selection) (bool, error) {
	if err := sel.Validate(); err != nil {
		return false, err
	}

	names := make([]ports.Subscription, 0, len(cfg.Archive.Topics)+len(cfg.Log.Topics))
	for _, t := range slices.Concat(cfg.Archive.Topics, cfg.Log.Topics) {
		names = append(names, &handler.FuncSubscription{Topic: t})
	}

	topics := subscription.NewRegistry(names...).ResolveTopicNames(sel)
	if len(topics) == 0 {
		return false, fmt.Errorf("%w: %s", subscription.ErrNoTopics, sel)
	}
	return slices.ContainsFunc(topics, func(t string) bool {
		return slices.Contains(cfg.Archive.Topics, t)
	}), nil
}

// buildBindings — привязки из конфигурации: архивные топики раньше логируемых.
// Возвращает кэш доставок, если он нужен архиву.
func buildBindings(cfg *config.Config, pool *pgxpool.Pool, log ports.Logger) ([]ports.Subscription, *cachemem.LRUCacheTTL) {
	var (
		subs  []ports.Subscription
		cache *cachemem.LRUCacheTTL
	)

	if pool != nil {
		cache = cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL)
		svc := usecase.NewArchiveService(postgres.NewArchiveRepository(pool), cache, log,
			usecase.WithRequireJSON(cfg.Archive.RequireJSON),
			usecase.WithSaveTimeout(cfg.Archive.SaveTimeout),
		)
		for _, t := range cfg.Archive.Topics {
			subs = append(subs, handler.NewArchiveSubscription(t, svc))
		}
	}
	for _, t := range cfg.Log.Topics {
		subs = append(subs, handler.NewLogSubscription(t, log))
	}

	return subs, cache
}

// newSource — источник сообщений выбранного драйвера.
func newSource(k *config.Kafka, log ports.Logger) (ports.MessageSource, error) {
	tlsCfg, err := k.TLSConfig()
	if err != nil {
		return nil, err
	}

	switch k.Driver {
	case config.DriverFranz:
		return franz.NewSource(&franz.SourceConfig{
			Brokers:        k.Brokers,
			GroupID:        k.EffectiveGroupID(),
			ClientID:       k.ClientID,
			StartOffset:    k.StartOffset,
			SASLUsername:   k.SASLUsername,
			SASLPassword:   k.SASLPassword,
			TLS:            tlsCfg,
			MaxWait:        k.MaxWait,
			CommitTimeout:  k.CommitTimeout,
			CheckOnTimeout: k.CheckOnTimeout,
			ReachTimeout:   k.ReachTimeout,
		}, log), nil
	case config.DriverKafkaGo, "":
		return kafka.NewSource(&kafka.SourceConfig{
			Brokers:        k.Brokers,
			GroupID:        k.EffectiveGroupID(),
			ClientID:       k.ClientID,
			StartOffset:    k.StartOffset,
			SASLUsername:   k.SASLUsername,
			SASLPassword:   k.SASLPassword,
			TLS:            tlsCfg,
			MaxWait:        k.MaxWait,
			DialTimeout:    k.DialTimeout,
			CommitTimeout:  k.CommitTimeout,
			CheckOnTimeout: k.CheckOnTimeout,
			ReachTimeout:   k.ReachTimeout,
		}, log)
	default:
		return nil, fmt.Errorf("unknown kafka driver %q", k.Driver)
	}
}
