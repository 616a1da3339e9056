package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
	"github.com/Gunvolt24/kafka_consumer/pkg/ctxmeta"
	"github.com/Gunvolt24/kafka_consumer/pkg/validate"
)

// ArchiveService — прикладная логика архивации сообщений (без знаний о транспорте).
type ArchiveService struct {
	repo  ports.ArchiveRepository // прямой доступ к хранилищу
	cache ports.DeliveryCache     // уже архивированные доставки, может быть nil
	log   ports.Logger

	requireJSON bool
	timeout     time.Duration
}

// ArchiveOption — функциональная опция ArchiveService.
type ArchiveOption func(*ArchiveService)

// WithRequireJSON — отклонять payload, не являющийся JSON-документом.
func WithRequireJSON(v bool) ArchiveOption {
	return func(s *ArchiveService) { s.requireJSON = v }
}

// WithSaveTimeout — ограничение на одну запись в БД.
func WithSaveTimeout(d time.Duration) ArchiveOption {
	return func(s *ArchiveService) { s.timeout = d }
}

// NewArchiveService — DI-конструктор.
func NewArchiveService(repo ports.ArchiveRepository, cache ports.DeliveryCache, log ports.Logger, opts ...ArchiveOption) *ArchiveService {
	s := &ArchiveService{repo: repo, cache: cache, log: log, timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ArchiveMessage — сохранить доставку в архив.
// Шаги:
//  1. доставка уже в кэше → ничего не делаем;
//  2. при requireJSON — проверка payload (вернёт validate.ErrInvalidPayload);
//  3. идемпотентная вставка в БД;
//  4. отметка в кэше.
func (s *ArchiveService) ArchiveMessage(ctx context.Context, msg *domain.Message) error {
	key := ctxmeta.DeliveryID(msg.Topic, msg.Partition, msg.Offset)

	if s.cache != nil && s.cache.Seen(ctx, key) {
		s.log.Debugf(ctx, "delivery %s already archived (cache)", key)
		return nil
	}

	if s.requireJSON {
		if err := validate.JSONDocument(msg.Payload); err != nil {
			return fmt.Errorf("delivery %s: %w", key, err)
		}
	}

	saveCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		saveCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	inserted, err := s.repo.Save(saveCtx, msg)
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", key, err)
	}

	if s.cache != nil {
		s.cache.Mark(ctx, key)
	}

	if inserted {
		s.log.Infof(ctx, "archived %s bytes=%d took=%s", key, len(msg.Payload), time.Since(start))
	} else {
		s.log.Debugf(ctx, "delivery %s already archived (db)", key)
	}
	return nil
}
