package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vanguox/accounts-api/internal/api/metrics"
	"github.com/vanguox/accounts-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, email, kind string, ts time.Time) (bool, error)
	Mark(ctx context.Context, email, kind string, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation. Events flow through
// the queue dispatcher, so Process runs on worker goroutines, never on the
// request path.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single auth event.
func (s *auditService) Process(ctx context.Context, in ports.AuthEventInput) error {
	// Idempotency check — silently skip replays (e.g. after a worker restart).
	isDup, err := s.dedup.IsDuplicate(ctx, in.Email, in.Kind, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("dedup check failed, recording anyway")
	} else if isDup {
		metrics.AuthEventsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("email", in.Email).Str("kind", in.Kind).Msg("duplicate auth event skipped")
		return nil
	}
	metrics.AuthEventsDedupTotal.WithLabelValues("miss").Inc()

	// Mark before writing so a retried insert cannot double-record.
	if markErr := s.dedup.Mark(ctx, in.Email, in.Kind, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("email", in.Email).Msg("failed to set dedup key")
	}

	if err := s.repo.InsertEvent(ctx, in); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	metrics.AuthEventsRecordedTotal.WithLabelValues(in.Kind).Inc()
	s.log.Info().
		Str("email", in.Email).
		Str("kind", in.Kind).
		Msg("auth event recorded")

	return nil
}
