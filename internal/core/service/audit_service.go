package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/ports"
)

// AuditDedup abstracts the idempotency store (Redis) for audit events. The
// key covers actor, action, target, and timestamp: two mutations of
// different records in the same second are distinct events, not retries.
type AuditDedup interface {
	IsDuplicate(ctx context.Context, actorID int64, action string, targetID int64, ts time.Time) (bool, error)
	Mark(ctx context.Context, actorID int64, action string, targetID int64, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup AuditDedup
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup AuditDedup, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single audit event. Duplicate events
// (same actor, action, target, and timestamp) are silently skipped so
// retried enqueues never double-record.
func (s *auditService) Process(ctx context.Context, in ports.AuditEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.ActorID, string(in.Action), in.TargetID, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Int64("actor_id", in.ActorID).Msg("audit dedup check failed, recording anyway")
	} else if isDup {
		s.log.Debug().Int64("actor_id", in.ActorID).Str("action", string(in.Action)).Msg("duplicate audit event skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, in.ActorID, string(in.Action), in.TargetID, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Int64("actor_id", in.ActorID).Msg("failed to set audit dedup key")
	}

	entry := &domain.AuditEntry{
		ID:         ulid.MustNew(ulid.Timestamp(in.Timestamp), rand.Reader).String(),
		ActorID:    in.ActorID,
		ActorEmail: in.ActorEmail,
		Action:     in.Action,
		TargetID:   in.TargetID,
		Timestamp:  in.Timestamp,
		RecordedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Info().
		Int64("actor_id", in.ActorID).
		Str("action", string(in.Action)).
		Int64("target_id", in.TargetID).
		Msg("audit event recorded")

	return nil
}
