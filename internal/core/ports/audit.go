package ports

import (
	"context"
	"time"

	"github.com/practicewell/records-system/internal/core/domain"
)

// AuditEventInput is the DTO handed from handlers to the audit pipeline.
type AuditEventInput struct {
	ActorID    int64
	ActorEmail string
	Action     domain.AuditAction
	TargetID   int64
	Timestamp  time.Time
}

// AuditService processes audit events coming off the dispatcher.
type AuditService interface {
	Process(ctx context.Context, event AuditEventInput) error
}

// AuditRepository persists and reads the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int64) ([]domain.AuditEntry, error)
}
