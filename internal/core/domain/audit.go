package domain

import "time"

// AuditAction identifies what an actor did.
type AuditAction string

const (
	AuditLogin            AuditAction = "login"
	AuditClientCreated    AuditAction = "client_created"
	AuditClientUpdated    AuditAction = "client_updated"
	AuditClientDeleted    AuditAction = "client_deleted"
	AuditTherapistCreated AuditAction = "therapist_created"
	AuditTherapistUpdated AuditAction = "therapist_updated"
	AuditTherapistDeleted AuditAction = "therapist_deleted"
)

// AuditEntry is one persisted line of the audit trail: who did what to
// which record, and when.
type AuditEntry struct {
	ID         string      `json:"id"`
	ActorID    int64       `json:"actor_id"`
	ActorEmail string      `json:"actor_email"`
	Action     AuditAction `json:"action"`
	TargetID   int64       `json:"target_id,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	RecordedAt time.Time   `json:"recorded_at"`
}
