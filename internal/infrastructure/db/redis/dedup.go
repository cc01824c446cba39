package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// AuditDedup provides idempotency checks for the audit pipeline backed by
// Redis. Key format: audit:<actor_id>:<action>:<target_id>:<unix_timestamp>.
// The target id is part of the key so same-second mutations of different
// records stay distinct.
type AuditDedup struct {
	client *redis.Client
}

// NewAuditDedup creates an AuditDedup wrapping the given Redis client.
func NewAuditDedup(client *redis.Client) *AuditDedup {
	return &AuditDedup{client: client}
}

// IsDuplicate reports whether this exact audit event was already recorded.
func (d *AuditDedup) IsDuplicate(ctx context.Context, actorID int64, action string, targetID int64, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(actorID, action, targetID, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("audit dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been processed (expires after dedupTTL).
func (d *AuditDedup) Mark(ctx context.Context, actorID int64, action string, targetID int64, ts time.Time) error {
	return d.client.Set(ctx, d.key(actorID, action, targetID, ts), "1", dedupTTL).Err()
}

func (d *AuditDedup) key(actorID int64, action string, targetID int64, ts time.Time) string {
	return fmt.Sprintf("audit:%d:%s:%d:%d", actorID, action, targetID, ts.Unix())
}
