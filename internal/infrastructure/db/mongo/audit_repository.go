package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/ports"
)

const auditCollection = "audit_entries"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// Insert persists one audit entry. Entry ids are ULIDs assigned by the
// audit service.
func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := bson.M{
		"_id":         entry.ID,
		"actor_id":    entry.ActorID,
		"actor_email": entry.ActorEmail,
		"action":      string(entry.Action),
		"timestamp":   entry.Timestamp.UTC(),
		"recorded_at": entry.RecordedAt.UTC(),
	}
	if entry.TargetID != 0 {
		doc["target_id"] = entry.TargetID
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

type mongoAuditEntry struct {
	ID         string    `bson:"_id"`
	ActorID    int64     `bson:"actor_id"`
	ActorEmail string    `bson:"actor_email"`
	Action     string    `bson:"action"`
	TargetID   int64     `bson:"target_id,omitempty"`
	Timestamp  time.Time `bson:"timestamp"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// List returns the most recent entries, newest first. ULID ids sort
// lexicographically by creation time, so _id descending is chronological.
func (r *AuditRepository) List(ctx context.Context, limit int64) ([]domain.AuditEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.AuditEntry
	for cursor.Next(ctx) {
		var me mongoAuditEntry
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		out = append(out, domain.AuditEntry{
			ID:         me.ID,
			ActorID:    me.ActorID,
			ActorEmail: me.ActorEmail,
			Action:     domain.AuditAction(me.Action),
			TargetID:   me.TargetID,
			Timestamp:  me.Timestamp,
			RecordedAt: me.RecordedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return out, nil
}
