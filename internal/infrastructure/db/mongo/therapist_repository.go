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

const therapistCollection = "therapists"

// TherapistRepository implements ports.TherapistRepository using MongoDB.
type TherapistRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTherapistRepository(db *mongo.Database) *TherapistRepository {
	return &TherapistRepository{db: db, coll: db.Collection(therapistCollection)}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *TherapistRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure therapist indexes: %w", err)
	}
	return nil
}

type mongoTherapist struct {
	ID           int64  `bson:"_id"`
	FirstName    string `bson:"first_name"`
	LastName     string `bson:"last_name"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (mt mongoTherapist) toDomain() *domain.Therapist {
	return &domain.Therapist{
		ID:           mt.ID,
		FirstName:    mt.FirstName,
		LastName:     mt.LastName,
		Email:        mt.Email,
		PasswordHash: mt.PasswordHash,
		Role:         domain.Role(mt.Role),
		CreatedAt:    unixToTime(mt.CreatedAt),
		UpdatedAt:    unixToTime(mt.UpdatedAt),
	}
}

func (r *TherapistRepository) FindByEmail(ctx context.Context, email string) (*domain.Therapist, error) {
	var mt mongoTherapist
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTherapistNotFound
		}
		return nil, fmt.Errorf("find therapist by email: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TherapistRepository) FindByID(ctx context.Context, id int64) (*domain.Therapist, error) {
	var mt mongoTherapist
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTherapistNotFound
		}
		return nil, fmt.Errorf("find therapist: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TherapistRepository) List(ctx context.Context) ([]domain.Therapist, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list therapists: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Therapist
	for cursor.Next(ctx) {
		var mt mongoTherapist
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode therapist: %w", err)
		}
		out = append(out, *mt.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list therapists: %w", err)
	}
	return out, nil
}

func (r *TherapistRepository) Create(ctx context.Context, t *domain.Therapist) (*domain.Therapist, error) {
	id, err := nextSequence(ctx, r.db, therapistCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoTherapist{
		ID:           id,
		FirstName:    t.FirstName,
		LastName:     t.LastName,
		Email:        t.Email,
		PasswordHash: t.PasswordHash,
		Role:         string(t.Role),
		CreatedAt:    t.CreatedAt.Unix(),
		UpdatedAt:    t.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTherapistExists
		}
		return nil, fmt.Errorf("insert therapist: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *TherapistRepository) Update(ctx context.Context, id int64, update ports.TherapistUpdate) (*domain.Therapist, error) {
	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if update.FirstName != nil {
		set["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		set["last_name"] = *update.LastName
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Role != nil {
		set["role"] = string(*update.Role)
	}
	if update.PasswordHash != nil {
		set["password_hash"] = *update.PasswordHash
	}

	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var mt mongoTherapist
	if err := res.Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTherapistNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTherapistExists
		}
		return nil, fmt.Errorf("update therapist: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TherapistRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete therapist: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTherapistNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
