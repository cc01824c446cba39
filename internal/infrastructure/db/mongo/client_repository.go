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

const clientCollection = "clients"

// ClientRepository implements ports.ClientRepository using MongoDB.
type ClientRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{db: db, coll: db.Collection(clientCollection)}
}

// EnsureIndexes creates the owner index the scoped list query relies on.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "therapist_id", Value: 1}, {Key: "status", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("ensure client indexes: %w", err)
	}
	return nil
}

type mongoClient struct {
	ID          int64  `bson:"_id"`
	FirstName   string `bson:"first_name"`
	LastName    string `bson:"last_name"`
	Email       string `bson:"email,omitempty"`
	Phone       string `bson:"phone,omitempty"`
	TherapistID int64  `bson:"therapist_id"`
	Status      string `bson:"status"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (mc mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:          mc.ID,
		FirstName:   mc.FirstName,
		LastName:    mc.LastName,
		Email:       mc.Email,
		Phone:       mc.Phone,
		TherapistID: mc.TherapistID,
		Status:      domain.ClientStatus(mc.Status),
		CreatedAt:   unixToTime(mc.CreatedAt),
		UpdatedAt:   unixToTime(mc.UpdatedAt),
	}
}

// ListActive returns active clients, filtered by owning therapist when
// ownerID is non-zero.
func (r *ClientRepository) ListActive(ctx context.Context, ownerID int64) ([]domain.Client, error) {
	filter := bson.M{"status": string(domain.ClientActive)}
	if ownerID != 0 {
		filter["therapist_id"] = ownerID
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Client
	for cursor.Next(ctx) {
		var mc mongoClient
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		out = append(out, *mc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return out, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	var mc mongoClient
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	id, err := nextSequence(ctx, r.db, clientCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoClient{
		ID:          id,
		FirstName:   client.FirstName,
		LastName:    client.LastName,
		Email:       client.Email,
		Phone:       client.Phone,
		TherapistID: client.TherapistID,
		Status:      string(client.Status),
		CreatedAt:   client.CreatedAt.Unix(),
		UpdatedAt:   client.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) Update(ctx context.Context, id int64, update ports.ClientUpdate) (*domain.Client, error) {
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
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}

	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var mc mongoClient
	if err := res.Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
