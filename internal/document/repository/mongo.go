package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crmhub/crm/backend/go-services/internal/document"
	"github.com/crmhub/crm/backend/go-services/pkg/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores document requests in a MongoDB collection keyed by the
// string "id" field.
type MongoRepo struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) *MongoRepo {
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := col.Indexes().CreateMany(ctx, idx); err != nil {
		logger.Warnf("documents: could not ensure indexes: %v", err)
	}
	return &MongoRepo{col: col, now: time.Now}
}

// Create inserts a copy of req; req gets its ID and CreatedAt only once the insert succeeded.
func (m *MongoRepo) Create(ctx context.Context, req *document.Request) (string, error) {
	rec := *req
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.CreatedAt = m.now().UTC()
	if _, err := m.col.InsertOne(ctx, &rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
		return "", err
	}
	req.ID, req.CreatedAt = rec.ID, rec.CreatedAt
	return rec.ID, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*document.Request, error) {
	var d document.Request
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*document.Request, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*document.Request{}
	for cur.Next(ctx) {
		var d document.Request
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}
