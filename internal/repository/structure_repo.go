package repository

import (
	"context"
	"errors"
	"pokerclock/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by updates and deletes that matched no document
var ErrNotFound = errors.New("document not found")

// StructureRepo handles MongoDB operations for blind structures
type StructureRepo interface {
	Create(ctx context.Context, s *model.BlindStructure) (string, error)
	GetByID(ctx context.Context, id string) (*model.BlindStructure, error)
	ListByHost(ctx context.Context, hostID string) ([]*model.BlindStructure, error)
	Update(ctx context.Context, s *model.BlindStructure) error
	Delete(ctx context.Context, id string) error
}

type structureRepo struct {
	collection *mongo.Collection
}

// NewStructureRepo creates a new blind structure repository
func NewStructureRepo(db *mongo.Database) StructureRepo {
	return &structureRepo{
		collection: db.Collection("structures"),
	}
}

// Create stores s under a fresh ObjectID hex string and sets s.ID
func (r *structureRepo) Create(ctx context.Context, s *model.BlindStructure) (string, error) {
	now := time.Now()
	s.ID = primitive.NewObjectID().Hex()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		s.ID = ""
		return "", err
	}
	return s.ID, nil
}

func (r *structureRepo) GetByID(ctx context.Context, id string) (*model.BlindStructure, error) {
	var s model.BlindStructure
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *structureRepo) ListByHost(ctx context.Context, hostID string) ([]*model.BlindStructure, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"hostId": hostID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	structures := []*model.BlindStructure{}
	if err := cursor.All(ctx, &structures); err != nil {
		return nil, err
	}
	return structures, nil
}

func (r *structureRepo) Update(ctx context.Context, s *model.BlindStructure) error {
	s.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *structureRepo) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
