package repository

import (
	"context"
	"pokerclock/internal/model"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepo stores the history of every table
type EventRepo interface {
	Record(ctx context.Context, ev *model.TableEvent) error
	ListByTable(ctx context.Context, code string, limit int) ([]*model.TableEvent, error)
}

type eventRepo struct {
	collection *mongo.Collection
}

func NewEventRepo(db *mongo.Database) EventRepo {
	return &eventRepo{
		collection: db.Collection("table_events"),
	}
}

func (r *eventRepo) Record(ctx context.Context, ev *model.TableEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, ev)
	return err
}

// ListByTable returns the newest events of a table first
func (r *eventRepo) ListByTable(ctx context.Context, code string, limit int) ([]*model.TableEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"tableCode": code}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []*model.TableEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
