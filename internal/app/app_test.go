package app

import (
	"context"
	"pokerclock/internal/config"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestNew(t *testing.T) {
	ctx := context.Background()
	// Connect is lazy, no server is needed to build the repositories.
	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database("pokerclock_test")
	cfg := &config.Config{SnapshotTTL: time.Hour}

	a := New(cfg, db, nil)
	if a.StructureRepo == nil || a.EventRepo == nil {
		t.Fatal("expected repositories to be wired")
	}
	if a.TableCache != nil || a.SnapshotCache != nil {
		t.Error("expected no caches without redis")
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	a = New(cfg, db, rdb)
	if a.TableCache == nil || a.SnapshotCache == nil {
		t.Fatal("expected caches to be wired")
	}
	if ok, err := a.TableCache.Exists(ctx, "nobody"); err != nil || ok {
		t.Errorf("expected empty cache, got %v, %v", ok, err)
	}
}
