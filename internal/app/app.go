// Package app bundles the storage layer shared by the server and the seeder.
package app

import (
	"pokerclock/internal/cache"
	"pokerclock/internal/config"
	"pokerclock/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	StructureRepo repository.StructureRepo
	EventRepo     repository.EventRepo
	TableCache    cache.TableCache
	SnapshotCache cache.SnapshotCache
}

// New wires repositories on db and caches on rdb. rdb may be nil for tools
// that only touch Mongo.
func New(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *App {
	a := &App{
		StructureRepo: repository.NewStructureRepo(db),
		EventRepo:     repository.NewEventRepo(db),
	}
	if rdb != nil {
		a.TableCache = cache.NewTableCache(rdb)
		a.SnapshotCache = cache.NewSnapshotCache(rdb, cfg.SnapshotTTL)
	}
	return a
}
