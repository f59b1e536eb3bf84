package main

import (
	"context"
	"flag"
	"log"
	"pokerclock/internal/app"
	"pokerclock/internal/config"
	"pokerclock/internal/service"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	path := flag.String("f", "structures/default.yaml", "YAML file with blind structures")
	hostID := flag.String("host", "", "owner host id (defaults to the id of HOST_USERNAME)")
	flag.Parse()

	cfg := config.Load()

	structures, err := config.LoadStructures(*path)
	if err != nil {
		log.Fatalf("Failed to load structures: %v", err)
	}

	owner := *hostID
	if owner == "" {
		login, err := service.NewAuthService(cfg.HostUsername, cfg.HostPassword, cfg.JWTSecret, 0).
			Login(cfg.HostUsername, cfg.HostPassword)
		if err != nil {
			log.Fatalf("Failed to derive host id: %v", err)
		}
		owner = login.HostID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := app.New(cfg, client.Database(cfg.MongoDB), nil).StructureRepo
	for i := range structures {
		st := &structures[i]
		st.HostID = owner
		id, err := repo.Create(ctx, st)
		if err != nil {
			log.Fatalf("Failed to insert structure %q: %v", st.Title, err)
		}
		log.Printf("Inserted structure %q (%d levels) with ID: %s", st.Title, len(st.Levels), id)
	}

	log.Printf("Seeded %d structures for host %s", len(structures), owner)
}
