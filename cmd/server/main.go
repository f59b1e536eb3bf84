package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	_ "pokerclock/docs"
	"pokerclock/internal/app"
	"pokerclock/internal/config"
	"pokerclock/internal/service"
	"pokerclock/internal/transport/rest"
	"pokerclock/internal/transport/ws"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// @title Poker Clock API
// @version 1.0
// @description Live poker blind clocks with push updates
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("started")
	ctx := context.Background()
	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories and caches
	store := app.New(cfg, db, rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.HostUsername, cfg.HostPassword, cfg.JWTSecret, cfg.TokenTTL)
	structureSvc := service.NewStructureService(store.StructureRepo)
	tableSvc := service.NewTableService(store.StructureRepo, store.EventRepo, store.TableCache, store.SnapshotCache, cfg.TickInterval)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	tableSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		StructureService: structureSvc,
		TableService:     tableSvc,
		WSHub:            wsHub,
		CORSOrigins:      cfg.CORSOrigins,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Printf("Host auth: username=%s", cfg.HostUsername)
		log.Printf("Tick interval: %v", cfg.TickInterval)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/structures")
		log.Println("  POST/GET /v1/tables")
		log.Println("  POST /v1/tables/{code}/commands")
		log.Println("  GET  /v1/tables/{code}/events")
		log.Println("  WS  /v1/ws/tables/{code}")
		log.Println("  WS  /v1/ws/tables/{code}/host")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	tableSvc.Shutdown(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
