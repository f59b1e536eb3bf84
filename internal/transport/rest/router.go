package rest

import (
	"net/http"
	"pokerclock/internal/service"
	"pokerclock/internal/transport/rest/handler"
	"pokerclock/internal/transport/rest/middleware"
	"pokerclock/internal/transport/ws"
	"strings"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	StructureService *service.StructureService
	TableService     *service.TableService
	WSHub            *ws.Hub
	CORSOrigins      []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	structureHandler := handler.NewStructureHandler(c.StructureService)
	tableHandler := handler.NewTableHandler(c.TableService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.TableService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSOrigins))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/tables", tableHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/tables/{code}", tableHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/tables/{code}/events", tableHandler.Events).Methods("GET", "OPTIONS")

	// WebSocket routes (host token in query param)
	v1.HandleFunc("/ws/tables/{code}", wsHandler.ViewerWS).Methods("GET")
	v1.HandleFunc("/ws/tables/{code}/host", wsHandler.HostWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, `{"error":"api docs not registered"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Host routes (require host auth)
	hostRoutes := v1.NewRoute().Subrouter()
	hostRoutes.Use(authMW.RequireHost)

	hostRoutes.HandleFunc("/structures", structureHandler.Create).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/structures", structureHandler.List).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/structures/{id}", structureHandler.Get).Methods("GET", "OPTIONS")
	hostRoutes.HandleFunc("/structures/{id}", structureHandler.Update).Methods("PUT", "OPTIONS")
	hostRoutes.HandleFunc("/structures/{id}", structureHandler.Delete).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/tables", tableHandler.Open).Methods("POST", "OPTIONS")
	hostRoutes.HandleFunc("/tables/{code}", tableHandler.Close).Methods("DELETE", "OPTIONS")
	hostRoutes.HandleFunc("/tables/{code}/commands", tableHandler.Command).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(origins []string) mux.MiddlewareFunc {
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
