package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"midway_server/config"
	"midway_server/routes"
	"midway_server/services"
	"midway_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize the presence registry and the socket transport feeding it
	presenceService := services.NewPresenceService(dynamoService)
	presenceService.Freshness = cfg.PresenceFreshness()

	socketServer := socket.NewSocketServer(presenceService)
	notifier := socket.NewNotifier(socketServer)

	// Initialize the remaining services
	var placeSearcher services.PlaceSearcher
	if cfg.PlacesBaseURL != "" {
		placeSearcher = services.NewPlaceService(cfg.PlacesBaseURL, cfg.PlacesAPIKey, cfg.PlacesTimeout())
	} else {
		log.Println("⚠️ No place-search base URL configured, candidates will be synthetic only")
	}
	candidateService := &services.CandidateService{Places: placeSearcher}
	proximityService := &services.ProximityService{}
	matchService := services.NewMatchService(dynamoService, notifier, presenceService)
	avatarService := services.NewAvatarService(cfg.AWSRegion, cfg.AvatarBucket)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Midway")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Mount the socket.io transport
	r.PathPrefix("/socket.io/").Handler(socketServer)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("❌ Socket server stopped: %v", err)
		}
	}()
	defer socketServer.Close()

	// Register routes
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterCandidateRoutes(r, candidateService)
	routes.RegisterPresenceRoutes(r, presenceService)
	routes.RegisterProximityRoutes(r, presenceService, proximityService)
	routes.RegisterAvatarRoutes(r, avatarService)

	// Background loops: expire overdue matches and scan for overlapping
	// markers. Both stop when the process context ends.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ticker := time.NewTicker(time.Duration(cfg.MatchSweepSeconds) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := matchService.ExpireDue(ctx, now.UTC()); n > 0 {
					log.Printf("⏰ Expired %d overdue matches", n)
				}
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(time.Duration(cfg.ProximityScanSeconds) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				pairs := proximityService.DetectPairs(presenceService.ActiveSnapshot(now.UTC()))
				if len(pairs) > 0 {
					log.Printf("👥 %d overlapping marker pairs detected", len(pairs))
				}
			}
		}
	}()

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
