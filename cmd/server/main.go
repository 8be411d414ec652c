package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weekhours-service/internal/config"
	"weekhours-service/internal/handler"
	"weekhours-service/internal/i18n"
	"weekhours-service/internal/identity"
	"weekhours-service/internal/service"
	"weekhours-service/internal/store"
)

func main() {
	cfg := config.Load()

	i18n.Init(cfg.DefaultLocale)

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		log.Fatalf("Failed to load work rules: %v", err)
	}

	// Connect to MongoDB
	db, err := store.NewMongoDB(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dayStore, err := store.NewDayStore(ctx, db)
	if err != nil {
		cancel()
		log.Fatalf("Failed to init day store: %v", err)
	}
	weekStore, err := store.NewWeekStore(ctx, db)
	cancel()
	if err != nil {
		log.Fatalf("Failed to init week store: %v", err)
	}

	idClient := identity.NewClient(cfg.IdentityURL, cfg.IdentityAPIKey)
	tracker := service.NewTracker(dayStore, weekStore, rules)

	// Routes: everything under /api requires a session token
	api := http.NewServeMux()
	handler.NewTrackerHandler(tracker).RegisterRoutes(api)

	mux := http.NewServeMux()
	mux.Handle("/api/", handler.AuthMiddleware(idClient)(api))

	// Health checks
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.LoggingMiddleware(handler.LocaleMiddleware(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Week hours service started on :%s (env: %s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
}
