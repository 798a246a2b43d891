package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"github.com/luckydraw/draw-backend/api/routes"
	"github.com/luckydraw/draw-backend/internal/config"
	"github.com/luckydraw/draw-backend/internal/engine"
	"github.com/luckydraw/draw-backend/internal/handlers"
	"github.com/luckydraw/draw-backend/internal/repositories"
	mongorepo "github.com/luckydraw/draw-backend/internal/repositories/mongodb"
	"github.com/luckydraw/draw-backend/internal/services"
	"github.com/luckydraw/draw-backend/pkg/mongodb"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var rosterRepo repositories.RosterRepository = mongorepo.NewRosterRepository(db)
	var prizeRepo repositories.PrizeRepository = mongorepo.NewPrizeRepository(db)
	var exclusionRepo repositories.ExclusionRepository = mongorepo.NewExclusionRepository(db)
	var stateRepo repositories.StateRepository = mongorepo.NewStateRepository(db)
	var adminRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)

	// The selection engine, seeded from config for reproducible sessions.
	eng := engine.New(newRand(cfg.Draw.Seed))

	// Services
	drawDefaults := services.DrawDefaults{
		IncludeExcluded: cfg.Draw.IncludeExcluded,
		ExcludedRange:   excludedRange(cfg),
	}
	drawService := services.NewDrawService(rosterRepo, prizeRepo, exclusionRepo, stateRepo, eng, drawDefaults)
	rosterService := services.NewRosterService(rosterRepo, exclusionRepo)
	prizeService := services.NewPrizeService(prizeRepo)
	authService := services.NewAuthService(adminRepo, cfg)

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:   handlers.NewAuthHandler(authService),
		DrawHandler:   handlers.NewDrawHandler(drawService),
		RosterHandler: handlers.NewRosterHandler(rosterService),
		PrizeHandler:  handlers.NewPrizeHandler(prizeService),
	}
	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}
	slog.Info("Server exiting")
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func excludedRange(cfg *config.Config) *engine.Range {
	min, max := cfg.Draw.ExcludedRange()
	if min == nil && max == nil {
		return nil
	}
	return &engine.Range{Min: min, Max: max}
}
