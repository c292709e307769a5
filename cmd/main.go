package main

import (
	"net/http"
	"os"
	"time"

	"github.com/senyabanana/marketplace-service/internal/auth"
	"github.com/senyabanana/marketplace-service/internal/db"
	"github.com/senyabanana/marketplace-service/internal/handlers"
	"github.com/senyabanana/marketplace-service/internal/repository"
	"github.com/senyabanana/marketplace-service/internal/router"
	"github.com/senyabanana/marketplace-service/internal/router/config"
	"github.com/senyabanana/marketplace-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load config")
	}
	if cfg.SecretKey == "" {
		logger.Fatal().Msg("SECRET_KEY is not set")
	}

	runDBMigration(logger, cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("error initializing database")
	}
	defer dbPool.Close()

	jobRepo := repository.NewPostgresJobRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)

	jobService := services.NewJobService(jobRepo)
	bidService := services.NewBidService(bidRepo, jobRepo)

	tokens := auth.NewTokenManager(cfg.SecretKey, auth.TokenTTL)
	authMW := auth.NewMiddleware(tokens, logger)

	jobHandler := handlers.NewJobHandler(jobService, logger, 5*time.Second)
	bidHandler := handlers.NewBidHandler(bidService, logger, 5*time.Second)
	authHandler := handlers.NewAuthHandler(tokens, logger, cfg.IsProduction())

	routes := router.InitRoutes(jobHandler, bidHandler, authHandler, authMW)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(routes)

	logger.Info().Str("address", cfg.ServerAddress).Msg("server is listening")
	if err := http.ListenAndServe(cfg.ServerAddress, corsHandler); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func runDBMigration(logger zerolog.Logger, migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create a new migrate instance")
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatal().Err(err).Msg("failed to run migrate up")
	}
	logger.Info().Msg("db migrated successfully")
}
