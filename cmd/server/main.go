package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"mission-tracker/internal/config"
	"mission-tracker/internal/constants"
	fxmodules "mission-tracker/internal/fx"
	"mission-tracker/internal/logger"
	"mission-tracker/internal/server"
	"mission-tracker/internal/service"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	apiServer *server.Server,
	catalogService *service.CatalogService,
	cfg *config.Config,
	db *sql.DB,
	log zerolog.Logger,
) {
	logger.ApplyLevel(log, cfg.LogLevel)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           c.Handler(apiServer.Router()),
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.SeedCatalogOnStart {
				created, err := catalogService.Ensure(ctx)
				if err != nil {
					return fmt.Errorf("failed to seed milestone catalog: %w", err)
				}
				log.Info().Int("created", created).Msg("milestone catalog ready")
			}

			go func() {
				log.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing database connection")
			}

			log.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
