package fx

import (
	"database/sql"
	"mission-tracker/internal/catalog"
	"mission-tracker/internal/config"
	"mission-tracker/internal/database"
	"mission-tracker/internal/docstore"
	"mission-tracker/internal/domain"
	"mission-tracker/internal/logger"
	"mission-tracker/internal/repository"
	"mission-tracker/internal/server"
	"mission-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideStore(sqlDB *sql.DB, log zerolog.Logger) docstore.Store {
	return docstore.NewSQLiteStore(sqlDB, log)
}

func ProvideCatalog(cfg *config.Config) ([]domain.Milestone, error) {
	return catalog.Load(cfg.CatalogPath)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideStore),
	fx.Provide(ProvideCatalog),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMilestoneRepository),
	fx.Provide(repository.NewRewardRepository),
	// svc
	fx.Provide(service.NewCatalogService),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewProgressService),
	// server
	fx.Provide(server.NewServer),
)
