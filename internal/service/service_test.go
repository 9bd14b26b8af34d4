package service

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"mission-tracker/internal/catalog"
	"mission-tracker/internal/config"
	"mission-tracker/internal/database"
	"mission-tracker/internal/docstore"
	"mission-tracker/internal/repository"
)

// testEnv wires the services over a throwaway sqlite file, loading the
// embedded catalog but not seeding it.
type testEnv struct {
	catalog  *CatalogService
	players  *PlayerService
	progress *ProgressService
	store    docstore.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "tracker.db")}
	db, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close database: %v", err)
		}
	})

	entries, err := catalog.Load("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	store := docstore.NewSQLiteStore(db, zerolog.Nop())
	playerRepo := repository.NewPlayerRepository(store, zerolog.Nop())
	milestoneRepo := repository.NewMilestoneRepository(store, zerolog.Nop())
	rewardRepo := repository.NewRewardRepository(store, zerolog.Nop())

	return &testEnv{
		catalog:  NewCatalogService(entries, milestoneRepo, zerolog.Nop()),
		players:  NewPlayerService(playerRepo, zerolog.Nop()),
		progress: NewProgressService(playerRepo, rewardRepo, zerolog.Nop()),
		store:    store,
	}
}
