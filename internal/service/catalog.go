package service

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"mission-tracker/internal/constants"
	"mission-tracker/internal/domain"
	"mission-tracker/internal/repository"
)

type CatalogService struct {
	milestones *repository.MilestoneRepository
	catalog    []domain.Milestone
	logger     zerolog.Logger
}

func NewCatalogService(catalog []domain.Milestone, milestones *repository.MilestoneRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{milestones: milestones, catalog: catalog, logger: logger}
}

// Ensure seeds catalog entries whose id is not yet stored and returns how
// many it created. Pure set-difference insert: stored entries are never
// updated or deleted, even when their titles differ from the catalog, so
// the call is safe to repeat.
func (s *CatalogService) Ensure(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	existing, err := s.milestones.List(ctx)
	if err != nil {
		return 0, err
	}
	stored := domain.NewStringSet()
	for _, m := range existing {
		stored.Add(m.MilestoneID)
	}

	created := 0
	for _, entry := range s.catalog {
		if stored.Has(entry.MilestoneID) {
			continue
		}
		if err := s.milestones.Create(ctx, entry); err != nil {
			return created, err
		}
		created++
	}

	if created > 0 {
		s.logger.Info().Int("created", created).Msg("milestone catalog seeded")
	}
	return created, nil
}

// List returns stored milestones sorted ascending by order. Entries without
// an explicit order sort last; ties keep insertion order.
func (s *CatalogService) List(ctx context.Context) ([]domain.Milestone, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	milestones, err := s.milestones.List(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(milestones, func(a, b domain.Milestone) int {
		return a.SortOrder() - b.SortOrder()
	})
	return milestones, nil
}
