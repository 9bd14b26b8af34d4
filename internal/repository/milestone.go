package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"mission-tracker/internal/docstore"
	"mission-tracker/internal/domain"
)

type MilestoneRepository struct {
	store  docstore.Store
	logger zerolog.Logger
}

func NewMilestoneRepository(store docstore.Store, logger zerolog.Logger) *MilestoneRepository {
	return &MilestoneRepository{store: store, logger: logger}
}

// List returns every stored milestone in insertion order.
func (r *MilestoneRepository) List(ctx context.Context) ([]domain.Milestone, error) {
	var milestones []domain.Milestone
	if err := r.store.FindMany(ctx, domain.CollectionMilestone, docstore.Filter{}, &milestones); err != nil {
		r.logger.Error().Err(err).Msg("failed to list milestones")
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	return milestones, nil
}

// Create stores one catalog entry. Existing entries are never touched; the
// bootstrapper only calls this for ids it could not find.
func (r *MilestoneRepository) Create(ctx context.Context, milestone domain.Milestone) error {
	if _, err := r.store.Insert(ctx, domain.CollectionMilestone, milestone); err != nil {
		r.logger.Error().Err(err).Str("milestone_id", milestone.MilestoneID).Msg("failed to create milestone")
		return fmt.Errorf("failed to create milestone: %w", err)
	}
	return nil
}
