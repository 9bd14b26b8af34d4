package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"mission-tracker/internal/docstore"
	"mission-tracker/internal/domain"
)

type RewardRepository struct {
	store  docstore.Store
	logger zerolog.Logger
}

func NewRewardRepository(store docstore.Store, logger zerolog.Logger) *RewardRepository {
	return &RewardRepository{store: store, logger: logger}
}

// Append writes one audit record. Rewards are history: they are never
// updated, deleted, or read back by any exposed operation.
func (r *RewardRepository) Append(ctx context.Context, reward *domain.Reward) error {
	if reward.CreatedAt.IsZero() {
		reward.CreatedAt = time.Now().UTC()
	}
	if _, err := r.store.Insert(ctx, domain.CollectionReward, reward); err != nil {
		r.logger.Error().Err(err).Str("player_id", reward.PlayerID).Msg("failed to append reward")
		return fmt.Errorf("failed to append reward: %w", err)
	}
	return nil
}
