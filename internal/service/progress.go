package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"mission-tracker/internal/constants"
	"mission-tracker/internal/docstore"
	"mission-tracker/internal/domain"
	"mission-tracker/internal/repository"
)

type ProgressService struct {
	players *repository.PlayerRepository
	rewards *repository.RewardRepository
	logger  zerolog.Logger
}

func NewProgressService(players *repository.PlayerRepository, rewards *repository.RewardRepository, logger zerolog.Logger) *ProgressService {
	return &ProgressService{players: players, rewards: rewards, logger: logger}
}

// Complete records a milestone completion for the player with the given
// email. Coins are awarded only the first time a milestone is completed;
// repeat completions award nothing but still apply the revenue increase.
// Crossing the revenue threshold unlocks the first world exactly once.
//
// All player mutations are staged into a single update so a crash cannot
// leave coins awarded without the milestone marked completed.
func (s *ProgressService) Complete(ctx context.Context, email, milestoneID, speed string, revenueIncrease float64) (*domain.CompletionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	player, err := s.players.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	speed = domain.NormalizeSpeed(speed)

	update := docstore.Update{
		Inc: map[string]float64{domain.FieldRevenue: revenueIncrease},
	}

	award := 0
	if !player.CompletedMilestones.Has(milestoneID) {
		award = domain.BaseCompletionCoins + domain.SpeedBonus(speed)
		reward := &domain.Reward{
			PlayerID:    player.ID,
			MilestoneID: milestoneID,
			Reason:      domain.RewardReason(milestoneID, speed),
			Coins:       award,
		}
		if err := s.rewards.Append(ctx, reward); err != nil {
			return nil, fmt.Errorf("failed to record reward: %w", err)
		}
		update.Inc[domain.FieldCoins] = float64(award)
		update.AddToSet = map[string]any{domain.FieldCompletedMilestones: milestoneID}
	}

	newRevenue := player.Revenue + revenueIncrease
	unlocked := ""
	if newRevenue >= domain.WorldRevenueThreshold && !player.UnlockedWorlds.Has(domain.FirstWorldID) {
		unlocked = domain.FirstWorldID
		if update.AddToSet == nil {
			update.AddToSet = map[string]any{}
		}
		update.AddToSet[domain.FieldUnlockedWorlds] = unlocked
	}

	if err := s.players.Apply(ctx, email, update); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("email", email).
		Str("milestone_id", milestoneID).
		Int("coins_awarded", award).
		Float64("revenue_usd", newRevenue).
		Msg("milestone completion recorded")

	return &domain.CompletionResult{
		CoinsAwarded:  award,
		Revenue:       newRevenue,
		UnlockedWorld: unlocked,
	}, nil
}
