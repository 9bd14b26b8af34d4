package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"mission-tracker/internal/constants"
	"mission-tracker/internal/domain"
	"mission-tracker/internal/repository"
)

type PlayerService struct {
	players *repository.PlayerRepository
	logger  zerolog.Logger
}

func NewPlayerService(players *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{players: players, logger: logger}
}

// Register finds or creates a player by email. Registering an existing
// email returns the stored player's id and leaves the record untouched,
// including its name.
func (s *PlayerService) Register(ctx context.Context, name, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	existing, err := s.players.GetByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		return "", err
	}

	player := domain.NewPlayer(name, email)
	id, err := s.players.Create(ctx, player)
	if err != nil {
		return "", fmt.Errorf("failed to register player: %w", err)
	}

	s.logger.Info().Str("email", email).Str("player_id", id).Msg("player registered")
	return id, nil
}

// Summary returns the stored state for a player.
func (s *PlayerService) Summary(ctx context.Context, email string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.players.GetByEmail(ctx, email)
}
