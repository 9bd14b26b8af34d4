package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"mission-tracker/internal/docstore"
	"mission-tracker/internal/domain"
)

type PlayerRepository struct {
	store  docstore.Store
	logger zerolog.Logger
}

func NewPlayerRepository(store docstore.Store, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{store: store, logger: logger}
}

// GetByEmail returns the player owning email, or domain.ErrPlayerNotFound.
func (r *PlayerRepository) GetByEmail(ctx context.Context, email string) (*domain.Player, error) {
	var player domain.Player
	err := r.store.FindOne(ctx, domain.CollectionPlayer, docstore.Filter{domain.FieldEmail: email}, &player)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrPlayerNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Str("email", email).Msg("failed to load player")
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	return &player, nil
}

// Create stores a fresh player record and returns its generated id.
func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) (string, error) {
	id, err := r.store.Insert(ctx, domain.CollectionPlayer, player)
	if err != nil {
		r.logger.Error().Err(err).Str("email", player.Email).Msg("failed to create player")
		return "", fmt.Errorf("failed to create player: %w", err)
	}
	return id, nil
}

// Apply runs staged completion mutations against the player record keyed by
// email, in one write.
func (r *PlayerRepository) Apply(ctx context.Context, email string, update docstore.Update) error {
	err := r.store.UpdateOne(ctx, domain.CollectionPlayer, docstore.Filter{domain.FieldEmail: email}, update)
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.ErrPlayerNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Str("email", email).Msg("failed to update player")
		return fmt.Errorf("failed to update player: %w", err)
	}
	return nil
}
