package service

import (
	"context"
	"fmt"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/models"
)

// preferencesService is the concrete implementation of PreferencesService.
type preferencesService struct {
	preferencesRepository store.PreferencesRepository
	logger                *logger.Logger
}

// NewPreferencesService constructs a PreferencesService over the given
// repository.
func NewPreferencesService(prefs store.PreferencesRepository, logger *logger.Logger) PreferencesService {
	return &preferencesService{
		preferencesRepository: prefs,
		logger:                logger,
	}
}

// GetPreferences returns the caller's preference sets, empty sets for a
// user who has never stored any.
func (s *preferencesService) GetPreferences(ctx context.Context, userID int64) (models.Preferences, error) {
	log := logger.FromContext(ctx)

	prefs, err := s.preferencesRepository.GetPreferences(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("preferences lookup failed")
		return models.Preferences{}, fmt.Errorf("preferences lookup failed: %w", err)
	}

	return prefs, nil
}

// ReplacePreferences overwrites both preference sets wholesale. Individual
// additions and removals are a client-side concern.
func (s *preferencesService) ReplacePreferences(ctx context.Context, prefs models.Preferences) (models.Preferences, error) {
	log := logger.FromContext(ctx)

	stored, err := s.preferencesRepository.ReplacePreferences(ctx, prefs)
	if err != nil {
		log.Err(err).Int64("userID", prefs.UserID).Msg("preferences replace failed")
		return models.Preferences{}, fmt.Errorf("preferences replace failed: %w", err)
	}

	return stored, nil
}
