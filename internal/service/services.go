package service

import (
	"github.com/elielfilhodev/treino/internal/config"
	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/store"
)

type Services struct {
	AuthService        AuthService
	WorkoutService     WorkoutService
	ShoppingService    ShoppingService
	PreferencesService PreferencesService
}

func NewServices(repositories *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:        NewAuthService(repositories.UserRepository, repositories.TokenRepository, repositories.PreferencesRepository, cfg.Auth, logger),
		WorkoutService:     NewWorkoutService(repositories.WorkoutRepository, logger),
		ShoppingService:    NewShoppingService(repositories.ShoppingRepository, logger),
		PreferencesService: NewPreferencesService(repositories.PreferencesRepository, logger),
	}
}
