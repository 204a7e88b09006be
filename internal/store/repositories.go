package store

import "github.com/elielfilhodev/treino/internal/logger"

// Repositories bundles every repository behind one value so the service
// layer can be wired with a single dependency.
type Repositories struct {
	UserRepository
	TokenRepository
	PreferencesRepository
	WorkoutRepository
	ShoppingRepository
}

// NewRepositories constructs all repositories over the shared database
// connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	log.Debug().Msg("creating repositories")
	return &Repositories{
		UserRepository:        NewUserRepository(db, log),
		TokenRepository:       NewTokenRepository(db, log),
		PreferencesRepository: NewPreferencesRepository(db, log),
		WorkoutRepository:     NewWorkoutRepository(db, log),
		ShoppingRepository:    NewShoppingRepository(db, log),
	}
}
