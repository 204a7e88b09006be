package store

import (
	"context"
	"time"

	"github.com/elielfilhodev/treino/models"
)

// UserRepository persists user accounts and profile data.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateAvatar(ctx context.Context, userID int64, avatarURL *string) (models.User, error)
}

// TokenRepository persists refresh-token hashes. Raw token values never
// reach this layer.
type TokenRepository interface {
	StoreRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	// FindUsableToken returns the stored token matching the hash when it is
	// neither revoked nor expired; ErrNotFound otherwise.
	FindUsableToken(ctx context.Context, tokenHash string) (models.RefreshToken, error)
	// RevokeByID marks a single token row as revoked.
	RevokeByID(ctx context.Context, tokenID int64) error
	// RevokeByHash marks every non-revoked token matching the hash as
	// revoked. Idempotent: revoking an unknown hash is not an error.
	RevokeByHash(ctx context.Context, tokenHash string) error
}

// PreferencesRepository stores the single preference row per user.
type PreferencesRepository interface {
	CreateEmpty(ctx context.Context, userID int64) error
	GetPreferences(ctx context.Context, userID int64) (models.Preferences, error)
	// ReplacePreferences overwrites both sets wholesale (upsert).
	ReplacePreferences(ctx context.Context, prefs models.Preferences) (models.Preferences, error)
}

// WorkoutUpdate carries a partial workout metadata update. Nil fields are
// left unchanged.
type WorkoutUpdate struct {
	Name        *string
	Description *string
	DayOfWeek   *int
	Time        *string
}

// ExerciseUpdate carries a partial exercise update. Nil fields are left
// unchanged.
type ExerciseUpdate struct {
	Name        *string
	Description *string
	Position    *int
	Completed   *bool
}

// WorkoutRepository owns workouts, their exercises and the completion
// history log.
type WorkoutRepository interface {
	ListWorkouts(ctx context.Context, userID int64, day *int) ([]models.Workout, error)
	// GetWorkout loads a workout with its ordered exercises and history.
	GetWorkout(ctx context.Context, workoutID int64) (models.Workout, error)
	CreateWorkout(ctx context.Context, workout models.Workout) (models.Workout, error)
	UpdateWorkout(ctx context.Context, workoutID int64, update WorkoutUpdate) (models.Workout, error)
	DeleteWorkout(ctx context.Context, workoutID int64) error

	GetExercise(ctx context.Context, exerciseID int64) (models.Exercise, error)
	AddExercise(ctx context.Context, exercise models.Exercise) (models.Exercise, error)
	UpdateExercise(ctx context.Context, exerciseID int64, update ExerciseUpdate) (models.Exercise, error)

	// SyncCompletion recomputes the workout's derived completed flag from
	// its exercises inside a single transaction. When the flag flips to
	// true a history row is appended in the same transaction. A workout
	// with zero exercises is never auto-completed. Returns the resulting
	// completed state.
	SyncCompletion(ctx context.Context, workoutID int64) (bool, error)

	// CompleteWorkout marks the workout completed and appends a history row
	// atomically. No-op when already completed; permitted with zero
	// exercises.
	CompleteWorkout(ctx context.Context, workoutID int64) error

	// ListHistory returns the caller's most recent completion entries,
	// newest first.
	ListHistory(ctx context.Context, userID int64, limit int) ([]models.HistoryEntry, error)
}

// ShoppingItemUpdate carries a partial shopping item update. Nil fields are
// left unchanged.
type ShoppingItemUpdate struct {
	Name      *string
	Quantity  *string
	Purchased *bool
}

// ShoppingRepository owns per-user shopping list items.
type ShoppingRepository interface {
	// ListItems returns items ordered unpurchased first, most recently
	// updated first within each group.
	ListItems(ctx context.Context, userID int64) ([]models.ShoppingItem, error)
	GetItem(ctx context.Context, itemID int64) (models.ShoppingItem, error)
	CreateItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error)
	UpdateItem(ctx context.Context, itemID int64, update ShoppingItemUpdate) (models.ShoppingItem, error)
	DeleteItem(ctx context.Context, itemID int64) error
}
