package service

import (
	"context"

	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/models"
)

// AuthService owns the account and token lifecycle: registration, login,
// refresh-token rotation, logout and access-token verification.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (models.User, models.TokenPair, error)
	Login(ctx context.Context, email, password string) (models.User, models.TokenPair, error)
	// Refresh exchanges a usable refresh token for a fresh pair and the
	// account it belongs to. The presented token is revoked in the
	// process, so every raw value is single-use.
	Refresh(ctx context.Context, refreshRaw string) (models.User, models.TokenPair, error)
	// Logout revokes the presented refresh token. Unknown tokens are
	// ignored, so repeating a logout is harmless.
	Logout(ctx context.Context, refreshRaw string) error
	// VerifyAccess validates an access token string and returns the parsed
	// token with its UserID claim.
	VerifyAccess(ctx context.Context, tokenString string) (models.Token, error)
	// Profile returns the user's public record with preferences embedded.
	Profile(ctx context.Context, userID int64) (models.User, error)
	UpdateAvatar(ctx context.Context, userID int64, avatarURL *string) (models.User, error)
}

// WorkoutService owns workout and exercise operations, including the
// ownership checks and the derived-completion rule.
type WorkoutService interface {
	ListWorkouts(ctx context.Context, userID int64, day *int) ([]models.Workout, error)
	GetWorkout(ctx context.Context, userID, workoutID int64) (models.Workout, error)
	CreateWorkout(ctx context.Context, workout models.Workout) (models.Workout, error)
	UpdateWorkout(ctx context.Context, userID, workoutID int64, update store.WorkoutUpdate) (models.Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID int64) error

	AddExercise(ctx context.Context, userID, workoutID int64, exercise models.Exercise) (models.Exercise, error)
	UpdateExercise(ctx context.Context, userID, workoutID, exerciseID int64, update store.ExerciseUpdate) (models.Exercise, error)

	// ToggleExercise sets the exercise's completed flag to the given value,
	// or flips the current one when completed is nil.
	ToggleExercise(ctx context.Context, userID, workoutID, exerciseID int64, completed *bool) (models.Exercise, error)

	// CompleteWorkout marks the workout done regardless of exercise state
	// and returns the refreshed workout. Idempotent.
	CompleteWorkout(ctx context.Context, userID, workoutID int64) (models.Workout, error)

	// History returns the user's recent completion log, newest first.
	History(ctx context.Context, userID int64) ([]models.HistoryEntry, error)
}

// ShoppingService owns the per-user shopping list.
type ShoppingService interface {
	ListItems(ctx context.Context, userID int64) ([]models.ShoppingItem, error)
	CreateItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error)
	UpdateItem(ctx context.Context, userID, itemID int64, update store.ShoppingItemUpdate) (models.ShoppingItem, error)
	// TogglePurchased sets the item's purchased flag to the given value, or
	// flips the current one when purchased is nil.
	TogglePurchased(ctx context.Context, userID, itemID int64, purchased *bool) (models.ShoppingItem, error)
	DeleteItem(ctx context.Context, userID, itemID int64) error
}

// PreferencesService owns the user's goal and training-type sets.
type PreferencesService interface {
	GetPreferences(ctx context.Context, userID int64) (models.Preferences, error)
	// ReplacePreferences overwrites both sets wholesale.
	ReplacePreferences(ctx context.Context, prefs models.Preferences) (models.Preferences, error)
}
