package http

import (
	"context"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/service"
	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/models"
)

// Hand-rolled fakes of the service interfaces. Each method field can be
// overridden per test case; unset methods panic loudly when hit.

type mockAuthService struct {
	registerFn     func(ctx context.Context, name, email, password string) (models.User, models.TokenPair, error)
	loginFn        func(ctx context.Context, email, password string) (models.User, models.TokenPair, error)
	refreshFn      func(ctx context.Context, refreshRaw string) (models.User, models.TokenPair, error)
	logoutFn       func(ctx context.Context, refreshRaw string) error
	verifyAccessFn func(ctx context.Context, tokenString string) (models.Token, error)
	profileFn      func(ctx context.Context, userID int64) (models.User, error)
	updateAvatarFn func(ctx context.Context, userID int64, avatarURL *string) (models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (models.User, models.TokenPair, error) {
	return m.registerFn(ctx, name, email, password)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, models.TokenPair, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshRaw string) (models.User, models.TokenPair, error) {
	return m.refreshFn(ctx, refreshRaw)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshRaw string) error {
	return m.logoutFn(ctx, refreshRaw)
}

func (m *mockAuthService) VerifyAccess(ctx context.Context, tokenString string) (models.Token, error) {
	return m.verifyAccessFn(ctx, tokenString)
}

func (m *mockAuthService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return m.profileFn(ctx, userID)
}

func (m *mockAuthService) UpdateAvatar(ctx context.Context, userID int64, avatarURL *string) (models.User, error) {
	return m.updateAvatarFn(ctx, userID, avatarURL)
}

type mockWorkoutService struct {
	listWorkoutsFn    func(ctx context.Context, userID int64, day *int) ([]models.Workout, error)
	getWorkoutFn      func(ctx context.Context, userID, workoutID int64) (models.Workout, error)
	createWorkoutFn   func(ctx context.Context, workout models.Workout) (models.Workout, error)
	updateWorkoutFn   func(ctx context.Context, userID, workoutID int64, update store.WorkoutUpdate) (models.Workout, error)
	deleteWorkoutFn   func(ctx context.Context, userID, workoutID int64) error
	addExerciseFn     func(ctx context.Context, userID, workoutID int64, exercise models.Exercise) (models.Exercise, error)
	updateExerciseFn  func(ctx context.Context, userID, workoutID, exerciseID int64, update store.ExerciseUpdate) (models.Exercise, error)
	toggleExerciseFn  func(ctx context.Context, userID, workoutID, exerciseID int64, completed *bool) (models.Exercise, error)
	completeWorkoutFn func(ctx context.Context, userID, workoutID int64) (models.Workout, error)
	historyFn         func(ctx context.Context, userID int64) ([]models.HistoryEntry, error)
}

func (m *mockWorkoutService) ListWorkouts(ctx context.Context, userID int64, day *int) ([]models.Workout, error) {
	return m.listWorkoutsFn(ctx, userID, day)
}

func (m *mockWorkoutService) GetWorkout(ctx context.Context, userID, workoutID int64) (models.Workout, error) {
	return m.getWorkoutFn(ctx, userID, workoutID)
}

func (m *mockWorkoutService) CreateWorkout(ctx context.Context, workout models.Workout) (models.Workout, error) {
	return m.createWorkoutFn(ctx, workout)
}

func (m *mockWorkoutService) UpdateWorkout(ctx context.Context, userID, workoutID int64, update store.WorkoutUpdate) (models.Workout, error) {
	return m.updateWorkoutFn(ctx, userID, workoutID, update)
}

func (m *mockWorkoutService) DeleteWorkout(ctx context.Context, userID, workoutID int64) error {
	return m.deleteWorkoutFn(ctx, userID, workoutID)
}

func (m *mockWorkoutService) AddExercise(ctx context.Context, userID, workoutID int64, exercise models.Exercise) (models.Exercise, error) {
	return m.addExerciseFn(ctx, userID, workoutID, exercise)
}

func (m *mockWorkoutService) UpdateExercise(ctx context.Context, userID, workoutID, exerciseID int64, update store.ExerciseUpdate) (models.Exercise, error) {
	return m.updateExerciseFn(ctx, userID, workoutID, exerciseID, update)
}

func (m *mockWorkoutService) ToggleExercise(ctx context.Context, userID, workoutID, exerciseID int64, completed *bool) (models.Exercise, error) {
	return m.toggleExerciseFn(ctx, userID, workoutID, exerciseID, completed)
}

func (m *mockWorkoutService) CompleteWorkout(ctx context.Context, userID, workoutID int64) (models.Workout, error) {
	return m.completeWorkoutFn(ctx, userID, workoutID)
}

func (m *mockWorkoutService) History(ctx context.Context, userID int64) ([]models.HistoryEntry, error) {
	return m.historyFn(ctx, userID)
}

type mockShoppingService struct {
	listItemsFn       func(ctx context.Context, userID int64) ([]models.ShoppingItem, error)
	createItemFn      func(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error)
	updateItemFn      func(ctx context.Context, userID, itemID int64, update store.ShoppingItemUpdate) (models.ShoppingItem, error)
	togglePurchasedFn func(ctx context.Context, userID, itemID int64, purchased *bool) (models.ShoppingItem, error)
	deleteItemFn      func(ctx context.Context, userID, itemID int64) error
}

func (m *mockShoppingService) ListItems(ctx context.Context, userID int64) ([]models.ShoppingItem, error) {
	return m.listItemsFn(ctx, userID)
}

func (m *mockShoppingService) CreateItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error) {
	return m.createItemFn(ctx, item)
}

func (m *mockShoppingService) UpdateItem(ctx context.Context, userID, itemID int64, update store.ShoppingItemUpdate) (models.ShoppingItem, error) {
	return m.updateItemFn(ctx, userID, itemID, update)
}

func (m *mockShoppingService) TogglePurchased(ctx context.Context, userID, itemID int64, purchased *bool) (models.ShoppingItem, error) {
	return m.togglePurchasedFn(ctx, userID, itemID, purchased)
}

func (m *mockShoppingService) DeleteItem(ctx context.Context, userID, itemID int64) error {
	return m.deleteItemFn(ctx, userID, itemID)
}

type mockPreferencesService struct {
	getPreferencesFn     func(ctx context.Context, userID int64) (models.Preferences, error)
	replacePreferencesFn func(ctx context.Context, prefs models.Preferences) (models.Preferences, error)
}

func (m *mockPreferencesService) GetPreferences(ctx context.Context, userID int64) (models.Preferences, error) {
	return m.getPreferencesFn(ctx, userID)
}

func (m *mockPreferencesService) ReplacePreferences(ctx context.Context, prefs models.Preferences) (models.Preferences, error) {
	return m.replacePreferencesFn(ctx, prefs)
}

// trustedAuth is a VerifyAccess stub that accepts the token "valid-token"
// for the given user and rejects everything else.
func trustedAuth(userID int64) *mockAuthService {
	return &mockAuthService{
		verifyAccessFn: func(_ context.Context, tokenString string) (models.Token, error) {
			if tokenString != "valid-token" {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{UserID: userID}, nil
		},
	}
}

// newTestHandler builds a Handler over the given fakes; nil fakes stay nil
// and will panic if a test unexpectedly routes into them.
func newTestHandler(auth service.AuthService, workouts service.WorkoutService, shopping service.ShoppingService, prefs service.PreferencesService) *Handler {
	return NewHandler(&service.Services{
		AuthService:        auth,
		WorkoutService:     workouts,
		ShoppingService:    shopping,
		PreferencesService: prefs,
	}, logger.Nop())
}
