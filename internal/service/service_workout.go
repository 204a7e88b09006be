// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eliel Filho

package service

import (
	"context"
	"fmt"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/models"
)

// historyLimit caps the entries returned by the cross-workout history feed.
const historyLimit = 20

// workoutService is the concrete implementation of WorkoutService. Every
// method that addresses a single workout first resolves it and checks that
// the caller owns it: a missing workout yields store.ErrNotFound, somebody
// else's workout yields ErrForbidden.
type workoutService struct {
	workoutRepository store.WorkoutRepository
	logger            *logger.Logger
}

// NewWorkoutService constructs a WorkoutService over the given repository.
func NewWorkoutService(workouts store.WorkoutRepository, logger *logger.Logger) WorkoutService {
	return &workoutService{
		workoutRepository: workouts,
		logger:            logger,
	}
}

// ListWorkouts returns the user's workouts, optionally restricted to one
// day of the week (0 = Sunday .. 6 = Saturday).
func (s *workoutService) ListWorkouts(ctx context.Context, userID int64, day *int) ([]models.Workout, error) {
	log := logger.FromContext(ctx)

	if day != nil && (*day < 0 || *day > 6) {
		return nil, ErrInvalidDataProvided
	}

	workouts, err := s.workoutRepository.ListWorkouts(ctx, userID, day)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("workout listing failed")
		return nil, fmt.Errorf("workout listing failed: %w", err)
	}

	return workouts, nil
}

// GetWorkout returns one of the caller's workouts with exercises and
// history loaded.
func (s *workoutService) GetWorkout(ctx context.Context, userID, workoutID int64) (models.Workout, error) {
	return s.ownedWorkout(ctx, userID, workoutID)
}

// CreateWorkout validates and persists a new workout together with any
// nested exercises.
func (s *workoutService) CreateWorkout(ctx context.Context, workout models.Workout) (models.Workout, error) {
	log := logger.FromContext(ctx)

	if workout.Name == "" || workout.Time == "" || workout.DayOfWeek < 0 || workout.DayOfWeek > 6 {
		log.Error().Int64("userID", workout.UserID).Msg("invalid workout data provided")
		return models.Workout{}, ErrInvalidDataProvided
	}
	for _, exercise := range workout.Exercises {
		if exercise.Name == "" {
			return models.Workout{}, ErrInvalidDataProvided
		}
	}

	created, err := s.workoutRepository.CreateWorkout(ctx, workout)
	if err != nil {
		log.Err(err).Int64("userID", workout.UserID).Msg("workout creation failed")
		return models.Workout{}, fmt.Errorf("workout creation failed: %w", err)
	}

	return created, nil
}

// UpdateWorkout applies a partial metadata update to one of the caller's
// workouts, then re-syncs the derived completed flag.
func (s *workoutService) UpdateWorkout(ctx context.Context, userID, workoutID int64, update store.WorkoutUpdate) (models.Workout, error) {
	log := logger.FromContext(ctx)

	if update.DayOfWeek != nil && (*update.DayOfWeek < 0 || *update.DayOfWeek > 6) {
		return models.Workout{}, ErrInvalidDataProvided
	}
	if update.Name != nil && *update.Name == "" {
		return models.Workout{}, ErrInvalidDataProvided
	}

	if _, err := s.ownedWorkout(ctx, userID, workoutID); err != nil {
		return models.Workout{}, err
	}

	updated, err := s.workoutRepository.UpdateWorkout(ctx, workoutID, update)
	if err != nil {
		log.Err(err).Int64("workoutID", workoutID).Msg("workout update failed")
		return models.Workout{}, fmt.Errorf("workout update failed: %w", err)
	}

	completed, err := s.workoutRepository.SyncCompletion(ctx, workoutID)
	if err != nil {
		log.Err(err).Int64("workoutID", workoutID).Msg("completion sync failed")
		return models.Workout{}, fmt.Errorf("completion sync failed: %w", err)
	}
	updated.Completed = completed

	return updated, nil
}

// DeleteWorkout removes one of the caller's workouts along with its
// exercises and history.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.ownedWorkout(ctx, userID, workoutID); err != nil {
		return err
	}

	if err := s.workoutRepository.DeleteWorkout(ctx, workoutID); err != nil {
		log.Err(err).Int64("workoutID", workoutID).Msg("workout deletion failed")
		return fmt.Errorf("workout deletion failed: %w", err)
	}

	return nil
}

// AddExercise appends an exercise to one of the caller's workouts and
// re-syncs the derived completed flag: adding a pending exercise to a
// completed workout flips it back to pending. A negative position means
// the caller did not pick one, and the exercise goes to the end of the
// list; explicit positions, zero included, are kept as sent.
func (s *workoutService) AddExercise(ctx context.Context, userID, workoutID int64, exercise models.Exercise) (models.Exercise, error) {
	log := logger.FromContext(ctx)

	if exercise.Name == "" {
		return models.Exercise{}, ErrInvalidDataProvided
	}

	workout, err := s.ownedWorkout(ctx, userID, workoutID)
	if err != nil {
		return models.Exercise{}, err
	}

	exercise.WorkoutID = workoutID
	if exercise.Position < 0 {
		exercise.Position = len(workout.Exercises)
	}

	created, err := s.workoutRepository.AddExercise(ctx, exercise)
	if err != nil {
		log.Err(err).Int64("workoutID", workoutID).Msg("exercise creation failed")
		return models.Exercise{}, fmt.Errorf("exercise creation failed: %w", err)
	}

	if _, err := s.workoutRepository.SyncCompletion(ctx, workoutID); err != nil {
		log.Err(err).Int64("workoutID", workoutID).Msg("completion sync failed")
		return models.Exercise{}, fmt.Errorf("completion sync failed: %w", err)
	}

	return created, nil
}

// UpdateExercise applies a partial update to an exercise of one of the
// caller's workouts, then re-syncs the workout's derived completed flag.
// An exercise that exists but hangs off a different workout of the same
// owner is rejected as forbidden.
func (s *workoutService) UpdateExercise(ctx context.Context, userID, workoutID, exerciseID int64, update store.ExerciseUpdate) (models.Exercise, error) {
	log := logger.FromContext(ctx)

	if update.Name != nil && *update.Name == "" {
		return models.Exercise{}, ErrInvalidDataProvided
	}

	if _, err := s.ownedExercise(ctx, userID, workoutID, exerciseID); err != nil {
		return models.Exercise{}, err
	}

	updated, err := s.workoutRepository.UpdateExercise(ctx, exerciseID, update)
	if err != nil {
		log.Err(err).Int64("exerciseID", exerciseID).Msg("exercise update failed")
		return models.Exercise{}, fmt.Errorf("exercise update failed: %w", err)
	}

	if _, err := s.workoutRepository.SyncCompletion(ctx, workoutID); err != nil {
		log.Err(err).Int64("workoutID", workoutID).Msg("completion sync failed")
		return models.Exercise{}, fmt.Errorf("completion sync failed: %w", err)
	}

	return updated, nil
}

// ToggleExercise sets the exercise's completed flag and re-syncs the
// workout. With no explicit value the current flag is flipped, so a client
// can toggle without first reading the exercise.
func (s *workoutService) ToggleExercise(ctx context.Context, userID, workoutID, exerciseID int64, completed *bool) (models.Exercise, error) {
	log := logger.FromContext(ctx)

	exercise, err := s.ownedExercise(ctx, userID, workoutID, exerciseID)
	if err != nil {
		return models.Exercise{}, err
	}

	next := !exercise.Completed
	if completed != nil {
		next = *completed
	}

	updated, err := s.workoutRepository.UpdateExercise(ctx, exerciseID, store.ExerciseUpdate{Completed: &next})
	if err != nil {
		log.Err(err).Int64("exerciseID", exerciseID).Msg("exercise toggle failed")
		return models.Exercise{}, fmt.Errorf("exercise toggle failed: %w", err)
	}

	if _, err := s.workoutRepository.SyncCompletion(ctx, workoutID); err != nil {
		log.Err(err).Int64("workoutID", workoutID).Msg("completion sync failed")
		return models.Exercise{}, fmt.Errorf("completion sync failed: %w", err)
	}

	return updated, nil
}

// CompleteWorkout marks one of the caller's workouts done and returns the
// refreshed record. Completing a workout that is already done changes
// nothing and logs no extra history entry.
func (s *workoutService) CompleteWorkout(ctx context.Context, userID, workoutID int64) (models.Workout, error) {
	log := logger.FromContext(ctx)

	if _, err := s.ownedWorkout(ctx, userID, workoutID); err != nil {
		return models.Workout{}, err
	}

	if err := s.workoutRepository.CompleteWorkout(ctx, workoutID); err != nil {
		log.Err(err).Int64("workoutID", workoutID).Msg("workout completion failed")
		return models.Workout{}, fmt.Errorf("workout completion failed: %w", err)
	}

	workout, err := s.workoutRepository.GetWorkout(ctx, workoutID)
	if err != nil {
		log.Err(err).Int64("workoutID", workoutID).Msg("workout reload failed")
		return models.Workout{}, fmt.Errorf("workout reload failed: %w", err)
	}

	return workout, nil
}

// History returns the caller's recent completion entries, newest first.
func (s *workoutService) History(ctx context.Context, userID int64) ([]models.HistoryEntry, error) {
	log := logger.FromContext(ctx)

	entries, err := s.workoutRepository.ListHistory(ctx, userID, historyLimit)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("history listing failed")
		return nil, fmt.Errorf("history listing failed: %w", err)
	}

	return entries, nil
}

// ownedExercise loads the exercise after the usual workout ownership check
// and verifies it belongs to the addressed workout. An exercise hanging off
// a different workout yields ErrForbidden, matching the ownership rule.
func (s *workoutService) ownedExercise(ctx context.Context, userID, workoutID, exerciseID int64) (models.Exercise, error) {
	log := logger.FromContext(ctx)

	if _, err := s.ownedWorkout(ctx, userID, workoutID); err != nil {
		return models.Exercise{}, err
	}

	exercise, err := s.workoutRepository.GetExercise(ctx, exerciseID)
	if err != nil {
		log.Err(err).Int64("exerciseID", exerciseID).Msg("exercise lookup failed")
		return models.Exercise{}, fmt.Errorf("exercise lookup failed: %w", err)
	}
	if exercise.WorkoutID != workoutID {
		log.Warn().Int64("exerciseID", exerciseID).Int64("workoutID", workoutID).Msg("exercise belongs to another workout")
		return models.Exercise{}, ErrForbidden
	}

	return exercise, nil
}

// ownedWorkout loads the workout and verifies the caller owns it.
func (s *workoutService) ownedWorkout(ctx context.Context, userID, workoutID int64) (models.Workout, error) {
	log := logger.FromContext(ctx)

	workout, err := s.workoutRepository.GetWorkout(ctx, workoutID)
	if err != nil {
		log.Err(err).Int64("workoutID", workoutID).Msg("workout lookup failed")
		return models.Workout{}, fmt.Errorf("workout lookup failed: %w", err)
	}

	if workout.UserID != userID {
		log.Warn().Int64("workoutID", workoutID).Int64("userID", userID).Msg("workout owned by another user")
		return models.Workout{}, ErrForbidden
	}

	return workout, nil
}
