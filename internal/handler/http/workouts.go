// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eliel Filho

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/utils"
	"github.com/elielfilhodev/treino/models"
)

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var day *int
	if raw := r.URL.Query().Get("day"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 6 {
			log.Error().Str("day", raw).Msg("invalid day filter")
			writeError(w, "day must be an integer between 0 and 6", http.StatusBadRequest)
			return
		}
		day = &parsed
	}

	workouts, err := h.services.WorkoutService.ListWorkouts(ctx, userID, day)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.WorkoutsResponse{Workouts: workouts}, http.StatusOK)
}

func (h *Handler) getWorkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	workoutID, err := pathID(r, "workoutID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	workout, err := h.services.WorkoutService.GetWorkout(ctx, userID, workoutID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.WorkoutResponse{Workout: workout}, http.StatusOK)
}

func (h *Handler) createWorkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req workoutCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		log.Err(err).Msg("invalid workout payload")
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout := models.Workout{
		UserID:      userID,
		DayOfWeek:   req.DayOfWeek,
		Time:        req.Time,
		Name:        req.Name,
		Description: req.Description,
	}
	for index, exercise := range req.Exercises {
		position := index
		if exercise.Order != nil {
			position = *exercise.Order
		}
		workout.Exercises = append(workout.Exercises, models.Exercise{
			Name:        exercise.Name,
			Description: exercise.Description,
			Position:    position,
		})
	}

	created, err := h.services.WorkoutService.CreateWorkout(ctx, workout)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.WorkoutResponse{Workout: created}, http.StatusCreated)
}

func (h *Handler) updateWorkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	workoutID, err := pathID(r, "workoutID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req workoutUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		log.Err(err).Msg("invalid workout update payload")
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := h.services.WorkoutService.UpdateWorkout(ctx, userID, workoutID, req.toUpdate())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.WorkoutResponse{Workout: workout}, http.StatusOK)
}

func (h *Handler) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	workoutID, err := pathID(r, "workoutID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.services.WorkoutService.DeleteWorkout(ctx, userID, workoutID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) completeWorkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	workoutID, err := pathID(r, "workoutID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	workout, err := h.services.WorkoutService.CompleteWorkout(ctx, userID, workoutID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.WorkoutResponse{Workout: workout}, http.StatusOK)
}

func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	workoutID, err := pathID(r, "workoutID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req exerciseCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		log.Err(err).Msg("invalid exercise payload")
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// A negative position tells the service to append.
	position := -1
	if req.Order != nil {
		position = *req.Order
	}

	exercise, err := h.services.WorkoutService.AddExercise(ctx, userID, workoutID, models.Exercise{
		Name:        req.Name,
		Description: req.Description,
		Position:    position,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.ExerciseResponse{Exercise: exercise}, http.StatusCreated)
}

func (h *Handler) updateExercise(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	workoutID, err := pathID(r, "workoutID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	exerciseID, err := pathID(r, "exerciseID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req exerciseUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		log.Err(err).Msg("invalid exercise update payload")
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	exercise, err := h.services.WorkoutService.UpdateExercise(ctx, userID, workoutID, exerciseID, req.toUpdate())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.ExerciseResponse{Exercise: exercise}, http.StatusOK)
}

// toggleExercise flips or sets the exercise's completed flag. The body is
// optional: no body (or an empty object) means flip.
func (h *Handler) toggleExercise(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	workoutID, err := pathID(r, "workoutID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	exerciseID, err := pathID(r, "exerciseID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req exerciseToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	exercise, err := h.services.WorkoutService.ToggleExercise(ctx, userID, workoutID, exerciseID, req.Completed)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.ExerciseResponse{Exercise: exercise}, http.StatusOK)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entries, err := h.services.WorkoutService.History(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.HistoryResponse{History: entries}, http.StatusOK)
}
