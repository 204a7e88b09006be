package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/mock"
	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/models"
)

func newTestWorkoutService(t *testing.T) (WorkoutService, *mock.MockWorkoutRepository) {
	ctrl := gomock.NewController(t)
	workouts := mock.NewMockWorkoutRepository(ctrl)
	svc := NewWorkoutService(workouts, logger.NewLogger("test"))
	return svc, workouts
}

func TestGetWorkout_OwnedByAnotherUser(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{ID: 5, UserID: 2}, nil)

	_, err := svc.GetWorkout(context.Background(), 1, 5)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGetWorkout_Missing(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(404)).
		Return(models.Workout{}, store.ErrNotFound)

	_, err := svc.GetWorkout(context.Background(), 1, 404)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}
}

func TestListWorkouts_DayOutOfRange(t *testing.T) {
	svc, _ := newTestWorkoutService(t)

	day := 7
	_, err := svc.ListWorkouts(context.Background(), 1, &day)
	if !errors.Is(err, ErrInvalidDataProvided) {
		t.Fatalf("expected ErrInvalidDataProvided, got %v", err)
	}
}

func TestCreateWorkout_Validation(t *testing.T) {
	svc, _ := newTestWorkoutService(t)

	cases := []models.Workout{
		{UserID: 1, DayOfWeek: 1, Time: "07:30"},                    // missing name
		{UserID: 1, DayOfWeek: 9, Time: "07:30", Name: "Leg day"},   // bad day
		{UserID: 1, DayOfWeek: 1, Name: "Leg day"},                  // missing time
		{UserID: 1, DayOfWeek: 1, Time: "07:30", Name: "Leg day", Exercises: []models.Exercise{{}}}, // unnamed exercise
	}

	for _, workout := range cases {
		if _, err := svc.CreateWorkout(context.Background(), workout); !errors.Is(err, ErrInvalidDataProvided) {
			t.Errorf("workout %+v: expected ErrInvalidDataProvided, got %v", workout, err)
		}
	}
}

func TestUpdateExercise_SyncsCompletion(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)
	completed := true

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{ID: 5, UserID: 1}, nil)
	workouts.EXPECT().
		GetExercise(gomock.Any(), int64(9)).
		Return(models.Exercise{ID: 9, WorkoutID: 5}, nil)
	workouts.EXPECT().
		UpdateExercise(gomock.Any(), int64(9), store.ExerciseUpdate{Completed: &completed}).
		Return(models.Exercise{ID: 9, WorkoutID: 5, Completed: true}, nil)
	workouts.EXPECT().
		SyncCompletion(gomock.Any(), int64(5)).
		Return(true, nil)

	exercise, err := svc.UpdateExercise(context.Background(), 1, 5, 9, store.ExerciseUpdate{Completed: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exercise.Completed {
		t.Error("expected exercise marked completed")
	}
}

func TestUpdateExercise_BelongsToAnotherWorkout(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)
	completed := true

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{ID: 5, UserID: 1}, nil)
	workouts.EXPECT().
		GetExercise(gomock.Any(), int64(9)).
		Return(models.Exercise{ID: 9, WorkoutID: 6}, nil)

	_, err := svc.UpdateExercise(context.Background(), 1, 5, 9, store.ExerciseUpdate{Completed: &completed})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestToggleExercise_NoValueFlips(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{ID: 5, UserID: 1}, nil)
	workouts.EXPECT().
		GetExercise(gomock.Any(), int64(9)).
		Return(models.Exercise{ID: 9, WorkoutID: 5, Completed: true}, nil)
	workouts.EXPECT().
		UpdateExercise(gomock.Any(), int64(9), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, update store.ExerciseUpdate) (models.Exercise, error) {
			if update.Completed == nil || *update.Completed {
				t.Errorf("expected flip to false, got %+v", update.Completed)
			}
			return models.Exercise{ID: 9, WorkoutID: 5, Completed: false}, nil
		})
	workouts.EXPECT().SyncCompletion(gomock.Any(), int64(5)).Return(false, nil)

	exercise, err := svc.ToggleExercise(context.Background(), 1, 5, 9, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exercise.Completed {
		t.Error("expected exercise flipped back to pending")
	}
}

func TestToggleExercise_ExplicitValueWins(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{ID: 5, UserID: 1}, nil)
	workouts.EXPECT().
		GetExercise(gomock.Any(), int64(9)).
		Return(models.Exercise{ID: 9, WorkoutID: 5, Completed: true}, nil)
	workouts.EXPECT().
		UpdateExercise(gomock.Any(), int64(9), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, update store.ExerciseUpdate) (models.Exercise, error) {
			if update.Completed == nil || !*update.Completed {
				t.Errorf("expected explicit true, got %+v", update.Completed)
			}
			return models.Exercise{ID: 9, WorkoutID: 5, Completed: true}, nil
		})
	workouts.EXPECT().SyncCompletion(gomock.Any(), int64(5)).Return(true, nil)

	completed := true
	if _, err := svc.ToggleExercise(context.Background(), 1, 5, 9, &completed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestToggleExercise_BelongsToAnotherWorkout(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{ID: 5, UserID: 1}, nil)
	workouts.EXPECT().
		GetExercise(gomock.Any(), int64(9)).
		Return(models.Exercise{ID: 9, WorkoutID: 6}, nil)

	_, err := svc.ToggleExercise(context.Background(), 1, 5, 9, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateWorkout_SyncsCompletion(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)
	name := "Push day"

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{ID: 5, UserID: 1}, nil)
	workouts.EXPECT().
		UpdateWorkout(gomock.Any(), int64(5), store.WorkoutUpdate{Name: &name}).
		Return(models.Workout{ID: 5, UserID: 1, Name: name}, nil)
	workouts.EXPECT().SyncCompletion(gomock.Any(), int64(5)).Return(true, nil)

	workout, err := svc.UpdateWorkout(context.Background(), 1, 5, store.WorkoutUpdate{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !workout.Completed {
		t.Error("expected the re-synced completed flag on the returned workout")
	}
}

func TestAddExercise_DefaultsPositionAndSyncs(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{
			ID:     5,
			UserID: 1,
			Exercises: []models.Exercise{
				{ID: 1, WorkoutID: 5},
				{ID: 2, WorkoutID: 5},
			},
		}, nil)
	workouts.EXPECT().
		AddExercise(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, exercise models.Exercise) (models.Exercise, error) {
			if exercise.WorkoutID != 5 {
				t.Errorf("expected WorkoutID=5, got %d", exercise.WorkoutID)
			}
			if exercise.Position != 2 {
				t.Errorf("expected appended position 2, got %d", exercise.Position)
			}
			exercise.ID = 3
			return exercise, nil
		})
	workouts.EXPECT().SyncCompletion(gomock.Any(), int64(5)).Return(false, nil)

	exercise, err := svc.AddExercise(context.Background(), 1, 5, models.Exercise{Name: "Deadlift", Position: -1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exercise.ID != 3 {
		t.Errorf("expected assigned ID, got %d", exercise.ID)
	}
}

func TestAddExercise_KeepsExplicitZeroPosition(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{
			ID:        5,
			UserID:    1,
			Exercises: []models.Exercise{{ID: 1, WorkoutID: 5}},
		}, nil)
	workouts.EXPECT().
		AddExercise(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, exercise models.Exercise) (models.Exercise, error) {
			if exercise.Position != 0 {
				t.Errorf("expected explicit position 0 kept, got %d", exercise.Position)
			}
			exercise.ID = 2
			return exercise, nil
		})
	workouts.EXPECT().SyncCompletion(gomock.Any(), int64(5)).Return(false, nil)

	if _, err := svc.AddExercise(context.Background(), 1, 5, models.Exercise{Name: "Warmup", Position: 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompleteWorkout_ReturnsRefreshedRecord(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{ID: 5, UserID: 1}, nil)
	workouts.EXPECT().CompleteWorkout(gomock.Any(), int64(5)).Return(nil)
	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{ID: 5, UserID: 1, Completed: true}, nil)

	workout, err := svc.CompleteWorkout(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !workout.Completed {
		t.Error("expected completed workout")
	}
}

func TestDeleteWorkout_ChecksOwnershipFirst(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)

	workouts.EXPECT().
		GetWorkout(gomock.Any(), int64(5)).
		Return(models.Workout{ID: 5, UserID: 2}, nil)

	err := svc.DeleteWorkout(context.Background(), 1, 5)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestHistory_UsesLimit(t *testing.T) {
	svc, workouts := newTestWorkoutService(t)

	workouts.EXPECT().
		ListHistory(gomock.Any(), int64(1), historyLimit).
		Return([]models.HistoryEntry{{ID: 1, WorkoutID: 5}}, nil)

	entries, err := svc.History(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}
