package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/models"
)

func newTestWorkoutRepo(t *testing.T) (*workoutRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &workoutRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func workoutRows(id, userID int64, completed bool, now time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"id", "user_id", "day_of_week", "time_of_day", "name", "description", "completed", "created_at", "updated_at"}).
		AddRow(id, userID, 1, "07:30", "Leg day", nil, completed, now, now)
}

func exerciseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "workout_id", "name", "description", "position", "completed", "created_at"})
}

func historyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "workout_id", "completed_at"})
}

func TestGetWorkout_Success(t *testing.T) {
	repo, mock, db := newTestWorkoutRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("FROM workouts").
		WithArgs(int64(5)).
		WillReturnRows(workoutRows(5, 1, false, now))
	mock.ExpectQuery("FROM exercises").
		WithArgs(int64(5)).
		WillReturnRows(exerciseRows().AddRow(9, 5, "Squats", nil, 0, false, now))
	mock.ExpectQuery("FROM workout_history").
		WithArgs(int64(5)).
		WillReturnRows(historyRows())

	workout, err := repo.GetWorkout(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if workout.ID != 5 || len(workout.Exercises) != 1 {
		t.Errorf("unexpected workout: %+v", workout)
	}
	if workout.Exercises[0].Name != "Squats" {
		t.Errorf("expected exercise Squats, got %s", workout.Exercises[0].Name)
	}
}

func TestGetWorkout_NotFound(t *testing.T) {
	repo, mock, db := newTestWorkoutRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("FROM workouts").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetWorkout(ctx, 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateWorkout_WithNestedExercises(t *testing.T) {
	repo, mock, db := newTestWorkoutRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	workout := models.Workout{
		UserID:    1,
		DayOfWeek: 1,
		Time:      "07:30",
		Name:      "Leg day",
		Exercises: []models.Exercise{
			{Name: "Squats", Position: 0},
			{Name: "Lunges", Position: 1},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO workouts").
		WithArgs(int64(1), 1, "07:30", "Leg day", nil).
		WillReturnRows(workoutRows(5, 1, false, now))
	mock.ExpectQuery("INSERT INTO exercises").
		WithArgs(int64(5), "Squats", nil, 0, false).
		WillReturnRows(exerciseRows().AddRow(9, 5, "Squats", nil, 0, false, now))
	mock.ExpectQuery("INSERT INTO exercises").
		WithArgs(int64(5), "Lunges", nil, 1, false).
		WillReturnRows(exerciseRows().AddRow(10, 5, "Lunges", nil, 1, false, now))
	mock.ExpectCommit()

	created, err := repo.CreateWorkout(ctx, workout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created.Exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(created.Exercises))
	}
	if created.Exercises[1].Position != 1 {
		t.Errorf("expected position 1 persisted as sent, got %d", created.Exercises[1].Position)
	}
}

func TestUpdateWorkout_NoFields(t *testing.T) {
	repo, _, db := newTestWorkoutRepo(t)
	defer db.Close()

	_, err := repo.UpdateWorkout(context.Background(), 5, WorkoutUpdate{})
	if !errors.Is(err, ErrBuildingSQLQuery) {
		t.Fatalf("expected ErrBuildingSQLQuery, got %v", err)
	}
}

func TestDeleteWorkout_NotFound(t *testing.T) {
	repo, mock, db := newTestWorkoutRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM workouts").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteWorkout(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSyncCompletion_AllDoneFlipsAndLogsHistory(t *testing.T) {
	repo, mock, db := newTestWorkoutRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, completed").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "completed"}).AddRow(5, false))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "count"}).AddRow(3, 3))
	mock.ExpectExec("UPDATE workouts").
		WithArgs(int64(5), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO workout_history").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	completed, err := repo.SyncCompletion(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !completed {
		t.Error("expected workout to be completed")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSyncCompletion_ZeroExercisesNeverAutoCompletes(t *testing.T) {
	repo, mock, db := newTestWorkoutRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, completed").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "completed"}).AddRow(5, false))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "count"}).AddRow(0, 0))
	mock.ExpectCommit()

	completed, err := repo.SyncCompletion(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completed {
		t.Error("workout with zero exercises must not auto-complete")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSyncCompletion_RevertsWhenExerciseReopened(t *testing.T) {
	repo, mock, db := newTestWorkoutRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, completed").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "completed"}).AddRow(5, true))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "count"}).AddRow(3, 2))
	mock.ExpectExec("UPDATE workouts").
		WithArgs(int64(5), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	completed, err := repo.SyncCompletion(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completed {
		t.Error("expected workout reverted to pending")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCompleteWorkout_IdempotentWhenAlreadyCompleted(t *testing.T) {
	repo, mock, db := newTestWorkoutRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE workouts").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.CompleteWorkout(ctx, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// no history insert expected
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCompleteWorkout_AppendsHistoryOnce(t *testing.T) {
	repo, mock, db := newTestWorkoutRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE workouts").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO workout_history").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.CompleteWorkout(ctx, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListHistory_NewestFirst(t *testing.T) {
	repo, mock, db := newTestWorkoutRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "workout_id", "name", "completed_at"}).
		AddRow(2, 5, "Leg day", now).
		AddRow(1, 5, "Leg day", now.Add(-time.Hour))

	mock.ExpectQuery("FROM workout_history").
		WithArgs(int64(1), 20).
		WillReturnRows(rows)

	entries, err := repo.ListHistory(ctx, 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != 2 {
		t.Errorf("expected newest entry first, got id=%d", entries[0].ID)
	}
	if entries[0].WorkoutName != "Leg day" {
		t.Errorf("expected workout name carried on entry, got %q", entries[0].WorkoutName)
	}
}
