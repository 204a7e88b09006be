package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/models"
)

// workoutRepository is the PostgreSQL-backed implementation of
// [WorkoutRepository]. Workouts, their exercises and the append-only
// completion history live in three related tables; the derived completed
// flag is recomputed transactionally so concurrent exercise toggles cannot
// observe a half-updated workout.
type workoutRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewWorkoutRepository constructs a [WorkoutRepository] backed by the
// provided database connection and logger.
func NewWorkoutRepository(db *DB, logger *logger.Logger) WorkoutRepository {
	logger.Debug().Msg("creating workout repository")
	return &workoutRepository{
		db:     db,
		logger: logger,
	}
}

// ListWorkouts returns the user's workouts, optionally restricted to one day
// of the week, ordered by day then scheduled time. Exercises are loaded for
// each workout; the history log is not.
func (r *workoutRepository) ListWorkouts(ctx context.Context, userID int64, day *int) ([]models.Workout, error) {
	log := logger.FromContext(ctx)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "user_id", "day_of_week", "time_of_day", "name", "description", "completed", "created_at", "updated_at").
		From("workouts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("day_of_week ASC", "time_of_day ASC", "id ASC")
	if day != nil {
		builder = builder.Where(sq.Eq{"day_of_week": *day})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.ListWorkouts").Msg("error building sql query")
		return nil, ErrBuildingSQLQuery
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.ListWorkouts").Msg("list workouts failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		var workout models.Workout
		if err := scanWorkoutColumns(rows.Scan, &workout); err != nil {
			log.Err(err).Str("func", "*workoutRepository.ListWorkouts").Msg("error: scanning error")
			return nil, err
		}
		workouts = append(workouts, workout)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	for i := range workouts {
		exercises, err := r.listExercises(ctx, workouts[i].ID)
		if err != nil {
			return nil, err
		}
		workouts[i].Exercises = exercises
	}

	return workouts, nil
}

// GetWorkout loads a single workout with its ordered exercises and full
// history log. Returns [ErrNotFound] when no workout has the given ID.
func (r *workoutRepository) GetWorkout(ctx context.Context, workoutID int64) (models.Workout, error) {
	log := logger.FromContext(ctx)

	var workout models.Workout
	row := r.db.QueryRowContext(ctx, getWorkout, workoutID)
	if err := scanWorkoutColumns(row.Scan, &workout); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Workout{}, ErrNotFound
		}
		log.Err(err).Str("func", "*workoutRepository.GetWorkout").Msg("error: scanning error")
		return models.Workout{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	exercises, err := r.listExercises(ctx, workout.ID)
	if err != nil {
		return models.Workout{}, err
	}
	workout.Exercises = exercises

	history, err := r.listHistoryByWorkout(ctx, workout.ID)
	if err != nil {
		return models.Workout{}, err
	}
	workout.History = history

	return workout, nil
}

// CreateWorkout inserts a workout and any nested exercises in a single
// transaction, so a failed exercise insert never leaves a half-created
// workout behind. Positions default to insertion order when unset.
func (r *workoutRepository) CreateWorkout(ctx context.Context, workout models.Workout) (models.Workout, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.CreateWorkout").Msg("failed to begin transaction")
		return models.Workout{}, ErrBeginningTransaction
	}
	defer tx.Rollback()

	var created models.Workout
	row := tx.QueryRowContext(ctx, createWorkout,
		workout.UserID, workout.DayOfWeek, workout.Time, workout.Name, workout.Description)
	if err := scanWorkoutColumns(row.Scan, &created); err != nil {
		log.Err(err).Str("func", "*workoutRepository.CreateWorkout").Msg("error: scanning error")
		return models.Workout{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created.Exercises = make([]models.Exercise, 0, len(workout.Exercises))
	for _, exercise := range workout.Exercises {
		var stored models.Exercise
		row := tx.QueryRowContext(ctx, createExercise,
			created.ID, exercise.Name, exercise.Description, exercise.Position, exercise.Completed)
		if err := scanExerciseColumns(row.Scan, &stored); err != nil {
			log.Err(err).Str("func", "*workoutRepository.CreateWorkout").Msg("error: scanning error")
			return models.Workout{}, fmt.Errorf("unexpected DB error: %w", err)
		}
		created.Exercises = append(created.Exercises, stored)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*workoutRepository.CreateWorkout").Msg("failed to commit transaction")
		return models.Workout{}, ErrCommitingTransaction
	}

	return created, nil
}

// UpdateWorkout applies a partial metadata update and returns the workout
// with its exercises reloaded. At least one field must be set.
func (r *workoutRepository) UpdateWorkout(ctx context.Context, workoutID int64, update WorkoutUpdate) (models.Workout, error) {
	log := logger.FromContext(ctx)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update("workouts").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": workoutID}).
		Suffix("RETURNING id, user_id, day_of_week, time_of_day, name, description, completed, created_at, updated_at")

	fields := 0
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		fields++
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
		fields++
	}
	if update.DayOfWeek != nil {
		builder = builder.Set("day_of_week", *update.DayOfWeek)
		fields++
	}
	if update.Time != nil {
		builder = builder.Set("time_of_day", *update.Time)
		fields++
	}
	if fields == 0 {
		return models.Workout{}, ErrBuildingSQLQuery
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.UpdateWorkout").Msg("error building sql query")
		return models.Workout{}, ErrBuildingSQLQuery
	}

	var workout models.Workout
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanWorkoutColumns(row.Scan, &workout); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Workout{}, ErrNotFound
		}
		log.Err(err).Str("func", "*workoutRepository.UpdateWorkout").Msg("error: scanning error")
		return models.Workout{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	exercises, err := r.listExercises(ctx, workout.ID)
	if err != nil {
		return models.Workout{}, err
	}
	workout.Exercises = exercises

	return workout, nil
}

// DeleteWorkout removes a workout. Exercises and history rows go with it via
// ON DELETE CASCADE. Returns [ErrNotFound] when nothing was deleted.
func (r *workoutRepository) DeleteWorkout(ctx context.Context, workoutID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteWorkout, workoutID)
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.DeleteWorkout").Msg("delete workout failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetExercise loads a single exercise by ID. Returns [ErrNotFound] on an
// empty result set.
func (r *workoutRepository) GetExercise(ctx context.Context, exerciseID int64) (models.Exercise, error) {
	log := logger.FromContext(ctx)

	var exercise models.Exercise
	row := r.db.QueryRowContext(ctx, getExercise, exerciseID)
	if err := scanExerciseColumns(row.Scan, &exercise); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Exercise{}, ErrNotFound
		}
		log.Err(err).Str("func", "*workoutRepository.GetExercise").Msg("error: scanning error")
		return models.Exercise{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return exercise, nil
}

// AddExercise inserts a new exercise into an existing workout and returns
// the stored row.
func (r *workoutRepository) AddExercise(ctx context.Context, exercise models.Exercise) (models.Exercise, error) {
	log := logger.FromContext(ctx)

	var stored models.Exercise
	row := r.db.QueryRowContext(ctx, createExercise,
		exercise.WorkoutID, exercise.Name, exercise.Description, exercise.Position, exercise.Completed)
	if err := scanExerciseColumns(row.Scan, &stored); err != nil {
		log.Err(err).Str("func", "*workoutRepository.AddExercise").Msg("error: scanning error")
		return models.Exercise{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return stored, nil
}

// UpdateExercise applies a partial update to an exercise and returns the
// stored result. At least one field must be set.
func (r *workoutRepository) UpdateExercise(ctx context.Context, exerciseID int64, update ExerciseUpdate) (models.Exercise, error) {
	log := logger.FromContext(ctx)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update("exercises").
		Where(sq.Eq{"id": exerciseID}).
		Suffix("RETURNING id, workout_id, name, description, position, completed, created_at")

	fields := 0
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		fields++
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
		fields++
	}
	if update.Position != nil {
		builder = builder.Set("position", *update.Position)
		fields++
	}
	if update.Completed != nil {
		builder = builder.Set("completed", *update.Completed)
		fields++
	}
	if fields == 0 {
		return models.Exercise{}, ErrBuildingSQLQuery
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.UpdateExercise").Msg("error building sql query")
		return models.Exercise{}, ErrBuildingSQLQuery
	}

	var exercise models.Exercise
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanExerciseColumns(row.Scan, &exercise); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Exercise{}, ErrNotFound
		}
		log.Err(err).Str("func", "*workoutRepository.UpdateExercise").Msg("error: scanning error")
		return models.Exercise{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return exercise, nil
}

// SyncCompletion recomputes the workout's derived completed flag inside one
// transaction. The workout row is locked first so two concurrent exercise
// toggles serialise on the recompute. A workout with zero exercises never
// auto-completes; a history row is appended only when the flag flips from
// false to true.
func (r *workoutRepository) SyncCompletion(ctx context.Context, workoutID int64) (bool, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.SyncCompletion").Msg("failed to begin transaction")
		return false, ErrBeginningTransaction
	}
	defer tx.Rollback()

	var (
		id        int64
		completed bool
	)
	if err := tx.QueryRowContext(ctx, getWorkoutForUpdate, workoutID).Scan(&id, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		log.Err(err).Str("func", "*workoutRepository.SyncCompletion").Msg("error: scanning error")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	var total, done int
	if err := tx.QueryRowContext(ctx, countExercises, workoutID).Scan(&total, &done); err != nil {
		log.Err(err).Str("func", "*workoutRepository.SyncCompletion").Msg("error: scanning error")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	allDone := total > 0 && done == total
	switch {
	case allDone && !completed:
		if _, err := tx.ExecContext(ctx, setWorkoutCompleted, workoutID, true); err != nil {
			log.Err(err).Str("func", "*workoutRepository.SyncCompletion").Msg("mark workout completed failed")
			return false, fmt.Errorf("unexpected DB error: %w", err)
		}
		if _, err := tx.ExecContext(ctx, appendWorkoutHistory, workoutID); err != nil {
			log.Err(err).Str("func", "*workoutRepository.SyncCompletion").Msg("append workout history failed")
			return false, fmt.Errorf("unexpected DB error: %w", err)
		}
	case !allDone && completed:
		if _, err := tx.ExecContext(ctx, setWorkoutCompleted, workoutID, false); err != nil {
			log.Err(err).Str("func", "*workoutRepository.SyncCompletion").Msg("mark workout pending failed")
			return false, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*workoutRepository.SyncCompletion").Msg("failed to commit transaction")
		return false, ErrCommitingTransaction
	}

	return allDone, nil
}

// CompleteWorkout marks the workout completed and appends a history row in
// one transaction. A workout that is already completed is left untouched and
// gains no new history entry.
func (r *workoutRepository) CompleteWorkout(ctx context.Context, workoutID int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.CompleteWorkout").Msg("failed to begin transaction")
		return ErrBeginningTransaction
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, completeWorkoutIfPending, workoutID)
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.CompleteWorkout").Msg("mark workout completed failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if affected == 1 {
		if _, err := tx.ExecContext(ctx, appendWorkoutHistory, workoutID); err != nil {
			log.Err(err).Str("func", "*workoutRepository.CompleteWorkout").Msg("append workout history failed")
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*workoutRepository.CompleteWorkout").Msg("failed to commit transaction")
		return ErrCommitingTransaction
	}

	return nil
}

// ListHistory returns the user's most recent completion entries across all
// workouts, newest first, capped at limit. Each entry carries the workout
// name current at query time.
func (r *workoutRepository) ListHistory(ctx context.Context, userID int64, limit int) ([]models.HistoryEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listHistoryByUser, userID, limit)
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.ListHistory").Msg("list history failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var entry models.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.WorkoutID, &entry.WorkoutName, &entry.CompletedAt); err != nil {
			log.Err(err).Str("func", "*workoutRepository.ListHistory").Msg("error: scanning error")
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entries, nil
}

func (r *workoutRepository) listExercises(ctx context.Context, workoutID int64) ([]models.Exercise, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listExercisesByWorkout, workoutID)
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.listExercises").Msg("list exercises failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		var exercise models.Exercise
		if err := scanExerciseColumns(rows.Scan, &exercise); err != nil {
			log.Err(err).Str("func", "*workoutRepository.listExercises").Msg("error: scanning error")
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return exercises, nil
}

func (r *workoutRepository) listHistoryByWorkout(ctx context.Context, workoutID int64) ([]models.HistoryEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listHistoryByWorkout, workoutID)
	if err != nil {
		log.Err(err).Str("func", "*workoutRepository.listHistoryByWorkout").Msg("list workout history failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var entry models.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.WorkoutID, &entry.CompletedAt); err != nil {
			log.Err(err).Str("func", "*workoutRepository.listHistoryByWorkout").Msg("error: scanning error")
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entries, nil
}

// scanWorkoutColumns scans one workouts row through the provided scan
// function, so it works for both *sql.Row and *sql.Rows.
func scanWorkoutColumns(scan func(dest ...any) error, dst *models.Workout) error {
	var description sql.NullString
	err := scan(&dst.ID, &dst.UserID, &dst.DayOfWeek, &dst.Time, &dst.Name, &description,
		&dst.Completed, &dst.CreatedAt, &dst.UpdatedAt)
	if err != nil {
		return err
	}

	if description.Valid {
		dst.Description = &description.String
	} else {
		dst.Description = nil
	}

	return nil
}

func scanExerciseColumns(scan func(dest ...any) error, dst *models.Exercise) error {
	var description sql.NullString
	err := scan(&dst.ID, &dst.WorkoutID, &dst.Name, &description, &dst.Position, &dst.Completed, &dst.CreatedAt)
	if err != nil {
		return err
	}

	if description.Valid {
		dst.Description = &description.String
	} else {
		dst.Description = nil
	}

	return nil
}
