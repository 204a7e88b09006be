package store

const (
	createUser = `INSERT INTO users (name, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id, name, email, password_hash, avatar_url, created_at, updated_at;`

	findUserByEmail = `SELECT id, name, email, password_hash, avatar_url, created_at, updated_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, name, email, password_hash, avatar_url, created_at, updated_at
    FROM users
    WHERE id = $1;`

	updateUserAvatar = `UPDATE users
    SET avatar_url = $2, updated_at = NOW()
    WHERE id = $1
    RETURNING id, name, email, password_hash, avatar_url, created_at, updated_at;`

	storeRefreshToken = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
    VALUES ($1, $2, $3);`

	findUsableRefreshToken = `SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
    FROM refresh_tokens
    WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > NOW()
    LIMIT 1;`

	revokeRefreshTokenByID = `UPDATE refresh_tokens
    SET revoked_at = NOW()
    WHERE id = $1 AND revoked_at IS NULL;`

	revokeRefreshTokensByHash = `UPDATE refresh_tokens
    SET revoked_at = NOW()
    WHERE token_hash = $1 AND revoked_at IS NULL;`

	createEmptyPreferences = `INSERT INTO preferences (user_id, goals, training_types)
    VALUES ($1, '[]'::jsonb, '[]'::jsonb)
    ON CONFLICT (user_id) DO NOTHING;`

	getPreferences = `SELECT user_id, goals, training_types, updated_at
    FROM preferences
    WHERE user_id = $1;`

	replacePreferences = `INSERT INTO preferences (user_id, goals, training_types)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id)
    DO UPDATE SET goals = EXCLUDED.goals, training_types = EXCLUDED.training_types, updated_at = NOW()
    RETURNING user_id, goals, training_types, updated_at;`

	getWorkout = `SELECT id, user_id, day_of_week, time_of_day, name, description, completed, created_at, updated_at
    FROM workouts
    WHERE id = $1;`

	getWorkoutForUpdate = `SELECT id, completed
    FROM workouts
    WHERE id = $1
    FOR UPDATE;`

	createWorkout = `INSERT INTO workouts (user_id, day_of_week, time_of_day, name, description)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, user_id, day_of_week, time_of_day, name, description, completed, created_at, updated_at;`

	deleteWorkout = `DELETE FROM workouts WHERE id = $1;`

	listExercisesByWorkout = `SELECT id, workout_id, name, description, position, completed, created_at
    FROM exercises
    WHERE workout_id = $1
    ORDER BY position ASC, id ASC;`

	countExercises = `SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
    FROM exercises
    WHERE workout_id = $1;`

	getExercise = `SELECT id, workout_id, name, description, position, completed, created_at
    FROM exercises
    WHERE id = $1;`

	createExercise = `INSERT INTO exercises (workout_id, name, description, position, completed)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, workout_id, name, description, position, completed, created_at;`

	setWorkoutCompleted = `UPDATE workouts
    SET completed = $2, updated_at = NOW()
    WHERE id = $1;`

	completeWorkoutIfPending = `UPDATE workouts
    SET completed = TRUE, updated_at = NOW()
    WHERE id = $1 AND completed = FALSE;`

	appendWorkoutHistory = `INSERT INTO workout_history (workout_id) VALUES ($1);`

	listHistoryByWorkout = `SELECT id, workout_id, completed_at
    FROM workout_history
    WHERE workout_id = $1
    ORDER BY completed_at DESC;`

	listHistoryByUser = `SELECT h.id, h.workout_id, w.name, h.completed_at
    FROM workout_history h
    JOIN workouts w ON w.id = h.workout_id
    WHERE w.user_id = $1
    ORDER BY h.completed_at DESC
    LIMIT $2;`

	getShoppingItem = `SELECT id, user_id, name, quantity, purchased, created_at, updated_at
    FROM shopping_items
    WHERE id = $1;`

	listShoppingItems = `SELECT id, user_id, name, quantity, purchased, created_at, updated_at
    FROM shopping_items
    WHERE user_id = $1
    ORDER BY purchased ASC, updated_at DESC;`

	createShoppingItem = `INSERT INTO shopping_items (user_id, name, quantity, purchased)
    VALUES ($1, $2, $3, $4)
    RETURNING id, user_id, name, quantity, purchased, created_at, updated_at;`

	deleteShoppingItem = `DELETE FROM shopping_items WHERE id = $1;`
)
