package models

import "time"

// Workout is a scheduled training session owned by a single user. The
// Completed flag is derived state: it is recomputed from the exercises'
// completed flags after every exercise mutation and may also be set by the
// explicit complete action.
type Workout struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"-"`
	DayOfWeek   int        `json:"dayOfWeek"` // 0 (Sunday) .. 6 (Saturday)
	Time        string     `json:"time"`      // "HH:MM"
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Exercises   []Exercise `json:"exercises"`
	History     []HistoryEntry `json:"history,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (w Workout) TableName() string {
	return "workouts"
}

// Exercise belongs to exactly one workout. Position is used only for display
// ordering.
type Exercise struct {
	ID          int64     `json:"id"`
	WorkoutID   int64     `json:"workoutId"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Position    int       `json:"order"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (e Exercise) TableName() string {
	return "exercises"
}

// HistoryEntry is an append-only record of one workout completion event.
// Entries are never updated or retracted, even when the workout later flips
// back to incomplete.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	WorkoutID   int64     `json:"workoutId"`
	WorkoutName string    `json:"workoutName,omitempty"`
	CompletedAt time.Time `json:"completedAt"`
}

func (h HistoryEntry) TableName() string {
	return "workout_history"
}
