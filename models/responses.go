package models

// AuthResponse is the body returned by register, login and refresh. The
// refresh token is handed out in cleartext exactly once; only its hash is
// stored server-side.
type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// WorkoutsResponse wraps a workout listing.
type WorkoutsResponse struct {
	Workouts []Workout `json:"workouts"`
}

// WorkoutResponse wraps a single workout.
type WorkoutResponse struct {
	Workout Workout `json:"workout"`
}

// ExerciseResponse wraps a single exercise.
type ExerciseResponse struct {
	Exercise Exercise `json:"exercise"`
}

// HistoryResponse wraps the recent completion log, newest first.
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}

// ShoppingItemsResponse wraps a shopping list.
type ShoppingItemsResponse struct {
	Items []ShoppingItem `json:"items"`
}

// ShoppingItemResponse wraps a single shopping item.
type ShoppingItemResponse struct {
	Item ShoppingItem `json:"item"`
}

// PreferencesResponse wraps a user's preference sets.
type PreferencesResponse struct {
	Preferences Preferences `json:"preferences"`
}

// UserResponse wraps a public user profile.
type UserResponse struct {
	User User `json:"user"`
}
