package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique, lowercased address used during authentication.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a derived value, never plaintext, and is not
	// exposed via JSON.
	PasswordHash string `json:"-"`

	// AvatarURL is an optional profile picture location. Nil means unset.
	AvatarURL *string `json:"avatarUrl"`

	// Preferences is populated on profile reads; nil when not loaded.
	Preferences *Preferences `json:"preferences,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Preferences holds a user's free-form training preferences. One row per
// user; both sets are replaced wholesale on update.
type Preferences struct {
	UserID        int64     `json:"-"`
	Goals         []string  `json:"goals"`
	TrainingTypes []string  `json:"trainingTypes"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EmptyPreferences returns the zero-value preference set for a user who has
// never stored any. Slices are non-nil so JSON encodes [] instead of null.
func EmptyPreferences(userID int64) Preferences {
	return Preferences{
		UserID:        userID,
		Goals:         []string{},
		TrainingTypes: []string{},
	}
}
