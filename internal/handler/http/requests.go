package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/models"
)

// minPasswordLength is the minimum accepted password length at registration.
const minPasswordLength = 8

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if len(r.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// refreshRequest is shared by the refresh and logout endpoints; both act on
// a previously issued refresh token.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type avatarRequest struct {
	AvatarURL *string `json:"avatarUrl"`
}

// exerciseCreateRequest leaves order as a pointer so an explicit 0 can be
// told apart from an absent field; absent positions are assigned
// server-side.
type exerciseCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

func (r exerciseCreateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Order != nil && *r.Order < 0 {
		return errors.New("order must not be negative")
	}
	return nil
}

// exerciseToggleRequest is the optional body of the exercise toggle
// endpoint. Without a body the current completed flag is flipped.
type exerciseToggleRequest struct {
	Completed *bool `json:"completed"`
}

// shoppingToggleRequest is the optional body of the shopping-item toggle
// endpoint. Without a body the current purchased flag is flipped.
type shoppingToggleRequest struct {
	Purchased *bool `json:"purchased"`
}

type workoutCreateRequest struct {
	DayOfWeek   int                     `json:"dayOfWeek"`
	Time        string                  `json:"time"`
	Name        string                  `json:"name"`
	Description *string                 `json:"description"`
	Exercises   []exerciseCreateRequest `json:"exercises"`
}

func (r workoutCreateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return errors.New("dayOfWeek must be between 0 and 6")
	}
	if err := validateTimeOfDay(r.Time); err != nil {
		return err
	}
	for _, exercise := range r.Exercises {
		if err := exercise.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type workoutUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DayOfWeek   *int    `json:"dayOfWeek"`
	Time        *string `json:"time"`
}

func (r workoutUpdateRequest) Validate() error {
	if r.Name == nil && r.Description == nil && r.DayOfWeek == nil && r.Time == nil {
		return errors.New("at least one field must be provided")
	}
	if r.Name != nil && *r.Name == "" {
		return errors.New("name must not be empty")
	}
	if r.DayOfWeek != nil && (*r.DayOfWeek < 0 || *r.DayOfWeek > 6) {
		return errors.New("dayOfWeek must be between 0 and 6")
	}
	if r.Time != nil {
		return validateTimeOfDay(*r.Time)
	}
	return nil
}

func (r workoutUpdateRequest) toUpdate() store.WorkoutUpdate {
	return store.WorkoutUpdate{
		Name:        r.Name,
		Description: r.Description,
		DayOfWeek:   r.DayOfWeek,
		Time:        r.Time,
	}
}

type exerciseUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	Completed   *bool   `json:"completed"`
}

func (r exerciseUpdateRequest) Validate() error {
	if r.Name == nil && r.Description == nil && r.Order == nil && r.Completed == nil {
		return errors.New("at least one field must be provided")
	}
	if r.Name != nil && *r.Name == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

func (r exerciseUpdateRequest) toUpdate() store.ExerciseUpdate {
	return store.ExerciseUpdate{
		Name:        r.Name,
		Description: r.Description,
		Position:    r.Order,
		Completed:   r.Completed,
	}
}

type shoppingCreateRequest struct {
	Name     string  `json:"name"`
	Quantity *string `json:"quantity"`
}

func (r shoppingCreateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type shoppingUpdateRequest struct {
	Name      *string `json:"name"`
	Quantity  *string `json:"quantity"`
	Purchased *bool   `json:"purchased"`
}

func (r shoppingUpdateRequest) Validate() error {
	if r.Name == nil && r.Quantity == nil && r.Purchased == nil {
		return errors.New("at least one field must be provided")
	}
	if r.Name != nil && *r.Name == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

func (r shoppingUpdateRequest) toUpdate() store.ShoppingItemUpdate {
	return store.ShoppingItemUpdate{
		Name:      r.Name,
		Quantity:  r.Quantity,
		Purchased: r.Purchased,
	}
}

type preferencesRequest struct {
	Goals         []string `json:"goals"`
	TrainingTypes []string `json:"trainingTypes"`
}

// toPreferences treats absent sets as empty so a PUT with a partial body
// still replaces both sets deterministically.
func (r preferencesRequest) toPreferences(userID int64) models.Preferences {
	prefs := models.Preferences{
		UserID:        userID,
		Goals:         r.Goals,
		TrainingTypes: r.TrainingTypes,
	}
	if prefs.Goals == nil {
		prefs.Goals = []string{}
	}
	if prefs.TrainingTypes == nil {
		prefs.TrainingTypes = []string{}
	}
	return prefs
}

// validateEmail applies the same loose shape check the rest of the stack
// relies on; real deliverability is out of scope.
func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	at := -1
	for i, c := range email {
		if c == '@' {
			at = i
			break
		}
	}
	if at <= 0 || at == len(email)-1 {
		return errors.New("email is invalid")
	}
	return nil
}

// validateTimeOfDay accepts the 24-hour "HH:MM" wall-clock format.
func validateTimeOfDay(value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return errors.New(`time must be in "HH:MM" format`)
	}
	return nil
}

// pathID parses a numeric route parameter. Handlers treat a malformed ID
// the same as a missing resource.
func pathID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, store.ErrNotFound
	}
	return id, nil
}
