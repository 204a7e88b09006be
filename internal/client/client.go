// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eliel Filho

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/models"
)

const defaultRequestTimeout = 15 * time.Second

// Config carries the client construction knobs.
type Config struct {
	// BaseURL is the server address, with or without scheme
	// (e.g. "localhost:8080" or "https://treino.example.com").
	BaseURL string
	// Timeout bounds each HTTP request; defaults to 15s when zero.
	Timeout time.Duration
}

// Client talks to the treino REST API. All authenticated methods inject the
// stored access token and transparently exchange the refresh token once when
// the server answers 401.
type Client struct {
	client  *resty.Client
	storage TokenStorage

	// refreshMu serializes token rotation so concurrent 401s cannot burn the
	// single-use refresh token twice.
	refreshMu sync.Mutex

	logger *logger.Logger
}

// New constructs a Client over the given token storage. Returns an error if
// cfg.BaseURL is empty or unparseable.
func New(cfg Config, storage TokenStorage, logger *logger.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRequestTimeout
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{client: cli, storage: storage, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ── Auth ────────────────────────────────────────────────────────────────────

// Register creates an account and stores the issued token pair.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.authenticate(ctx, "/api/v1/auth/register", body)
}

// Login exchanges credentials for a token pair and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/api/v1/auth/login", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (models.User, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return models.User{}, fmt.Errorf("auth request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var ar models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &ar); err != nil {
		return models.User{}, fmt.Errorf("decode auth response: %w", err)
	}

	pair := models.TokenPair{AccessToken: ar.AccessToken, RefreshRaw: ar.RefreshToken}
	if err = c.storage.Save(pair); err != nil {
		return models.User{}, fmt.Errorf("save token pair: %w", err)
	}

	return ar.User, nil
}

// Logout revokes the stored refresh token server-side and clears local
// storage. Clearing happens even when the server call fails; a lost session
// must not wedge the client.
func (c *Client) Logout(ctx context.Context) error {
	pair, err := c.storage.Load()
	if err != nil {
		return fmt.Errorf("load token pair: %w", err)
	}

	var reqErr error
	if pair.RefreshRaw != "" {
		resp, err := c.client.R().
			SetContext(ctx).
			SetBody(map[string]string{"refreshToken": pair.RefreshRaw}).
			Post("/api/v1/auth/logout")
		if err != nil {
			reqErr = fmt.Errorf("logout request: %w", err)
		} else {
			reqErr = mapHTTPError(resp)
		}
	}

	if err = c.storage.Clear(); err != nil {
		return fmt.Errorf("clear token pair: %w", err)
	}
	return reqErr
}

// refreshPair rotates the stored refresh token for a new pair. On any server
// rejection the stored pair is cleared and ErrSessionExpired is returned.
func (c *Client) refreshPair(ctx context.Context, stale models.TokenPair) (models.TokenPair, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have rotated while this one waited on the mutex.
	current, err := c.storage.Load()
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("load token pair: %w", err)
	}
	if current.AccessToken != "" && current.AccessToken != stale.AccessToken {
		return current, nil
	}
	if current.RefreshRaw == "" {
		return models.TokenPair{}, ErrSessionExpired
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"refreshToken": current.RefreshRaw}).
		Post("/api/v1/auth/refresh")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}
	if mapHTTPError(resp) != nil {
		_ = c.storage.Clear()
		return models.TokenPair{}, ErrSessionExpired
	}

	var ar models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &ar); err != nil {
		return models.TokenPair{}, fmt.Errorf("decode refresh response: %w", err)
	}
	pair := models.TokenPair{AccessToken: ar.AccessToken, RefreshRaw: ar.RefreshToken}
	if err = c.storage.Save(pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("save token pair: %w", err)
	}

	c.logger.Debug().Msg("token pair rotated")
	return pair, nil
}

// do sends an authenticated request built by send, retrying exactly once
// through a token refresh when the server answers 401.
func (c *Client) do(ctx context.Context, send func(req *resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	pair, err := c.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("load token pair: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, ErrNotLoggedIn
	}

	resp, err := send(c.authedRequest(ctx, pair.AccessToken))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusUnauthorized {
		return resp, nil
	}

	pair, err = c.refreshPair(ctx, pair)
	if err != nil {
		return nil, err
	}

	resp, err = send(c.authedRequest(ctx, pair.AccessToken))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		_ = c.storage.Clear()
		return nil, ErrSessionExpired
	}
	return resp, nil
}

func (c *Client) authedRequest(ctx context.Context, accessToken string) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+accessToken)
}

// ── Profile ─────────────────────────────────────────────────────────────────

func (c *Client) Me(ctx context.Context) (models.User, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/api/v1/auth/me")
	})
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var ur models.UserResponse
	if err = json.Unmarshal(resp.Body(), &ur); err != nil {
		return models.User{}, fmt.Errorf("decode me response: %w", err)
	}
	return ur.User, nil
}

// UpdateAvatar sets or, with a nil URL, removes the profile picture.
func (c *Client) UpdateAvatar(ctx context.Context, avatarURL *string) (models.User, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetBody(map[string]*string{"avatarUrl": avatarURL}).
			Patch("/api/v1/auth/me/avatar")
	})
	if err != nil {
		return models.User{}, fmt.Errorf("update avatar request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var ur models.UserResponse
	if err = json.Unmarshal(resp.Body(), &ur); err != nil {
		return models.User{}, fmt.Errorf("decode avatar response: %w", err)
	}
	return ur.User, nil
}

// ── Workouts ────────────────────────────────────────────────────────────────

// ExerciseDraft is the payload for creating an exercise. A nil Order lets
// the server pick the next position; an explicit 0 is sent as-is.
type ExerciseDraft struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty"`
}

// WorkoutDraft is the payload for creating a workout with its exercises.
type WorkoutDraft struct {
	Name        string          `json:"name"`
	DayOfWeek   int             `json:"dayOfWeek"`
	Time        string          `json:"time"`
	Description *string         `json:"description,omitempty"`
	Exercises   []ExerciseDraft `json:"exercises,omitempty"`
}

// WorkoutPatch carries a partial workout update; nil fields stay untouched.
type WorkoutPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DayOfWeek   *int    `json:"dayOfWeek,omitempty"`
	Time        *string `json:"time,omitempty"`
}

// ExercisePatch carries a partial exercise update; nil fields stay untouched.
type ExercisePatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// ListWorkouts returns the user's workouts, optionally filtered to one day of
// the week (0 Sunday .. 6 Saturday).
func (c *Client) ListWorkouts(ctx context.Context, day *int) ([]models.Workout, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		if day != nil {
			req.SetQueryParam("day", strconv.Itoa(*day))
		}
		return req.Get("/api/v1/workouts")
	})
	if err != nil {
		return nil, fmt.Errorf("list workouts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var wr models.WorkoutsResponse
	if err = json.Unmarshal(resp.Body(), &wr); err != nil {
		return nil, fmt.Errorf("decode workouts response: %w", err)
	}
	return wr.Workouts, nil
}

func (c *Client) GetWorkout(ctx context.Context, workoutID int64) (models.Workout, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get(workoutPath(workoutID))
	})
	if err != nil {
		return models.Workout{}, fmt.Errorf("get workout request: %w", err)
	}
	return decodeWorkout(resp)
}

func (c *Client) CreateWorkout(ctx context.Context, draft WorkoutDraft) (models.Workout, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetBody(draft).Post("/api/v1/workouts")
	})
	if err != nil {
		return models.Workout{}, fmt.Errorf("create workout request: %w", err)
	}
	return decodeWorkout(resp)
}

func (c *Client) UpdateWorkout(ctx context.Context, workoutID int64, patch WorkoutPatch) (models.Workout, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetBody(patch).Put(workoutPath(workoutID))
	})
	if err != nil {
		return models.Workout{}, fmt.Errorf("update workout request: %w", err)
	}
	return decodeWorkout(resp)
}

func (c *Client) DeleteWorkout(ctx context.Context, workoutID int64) error {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Delete(workoutPath(workoutID))
	})
	if err != nil {
		return fmt.Errorf("delete workout request: %w", err)
	}
	return mapHTTPError(resp)
}

// CompleteWorkout marks the whole workout done regardless of exercise state.
func (c *Client) CompleteWorkout(ctx context.Context, workoutID int64) (models.Workout, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Patch(workoutPath(workoutID) + "/complete")
	})
	if err != nil {
		return models.Workout{}, fmt.Errorf("complete workout request: %w", err)
	}
	return decodeWorkout(resp)
}

func (c *Client) AddExercise(ctx context.Context, workoutID int64, draft ExerciseDraft) (models.Exercise, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetBody(draft).Post(workoutPath(workoutID) + "/exercises")
	})
	if err != nil {
		return models.Exercise{}, fmt.Errorf("add exercise request: %w", err)
	}
	return decodeExercise(resp)
}

func (c *Client) UpdateExercise(ctx context.Context, workoutID, exerciseID int64, patch ExercisePatch) (models.Exercise, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetBody(patch).
			Patch(workoutPath(workoutID) + "/exercises/" + strconv.FormatInt(exerciseID, 10))
	})
	if err != nil {
		return models.Exercise{}, fmt.Errorf("update exercise request: %w", err)
	}
	return decodeExercise(resp)
}

// ToggleExercise flips the exercise's completed flag server-side, or pins
// it to an explicit value when completed is non-nil.
func (c *Client) ToggleExercise(ctx context.Context, workoutID, exerciseID int64, completed *bool) (models.Exercise, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		if completed != nil {
			req.SetBody(map[string]bool{"completed": *completed})
		}
		return req.Patch(workoutPath(workoutID) + "/exercises/" + strconv.FormatInt(exerciseID, 10) + "/toggle")
	})
	if err != nil {
		return models.Exercise{}, fmt.Errorf("toggle exercise request: %w", err)
	}
	return decodeExercise(resp)
}

// History returns the recent completion log, newest first.
func (c *Client) History(ctx context.Context) ([]models.HistoryEntry, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/api/v1/workouts/history")
	})
	if err != nil {
		return nil, fmt.Errorf("history request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var hr models.HistoryResponse
	if err = json.Unmarshal(resp.Body(), &hr); err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}
	return hr.History, nil
}

// ── Shopping list ───────────────────────────────────────────────────────────

// ShoppingDraft is the payload for creating a shopping item.
type ShoppingDraft struct {
	Name     string  `json:"name"`
	Quantity *string `json:"quantity,omitempty"`
}

// ShoppingPatch carries a partial item update; nil fields stay untouched.
type ShoppingPatch struct {
	Name      *string `json:"name,omitempty"`
	Quantity  *string `json:"quantity,omitempty"`
	Purchased *bool   `json:"purchased,omitempty"`
}

func (c *Client) ListShoppingItems(ctx context.Context) ([]models.ShoppingItem, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/api/v1/shopping-items")
	})
	if err != nil {
		return nil, fmt.Errorf("list shopping request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var sr models.ShoppingItemsResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return nil, fmt.Errorf("decode shopping response: %w", err)
	}
	return sr.Items, nil
}

func (c *Client) CreateShoppingItem(ctx context.Context, draft ShoppingDraft) (models.ShoppingItem, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetBody(draft).Post("/api/v1/shopping-items")
	})
	if err != nil {
		return models.ShoppingItem{}, fmt.Errorf("create shopping item request: %w", err)
	}
	return decodeShoppingItem(resp)
}

func (c *Client) UpdateShoppingItem(ctx context.Context, itemID int64, patch ShoppingPatch) (models.ShoppingItem, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetBody(patch).Put(shoppingPath(itemID))
	})
	if err != nil {
		return models.ShoppingItem{}, fmt.Errorf("update shopping item request: %w", err)
	}
	return decodeShoppingItem(resp)
}

// ToggleShoppingItem flips the purchased flag server-side, or pins it to an
// explicit value when purchased is non-nil.
func (c *Client) ToggleShoppingItem(ctx context.Context, itemID int64, purchased *bool) (models.ShoppingItem, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		if purchased != nil {
			req.SetBody(map[string]bool{"purchased": *purchased})
		}
		return req.Patch(shoppingPath(itemID) + "/toggle")
	})
	if err != nil {
		return models.ShoppingItem{}, fmt.Errorf("toggle shopping item request: %w", err)
	}
	return decodeShoppingItem(resp)
}

func (c *Client) DeleteShoppingItem(ctx context.Context, itemID int64) error {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Delete(shoppingPath(itemID))
	})
	if err != nil {
		return fmt.Errorf("delete shopping item request: %w", err)
	}
	return mapHTTPError(resp)
}

// ── Preferences ─────────────────────────────────────────────────────────────

func (c *Client) Preferences(ctx context.Context) (models.Preferences, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/api/v1/preferences")
	})
	if err != nil {
		return models.Preferences{}, fmt.Errorf("preferences request: %w", err)
	}
	return decodePreferences(resp)
}

// ReplacePreferences overwrites both preference sets wholesale.
func (c *Client) ReplacePreferences(ctx context.Context, goals, trainingTypes []string) (models.Preferences, error) {
	resp, err := c.do(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetBody(map[string][]string{"goals": goals, "trainingTypes": trainingTypes}).
			Put("/api/v1/preferences")
	})
	if err != nil {
		return models.Preferences{}, fmt.Errorf("replace preferences request: %w", err)
	}
	return decodePreferences(resp)
}

// ── Decoding helpers ────────────────────────────────────────────────────────

func workoutPath(workoutID int64) string {
	return "/api/v1/workouts/" + strconv.FormatInt(workoutID, 10)
}

func shoppingPath(itemID int64) string {
	return "/api/v1/shopping-items/" + strconv.FormatInt(itemID, 10)
}

func decodeWorkout(resp *resty.Response) (models.Workout, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.Workout{}, err
	}
	var wr models.WorkoutResponse
	if err := json.Unmarshal(resp.Body(), &wr); err != nil {
		return models.Workout{}, fmt.Errorf("decode workout response: %w", err)
	}
	return wr.Workout, nil
}

func decodeExercise(resp *resty.Response) (models.Exercise, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.Exercise{}, err
	}
	var er models.ExerciseResponse
	if err := json.Unmarshal(resp.Body(), &er); err != nil {
		return models.Exercise{}, fmt.Errorf("decode exercise response: %w", err)
	}
	return er.Exercise, nil
}

func decodeShoppingItem(resp *resty.Response) (models.ShoppingItem, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.ShoppingItem{}, err
	}
	var sr models.ShoppingItemResponse
	if err := json.Unmarshal(resp.Body(), &sr); err != nil {
		return models.ShoppingItem{}, fmt.Errorf("decode shopping item response: %w", err)
	}
	return sr.Item, nil
}

func decodePreferences(resp *resty.Response) (models.Preferences, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.Preferences{}, err
	}
	var pr models.PreferencesResponse
	if err := json.Unmarshal(resp.Body(), &pr); err != nil {
		return models.Preferences{}, fmt.Errorf("decode preferences response: %w", err)
	}
	return pr.Preferences, nil
}
