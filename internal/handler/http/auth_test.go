// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eliel Filho

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elielfilhodev/treino/internal/service"
	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/models"
)

func TestRegister_ReturnsUserAndTokenPair(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, name, email, password string) (models.User, models.TokenPair, error) {
			require.Equal(t, "John", name)
			require.Equal(t, "john@example.com", email)
			require.Equal(t, "secret-password", password)
			return models.User{UserID: 1, Name: name, Email: email},
				models.TokenPair{AccessToken: "access", RefreshRaw: "refresh"}, nil
		},
	}
	router := newTestHandler(auth, nil, nil, nil).Init()

	body := `{"name":"John","email":"john@example.com","password":"secret-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.User.UserID)
	assert.Equal(t, "access", resp.AccessToken)
	assert.Equal(t, "refresh", resp.RefreshToken)
}

func TestRegister_ValidationErrors(t *testing.T) {
	router := newTestHandler(&mockAuthService{}, nil, nil, nil).Init()

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"john@example.com","password":"secret-password"}`},
		{"bad email", `{"name":"John","email":"not-an-email","password":"secret-password"}`},
		{"short password", `{"name":"John","email":"john@example.com","password":"short"}`},
		{"broken json", `{"name":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _, _ string) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, store.ErrEmailAlreadyExists
		},
	}
	router := newTestHandler(auth, nil, nil, nil).Init()

	body := `{"name":"John","email":"john@example.com","password":"secret-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _, _ string) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, service.ErrInvalidCredentials
		},
	}
	router := newTestHandler(auth, nil, nil, nil).Init()

	body := `{"email":"john@example.com","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRefresh_ReturnsUserAndTokenPair(t *testing.T) {
	auth := &mockAuthService{
		refreshFn: func(_ context.Context, refreshRaw string) (models.User, models.TokenPair, error) {
			require.Equal(t, "old-refresh", refreshRaw)
			return models.User{UserID: 7, Name: "John", Email: "john@example.com"},
				models.TokenPair{AccessToken: "new-access", RefreshRaw: "new-refresh"}, nil
		},
	}
	router := newTestHandler(auth, nil, nil, nil).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refreshToken":"old-refresh"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.User.UserID)
	assert.Equal(t, "John", resp.User.Name)
	assert.Equal(t, "new-access", resp.AccessToken)
	assert.Equal(t, "new-refresh", resp.RefreshToken)
}

func TestRefresh_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		refreshFn: func(_ context.Context, _ string) (models.User, models.TokenPair, error) {
			return models.User{}, models.TokenPair{}, service.ErrInvalidRefreshToken
		},
	}
	router := newTestHandler(auth, nil, nil, nil).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refreshToken":"stale"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogout_AlwaysNoContent(t *testing.T) {
	auth := &mockAuthService{
		logoutFn: func(_ context.Context, _ string) error { return nil },
	}
	router := newTestHandler(auth, nil, nil, nil).Init()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", strings.NewReader(`{"refreshToken":"whatever"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router := newTestHandler(trustedAuth(1), &mockWorkoutService{}, nil, nil).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	router := newTestHandler(trustedAuth(1), &mockWorkoutService{}, nil, nil).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProfile_Success(t *testing.T) {
	auth := trustedAuth(7)
	auth.profileFn = func(_ context.Context, userID int64) (models.User, error) {
		require.Equal(t, int64(7), userID)
		return models.User{
			UserID: 7,
			Name:   "John",
			Preferences: &models.Preferences{
				Goals:         []string{"hypertrophy"},
				TrainingTypes: []string{},
			},
		}, nil
	}
	router := newTestHandler(auth, nil, nil, nil).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "John", resp.User.Name)
	require.NotNil(t, resp.User.Preferences)
	assert.Equal(t, []string{"hypertrophy"}, resp.User.Preferences.Goals)
}

func TestHealth_NoAuthRequired(t *testing.T) {
	router := newTestHandler(&mockAuthService{}, nil, nil, nil).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
