package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elielfilhodev/treino/models"
)

func TestGetPreferences_EmptySetsEncodeAsArrays(t *testing.T) {
	prefs := &mockPreferencesService{
		getPreferencesFn: func(_ context.Context, userID int64) (models.Preferences, error) {
			return models.EmptyPreferences(userID), nil
		},
	}
	router := newTestHandler(trustedAuth(1), nil, nil, prefs).Init()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodGet, "/api/v1/preferences", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"goals":[]`)
	assert.Contains(t, rr.Body.String(), `"trainingTypes":[]`)
}

func TestReplacePreferences_Success(t *testing.T) {
	prefs := &mockPreferencesService{
		replacePreferencesFn: func(_ context.Context, p models.Preferences) (models.Preferences, error) {
			require.Equal(t, int64(1), p.UserID)
			require.Equal(t, []string{"hypertrophy"}, p.Goals)
			require.Equal(t, []string{"strength", "cardio"}, p.TrainingTypes)
			return p, nil
		},
	}
	router := newTestHandler(trustedAuth(1), nil, nil, prefs).Init()

	body := `{"goals":["hypertrophy"],"trainingTypes":["strength","cardio"]}`
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodPut, "/api/v1/preferences", body))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.PreferencesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"hypertrophy"}, resp.Preferences.Goals)
}

func TestReplacePreferences_NullSetsBecomeEmpty(t *testing.T) {
	prefs := &mockPreferencesService{
		replacePreferencesFn: func(_ context.Context, p models.Preferences) (models.Preferences, error) {
			require.NotNil(t, p.Goals)
			require.NotNil(t, p.TrainingTypes)
			return p, nil
		},
	}
	router := newTestHandler(trustedAuth(1), nil, nil, prefs).Init()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, authedRequest(http.MethodPut, "/api/v1/preferences", `{}`))

	assert.Equal(t, http.StatusOK, rr.Code)
}
