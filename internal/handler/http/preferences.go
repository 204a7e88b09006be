package http

import (
	"encoding/json"
	"net/http"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/utils"
	"github.com/elielfilhodev/treino/models"
)

func (h *Handler) getPreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	prefs, err := h.services.PreferencesService.GetPreferences(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.PreferencesResponse{Preferences: prefs}, http.StatusOK)
}

// replacePreferences overwrites both preference sets wholesale; partial
// updates are not supported on purpose.
func (h *Handler) replacePreferences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	prefs, err := h.services.PreferencesService.ReplacePreferences(ctx, req.toPreferences(userID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.PreferencesResponse{Preferences: prefs}, http.StatusOK)
}
