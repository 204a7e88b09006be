// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eliel Filho

package http

import (
	"encoding/json"
	"net/http"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/utils"
	"github.com/elielfilhodev/treino/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	//nolint:errcheck
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		log.Err(err).Msg("invalid registration payload")
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, pair, err := h.services.AuthService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info().Int64("userID", user.UserID).Msg("user registered")

	//nolint:errcheck
	utils.WriteJSON(w, models.AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshRaw,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		log.Err(err).Msg("invalid login payload")
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, pair, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Debug().Int64("userID", user.UserID).Msg("user successfully logged in")

	//nolint:errcheck
	utils.WriteJSON(w, models.AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshRaw,
	}, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, pair, err := h.services.AuthService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.AuthResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshRaw,
	}, http.StatusOK)
}

// logout revokes the presented refresh token. The endpoint is deliberately
// unauthenticated: a client whose access token already expired must still be
// able to end its session.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.Logout(ctx, req.RefreshToken); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	user, err := h.services.AuthService.Profile(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.UserResponse{User: user}, http.StatusOK)
}

func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req avatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.UpdateAvatar(ctx, userID, req.AvatarURL)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.UserResponse{User: user}, http.StatusOK)
}
