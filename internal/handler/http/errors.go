// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eliel Filho

package http

import (
	"errors"
	"net/http"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/service"
	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/internal/utils"
)

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// errorResponse is the uniform JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError emits the uniform error body with the given status.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	//nolint:errcheck // nothing sensible to do with a failed error write
	utils.WriteJSON(w, errorResponse{Error: message}, statusCode)
}

// writeServiceError is the single mapping point between the error taxonomy
// of the lower layers and HTTP status codes. Sentinels stay matchable
// through wrapping, so one errors.Is chain covers the whole call stack:
//
//	service.ErrInvalidDataProvided        → 400
//	service.ErrInvalidCredentials         → 401
//	service.ErrInvalidRefreshToken        → 401
//	service.ErrTokenIsExpiredOrInvalid    → 401
//	service.ErrForbidden                  → 403
//	store.ErrNotFound                     → 404
//	store.ErrEmailAlreadyExists           → 409
//	anything else                         → 500
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	switch {
	case errors.Is(err, service.ErrInvalidDataProvided):
		log.Err(err).Msg("invalid data provided")
		writeError(w, service.ErrInvalidDataProvided.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		log.Err(err).Msg("invalid credentials")
		writeError(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrInvalidRefreshToken):
		log.Err(err).Msg("invalid refresh token")
		writeError(w, service.ErrInvalidRefreshToken.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		log.Err(err).Msg("token expired or invalid")
		writeError(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		log.Err(err).Msg("forbidden")
		writeError(w, service.ErrForbidden.Error(), http.StatusForbidden)
	case errors.Is(err, store.ErrNotFound):
		log.Err(err).Msg("not found")
		writeError(w, store.ErrNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrEmailAlreadyExists):
		log.Err(err).Msg("email already exists")
		writeError(w, store.ErrEmailAlreadyExists.Error(), http.StatusConflict)
	default:
		log.Err(err).Msg("unexpected error")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
