package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/utils"
	"github.com/elielfilhodev/treino/models"
)

func (h *Handler) listShoppingItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	items, err := h.services.ShoppingService.ListItems(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.ShoppingItemsResponse{Items: items}, http.StatusOK)
}

func (h *Handler) createShoppingItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req shoppingCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		log.Err(err).Msg("invalid shopping item payload")
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.services.ShoppingService.CreateItem(ctx, models.ShoppingItem{
		UserID:   userID,
		Name:     req.Name,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.ShoppingItemResponse{Item: item}, http.StatusCreated)
}

func (h *Handler) updateShoppingItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req shoppingUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		log.Err(err).Msg("invalid shopping item update payload")
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.services.ShoppingService.UpdateItem(ctx, userID, itemID, req.toUpdate())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.ShoppingItemResponse{Item: item}, http.StatusOK)
}

func (h *Handler) toggleShoppingItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// The body is optional: no body (or an empty object) means flip.
	var req shoppingToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	item, err := h.services.ShoppingService.TogglePurchased(ctx, userID, itemID, req.Purchased)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	//nolint:errcheck
	utils.WriteJSON(w, models.ShoppingItemResponse{Item: item}, http.StatusOK)
}

func (h *Handler) deleteShoppingItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.services.ShoppingService.DeleteItem(ctx, userID, itemID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
