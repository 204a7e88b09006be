package service

import (
	"context"
	"fmt"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/models"
)

// shoppingService is the concrete implementation of ShoppingService. All
// single-item operations verify ownership before touching the row.
type shoppingService struct {
	shoppingRepository store.ShoppingRepository
	logger             *logger.Logger
}

// NewShoppingService constructs a ShoppingService over the given repository.
func NewShoppingService(items store.ShoppingRepository, logger *logger.Logger) ShoppingService {
	return &shoppingService{
		shoppingRepository: items,
		logger:             logger,
	}
}

// ListItems returns the caller's shopping list, unpurchased items first.
func (s *shoppingService) ListItems(ctx context.Context, userID int64) ([]models.ShoppingItem, error) {
	log := logger.FromContext(ctx)

	items, err := s.shoppingRepository.ListItems(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("shopping list failed")
		return nil, fmt.Errorf("shopping list failed: %w", err)
	}

	return items, nil
}

// CreateItem validates and persists a new shopping item.
func (s *shoppingService) CreateItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error) {
	log := logger.FromContext(ctx)

	if item.Name == "" {
		return models.ShoppingItem{}, ErrInvalidDataProvided
	}

	created, err := s.shoppingRepository.CreateItem(ctx, item)
	if err != nil {
		log.Err(err).Int64("userID", item.UserID).Msg("shopping item creation failed")
		return models.ShoppingItem{}, fmt.Errorf("shopping item creation failed: %w", err)
	}

	return created, nil
}

// UpdateItem applies a partial update to one of the caller's items.
func (s *shoppingService) UpdateItem(ctx context.Context, userID, itemID int64, update store.ShoppingItemUpdate) (models.ShoppingItem, error) {
	log := logger.FromContext(ctx)

	if update.Name != nil && *update.Name == "" {
		return models.ShoppingItem{}, ErrInvalidDataProvided
	}

	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return models.ShoppingItem{}, err
	}

	updated, err := s.shoppingRepository.UpdateItem(ctx, itemID, update)
	if err != nil {
		log.Err(err).Int64("itemID", itemID).Msg("shopping item update failed")
		return models.ShoppingItem{}, fmt.Errorf("shopping item update failed: %w", err)
	}

	return updated, nil
}

// TogglePurchased sets the item's purchased flag. With no explicit value
// the current flag is flipped, so a client can toggle without first
// reading the item.
func (s *shoppingService) TogglePurchased(ctx context.Context, userID, itemID int64, purchased *bool) (models.ShoppingItem, error) {
	log := logger.FromContext(ctx)

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return models.ShoppingItem{}, err
	}

	next := !item.Purchased
	if purchased != nil {
		next = *purchased
	}

	updated, err := s.shoppingRepository.UpdateItem(ctx, itemID, store.ShoppingItemUpdate{Purchased: &next})
	if err != nil {
		log.Err(err).Int64("itemID", itemID).Msg("shopping item toggle failed")
		return models.ShoppingItem{}, fmt.Errorf("shopping item toggle failed: %w", err)
	}

	return updated, nil
}

// DeleteItem removes one of the caller's items.
func (s *shoppingService) DeleteItem(ctx context.Context, userID, itemID int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.ownedItem(ctx, userID, itemID); err != nil {
		return err
	}

	if err := s.shoppingRepository.DeleteItem(ctx, itemID); err != nil {
		log.Err(err).Int64("itemID", itemID).Msg("shopping item deletion failed")
		return fmt.Errorf("shopping item deletion failed: %w", err)
	}

	return nil
}

// ownedItem loads the item and verifies the caller owns it.
func (s *shoppingService) ownedItem(ctx context.Context, userID, itemID int64) (models.ShoppingItem, error) {
	log := logger.FromContext(ctx)

	item, err := s.shoppingRepository.GetItem(ctx, itemID)
	if err != nil {
		log.Err(err).Int64("itemID", itemID).Msg("shopping item lookup failed")
		return models.ShoppingItem{}, fmt.Errorf("shopping item lookup failed: %w", err)
	}

	if item.UserID != userID {
		log.Warn().Int64("itemID", itemID).Int64("userID", userID).Msg("shopping item owned by another user")
		return models.ShoppingItem{}, ErrForbidden
	}

	return item, nil
}
