package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/mock"
	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/models"
)

func newTestShoppingService(t *testing.T) (ShoppingService, *mock.MockShoppingRepository) {
	ctrl := gomock.NewController(t)
	items := mock.NewMockShoppingRepository(ctrl)
	svc := NewShoppingService(items, logger.NewLogger("test"))
	return svc, items
}

func TestTogglePurchased_FlipsFlag(t *testing.T) {
	svc, items := newTestShoppingService(t)

	items.EXPECT().
		GetItem(gomock.Any(), int64(3)).
		Return(models.ShoppingItem{ID: 3, UserID: 1, Purchased: true}, nil)
	items.EXPECT().
		UpdateItem(gomock.Any(), int64(3), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, update store.ShoppingItemUpdate) (models.ShoppingItem, error) {
			if update.Purchased == nil || *update.Purchased {
				t.Errorf("expected toggle to false, got %+v", update.Purchased)
			}
			return models.ShoppingItem{ID: 3, UserID: 1, Purchased: false}, nil
		})

	item, err := svc.TogglePurchased(context.Background(), 1, 3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Purchased {
		t.Error("expected purchased flag flipped to false")
	}
}

func TestTogglePurchased_ExplicitValueWins(t *testing.T) {
	svc, items := newTestShoppingService(t)

	items.EXPECT().
		GetItem(gomock.Any(), int64(3)).
		Return(models.ShoppingItem{ID: 3, UserID: 1, Purchased: true}, nil)
	items.EXPECT().
		UpdateItem(gomock.Any(), int64(3), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, update store.ShoppingItemUpdate) (models.ShoppingItem, error) {
			if update.Purchased == nil || !*update.Purchased {
				t.Errorf("expected explicit true, got %+v", update.Purchased)
			}
			return models.ShoppingItem{ID: 3, UserID: 1, Purchased: true}, nil
		})

	purchased := true
	item, err := svc.TogglePurchased(context.Background(), 1, 3, &purchased)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.Purchased {
		t.Error("expected purchased flag pinned to true")
	}
}

func TestTogglePurchased_Forbidden(t *testing.T) {
	svc, items := newTestShoppingService(t)

	items.EXPECT().
		GetItem(gomock.Any(), int64(3)).
		Return(models.ShoppingItem{ID: 3, UserID: 2}, nil)

	_, err := svc.TogglePurchased(context.Background(), 1, 3, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateItem_RequiresName(t *testing.T) {
	svc, _ := newTestShoppingService(t)

	_, err := svc.CreateItem(context.Background(), models.ShoppingItem{UserID: 1})
	if !errors.Is(err, ErrInvalidDataProvided) {
		t.Fatalf("expected ErrInvalidDataProvided, got %v", err)
	}
}

func TestDeleteItem_Missing(t *testing.T) {
	svc, items := newTestShoppingService(t)

	items.EXPECT().
		GetItem(gomock.Any(), int64(404)).
		Return(models.ShoppingItem{}, store.ErrNotFound)

	err := svc.DeleteItem(context.Background(), 1, 404)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}
}
