package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/models"
)

// shoppingRepository is the PostgreSQL-backed implementation of
// [ShoppingRepository].
type shoppingRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewShoppingRepository constructs a [ShoppingRepository] backed by the
// provided database connection and logger.
func NewShoppingRepository(db *DB, logger *logger.Logger) ShoppingRepository {
	logger.Debug().Msg("creating shopping repository")
	return &shoppingRepository{
		db:     db,
		logger: logger,
	}
}

// ListItems returns the user's shopping items, unpurchased first, most
// recently updated first within each group.
func (r *shoppingRepository) ListItems(ctx context.Context, userID int64) ([]models.ShoppingItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listShoppingItems, userID)
	if err != nil {
		log.Err(err).Str("func", "*shoppingRepository.ListItems").Msg("list shopping items failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	items := make([]models.ShoppingItem, 0)
	for rows.Next() {
		var item models.ShoppingItem
		if err := scanShoppingItemColumns(rows.Scan, &item); err != nil {
			log.Err(err).Str("func", "*shoppingRepository.ListItems").Msg("error: scanning error")
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, nil
}

// GetItem loads a single shopping item by ID. Returns [ErrNotFound] on an
// empty result set.
func (r *shoppingRepository) GetItem(ctx context.Context, itemID int64) (models.ShoppingItem, error) {
	log := logger.FromContext(ctx)

	var item models.ShoppingItem
	row := r.db.QueryRowContext(ctx, getShoppingItem, itemID)
	if err := scanShoppingItemColumns(row.Scan, &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ShoppingItem{}, ErrNotFound
		}
		log.Err(err).Str("func", "*shoppingRepository.GetItem").Msg("error: scanning error")
		return models.ShoppingItem{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return item, nil
}

// CreateItem inserts a new shopping item and returns the stored row.
func (r *shoppingRepository) CreateItem(ctx context.Context, item models.ShoppingItem) (models.ShoppingItem, error) {
	log := logger.FromContext(ctx)

	var stored models.ShoppingItem
	row := r.db.QueryRowContext(ctx, createShoppingItem, item.UserID, item.Name, item.Quantity, item.Purchased)
	if err := scanShoppingItemColumns(row.Scan, &stored); err != nil {
		log.Err(err).Str("func", "*shoppingRepository.CreateItem").Msg("error: scanning error")
		return models.ShoppingItem{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return stored, nil
}

// UpdateItem applies a partial update to a shopping item and returns the
// stored result. At least one field must be set.
func (r *shoppingRepository) UpdateItem(ctx context.Context, itemID int64, update ShoppingItemUpdate) (models.ShoppingItem, error) {
	log := logger.FromContext(ctx)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update("shopping_items").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": itemID}).
		Suffix("RETURNING id, user_id, name, quantity, purchased, created_at, updated_at")

	fields := 0
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
		fields++
	}
	if update.Quantity != nil {
		builder = builder.Set("quantity", *update.Quantity)
		fields++
	}
	if update.Purchased != nil {
		builder = builder.Set("purchased", *update.Purchased)
		fields++
	}
	if fields == 0 {
		return models.ShoppingItem{}, ErrBuildingSQLQuery
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*shoppingRepository.UpdateItem").Msg("error building sql query")
		return models.ShoppingItem{}, ErrBuildingSQLQuery
	}

	var item models.ShoppingItem
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanShoppingItemColumns(row.Scan, &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ShoppingItem{}, ErrNotFound
		}
		log.Err(err).Str("func", "*shoppingRepository.UpdateItem").Msg("error: scanning error")
		return models.ShoppingItem{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return item, nil
}

// DeleteItem removes a shopping item. Returns [ErrNotFound] when nothing was
// deleted.
func (r *shoppingRepository) DeleteItem(ctx context.Context, itemID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteShoppingItem, itemID)
	if err != nil {
		log.Err(err).Str("func", "*shoppingRepository.DeleteItem").Msg("delete shopping item failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanShoppingItemColumns(scan func(dest ...any) error, dst *models.ShoppingItem) error {
	var quantity sql.NullString
	err := scan(&dst.ID, &dst.UserID, &dst.Name, &quantity, &dst.Purchased, &dst.CreatedAt, &dst.UpdatedAt)
	if err != nil {
		return err
	}

	if quantity.Valid {
		dst.Quantity = &quantity.String
	} else {
		dst.Quantity = nil
	}

	return nil
}
