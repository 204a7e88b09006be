package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/models"
)

// tokenRepository is the PostgreSQL-backed implementation of
// [TokenRepository]. Refresh tokens are stored hashed; the raw value never
// reaches this layer.
type tokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTokenRepository constructs a [TokenRepository] backed by the provided
// database connection and logger.
func NewTokenRepository(db *DB, logger *logger.Logger) TokenRepository {
	logger.Debug().Msg("creating token repository")
	return &tokenRepository{
		db:     db,
		logger: logger,
	}
}

// StoreRefreshToken inserts a refresh token hash with its expiry.
func (r *tokenRepository) StoreRefreshToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, storeRefreshToken, userID, tokenHash, expiresAt); err != nil {
		log.Err(err).Str("func", "*tokenRepository.StoreRefreshToken").Msg("insert refresh token failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// FindUsableToken looks up a refresh token by hash that is neither revoked
// nor expired. Returns [ErrNotFound] when no usable token matches.
func (r *tokenRepository) FindUsableToken(ctx context.Context, tokenHash string) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	var token models.RefreshToken
	row := r.db.QueryRowContext(ctx, findUsableRefreshToken, tokenHash)
	if err := scanRefreshToken(row, &token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RefreshToken{}, ErrNotFound
		}
		log.Err(err).Str("func", "*tokenRepository.FindUsableToken").Msg("error: scanning error")
		return models.RefreshToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return token, nil
}

// RevokeByID marks a single refresh token as revoked. Revoking an already
// revoked token is a no-op.
func (r *tokenRepository) RevokeByID(ctx context.Context, tokenID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, revokeRefreshTokenByID, tokenID); err != nil {
		log.Err(err).Str("func", "*tokenRepository.RevokeByID").Msg("revoke refresh token failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// RevokeByHash marks all live tokens with the given hash as revoked.
// Unknown hashes revoke zero rows and are not an error, which keeps logout
// idempotent.
func (r *tokenRepository) RevokeByHash(ctx context.Context, tokenHash string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, revokeRefreshTokensByHash, tokenHash); err != nil {
		log.Err(err).Str("func", "*tokenRepository.RevokeByHash").Msg("revoke refresh token failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func scanRefreshToken(row *sql.Row, dst *models.RefreshToken) error {
	var revokedAt sql.NullTime
	err := row.Scan(&dst.ID, &dst.UserID, &dst.TokenHash, &dst.ExpiresAt, &revokedAt, &dst.CreatedAt)
	if err != nil {
		return err
	}

	if revokedAt.Valid {
		dst.RevokedAt = &revokedAt.Time
	} else {
		dst.RevokedAt = nil
	}

	return nil
}
