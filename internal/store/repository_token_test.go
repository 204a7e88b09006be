package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/elielfilhodev/treino/internal/logger"
)

func newTestTokenRepo(t *testing.T) (*tokenRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &tokenRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestStoreRefreshToken_Success(t *testing.T) {
	repo, mock, db := newTestTokenRepo(t)
	defer db.Close()

	ctx := context.Background()
	expiresAt := time.Now().Add(7 * 24 * time.Hour)

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(int64(1), "hash", expiresAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.StoreRefreshToken(ctx, 1, "hash", expiresAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFindUsableToken_Success(t *testing.T) {
	repo, mock, db := newTestTokenRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "token_hash", "expires_at", "revoked_at", "created_at"}).
		AddRow(10, 1, "hash", now.Add(time.Hour), nil, now)

	mock.ExpectQuery("FROM refresh_tokens").
		WithArgs("hash").
		WillReturnRows(rows)

	token, err := repo.FindUsableToken(ctx, "hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.ID != 10 || token.UserID != 1 {
		t.Errorf("unexpected token row: %+v", token)
	}
	if token.RevokedAt != nil {
		t.Errorf("expected RevokedAt=nil, got %v", token.RevokedAt)
	}
}

func TestFindUsableToken_NotFound(t *testing.T) {
	repo, mock, db := newTestTokenRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("FROM refresh_tokens").
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUsableToken(ctx, "unknown")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRevokeByID_Success(t *testing.T) {
	repo, mock, db := newTestTokenRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE refresh_tokens").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RevokeByID(ctx, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRevokeByHash_UnknownHashIsNoError(t *testing.T) {
	repo, mock, db := newTestTokenRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE refresh_tokens").
		WithArgs("unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.RevokeByHash(ctx, "unknown"); err != nil {
		t.Fatalf("expected revoking unknown hash to be a no-op, got %v", err)
	}
}
