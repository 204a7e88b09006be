// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Eliel Filho

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/elielfilhodev/treino/internal/config"
	"github.com/elielfilhodev/treino/internal/logger"
	"github.com/elielfilhodev/treino/internal/store"
	"github.com/elielfilhodev/treino/internal/utils"
	"github.com/elielfilhodev/treino/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification and the full token
// lifecycle: short-lived HMAC-SHA256 access tokens plus opaque, single-use
// refresh tokens whose SHA-256 digests are persisted through the
// TokenRepository.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenRepository persists refresh-token digests and revocations.
	tokenRepository store.TokenRepository

	// preferencesRepository provisions the empty preference row for every
	// new account and backs profile reads.
	preferencesRepository store.PreferencesRepository

	// tokenSignKey is the HMAC secret used to sign and verify access tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued access token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// accessTokenTTL controls how long a newly issued access token remains
	// valid.
	accessTokenTTL time.Duration

	// refreshTokenTTL controls how long a refresh token may be exchanged.
	refreshTokenTTL time.Duration

	// bcryptCost is the bcrypt cost factor for password hashing. Zero
	// selects the library default.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// repositories and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(users store.UserRepository, tokens store.TokenRepository, prefs store.PreferencesRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:        users,
		tokenRepository:       tokens,
		preferencesRepository: prefs,
		tokenSignKey:          cfg.TokenSignKey,
		tokenIssuer:           cfg.TokenIssuer,
		accessTokenTTL:        cfg.AccessTokenTTL.Duration(),
		refreshTokenTTL:       cfg.RefreshTokenTTL.Duration(),
		bcryptCost:            cfg.BcryptCost,
		logger:                logger,
	}
}

// Register creates a new user account.
//
// It hashes the password with bcrypt, persists the account, provisions an
// empty preferences row and issues the first token pair.
//
// Returns the persisted user (with a server-assigned UserID) and tokens, or:
//   - ErrInvalidDataProvided if name, email or password is empty.
//   - store.ErrEmailAlreadyExists (wrapped) when the email is taken.
func (a *authService) Register(ctx context.Context, name, email, password string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if name == "" || email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid registration data provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if err := a.preferencesRepository.CreateEmpty(ctx, user.UserID); err != nil {
		log.Err(err).Int64("userID", user.UserID).Msg("provisioning preferences failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("provisioning preferences failed: %w", err)
	}

	pair, err := a.issueTokens(ctx, user.UserID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return user, pair, nil
}

// Login authenticates an existing user.
//
// The unknown-email and wrong-password cases both come back as
// ErrInvalidCredentials so a caller cannot tell which emails are
// registered.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid login data provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, models.TokenPair{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.VerifyPassword(user.PasswordHash, password) {
		log.Error().Int64("userID", user.UserID).Msg("wrong password")
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := a.issueTokens(ctx, user.UserID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return user, pair, nil
}

// Refresh rotates a refresh token: the presented value is checked against
// stored digests, revoked, and a brand-new pair is issued together with the
// owning user's record. A token that is unknown, already rotated, revoked
// or expired yields ErrInvalidRefreshToken.
func (a *authService) Refresh(ctx context.Context, refreshRaw string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if refreshRaw == "" {
		return models.User{}, models.TokenPair{}, ErrInvalidRefreshToken
	}

	stored, err := a.tokenRepository.FindUsableToken(ctx, utils.HashRefreshToken(refreshRaw))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, models.TokenPair{}, ErrInvalidRefreshToken
		}
		log.Err(err).Msg("refresh token lookup failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("refresh token lookup failed: %w", err)
	}

	user, err := a.userRepository.FindUserByID(ctx, stored.UserID)
	if err != nil {
		log.Err(err).Int64("userID", stored.UserID).Msg("user search by id failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if err := a.tokenRepository.RevokeByID(ctx, stored.ID); err != nil {
		log.Err(err).Int64("tokenID", stored.ID).Msg("refresh token revocation failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("refresh token revocation failed: %w", err)
	}

	pair, err := a.issueTokens(ctx, stored.UserID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return user, pair, nil
}

// Logout revokes the presented refresh token. Unknown or already revoked
// tokens revoke nothing and produce no error.
func (a *authService) Logout(ctx context.Context, refreshRaw string) error {
	log := logger.FromContext(ctx)

	if refreshRaw == "" {
		return nil
	}

	if err := a.tokenRepository.RevokeByHash(ctx, utils.HashRefreshToken(refreshRaw)); err != nil {
		log.Err(err).Msg("refresh token revocation failed")
		return fmt.Errorf("refresh token revocation failed: %w", err)
	}

	return nil
}

// VerifyAccess validates an access token string (signature, issuer, expiry)
// and returns the parsed token with its UserID claim.
func (a *authService) VerifyAccess(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("access token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// Profile returns the user's record with preferences embedded.
func (a *authService) Profile(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	prefs, err := a.preferencesRepository.GetPreferences(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("preferences lookup failed")
		return models.User{}, fmt.Errorf("preferences lookup failed: %w", err)
	}
	user.Preferences = &prefs

	return user, nil
}

// UpdateAvatar sets or clears the user's avatar URL.
func (a *authService) UpdateAvatar(ctx context.Context, userID int64, avatarURL *string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.UpdateAvatar(ctx, userID, avatarURL)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("avatar update failed")
		return models.User{}, fmt.Errorf("avatar update failed: %w", err)
	}

	return user, nil
}

// issueTokens mints a signed access token and an opaque refresh token for
// the user. Only the refresh token's SHA-256 digest is persisted.
func (a *authService) issueTokens(ctx context.Context, userID int64) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	access, err := utils.GenerateJWTToken(a.tokenIssuer, userID, a.accessTokenTTL, a.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("access token generation failed")
		return models.TokenPair{}, fmt.Errorf("access token generation failed: %w", err)
	}

	refreshRaw := uuid.NewString()
	expiresAt := time.Now().Add(a.refreshTokenTTL)
	if err := a.tokenRepository.StoreRefreshToken(ctx, userID, utils.HashRefreshToken(refreshRaw), expiresAt); err != nil {
		log.Err(err).Int64("userID", userID).Msg("refresh token storage failed")
		return models.TokenPair{}, fmt.Errorf("refresh token storage failed: %w", err)
	}

	return models.TokenPair{
		AccessToken: access.SignedString,
		RefreshRaw:  refreshRaw,
	}, nil
}
