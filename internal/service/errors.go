package service

import "errors"

// Sentinel errors returned by the service layer. The HTTP layer maps these
// to status codes; callers should match with [errors.Is]. Storage-level
// sentinels (store.ErrNotFound, store.ErrEmailAlreadyExists) are wrapped,
// not translated, so they stay matchable through the whole call chain.
var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields or carries values outside their allowed range.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on login when the email is unknown
	// or the password does not match. The two cases are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken is returned when a presented refresh token is
	// unknown, already used, revoked or expired.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrTokenIsExpiredOrInvalid is returned when an access token fails
	// signature, issuer or expiry checks.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrForbidden is returned when an authenticated user addresses a
	// resource owned by somebody else.
	ErrForbidden = errors.New("resource belongs to another user")
)
