package domain

import "errors"

// Authentication and authorization.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserInactive       = errors.New("user inactive")
	ErrForbidden          = errors.New("access forbidden")
	ErrRateLimited        = errors.New("too many attempts")
)

// Session token verification failures. Signature is always checked before any
// claim is trusted, so a tampered token is ErrTokenSignatureInvalid even when
// it also happens to be expired.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

// Profiles, checkups and identity payloads.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrCheckupNotFound = errors.New("checkup not found")
	ErrInvalidIdentity = errors.New("invalid identity payload")
	ErrInvalidInput    = errors.New("invalid input")
)
