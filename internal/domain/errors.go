package domain

import "errors"

// Sentinel errors shared by services and transport. The messages double as the
// reason strings returned to API clients.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateUsername = errors.New("username already taken")
)

// Authentication failures. All of them surface as 401 except ErrWrongUserType (406).
var (
	ErrNoToken           = errors.New("no token")
	ErrWrongTokenType    = errors.New("wrong token type")
	ErrNoUser            = errors.New("no user")
	ErrTokenExpired      = errors.New("token expired")
	ErrWrongCredentials  = errors.New("wrong credentials")
	ErrWrongPassword     = errors.New("wrong username or password")
	ErrWrongRefreshToken = errors.New("wrong refresh token")
	ErrWrongUserType     = errors.New("wrong user_type")
)

// IsUnauthorized reports whether err is one of the token or credential failures.
func IsUnauthorized(err error) bool {
	for _, target := range []error{
		ErrNoToken, ErrWrongTokenType, ErrNoUser, ErrTokenExpired,
		ErrWrongCredentials, ErrWrongPassword, ErrWrongRefreshToken,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
