package domain

import (
	"context"
	"time"
)

// Account types.
const (
	UserTypeUser  = "user"
	UserTypeAdmin = "admin"
)

// User represents a registered account. Salt and Password (the digest) never leave the server.
// swagger:model User
type User struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	Salt      string    `json:"-"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser returns a new User of the default type. ID is set by the repository on create.
func NewUser(username, salt, digest string, createdAt, updatedAt time.Time) *User {
	return &User{
		Type:      UserTypeUser,
		Username:  username,
		Salt:      salt,
		Password:  digest,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PasswordHasher derives password digests from a password, a per-user salt and a server secret.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(password, salt string) string
	Compare(digest, salt, password string) bool
}

// TokenClaims is the payload of an access or refresh token.
type TokenClaims struct {
	UserID         int64
	Username       string
	Password       string
	ExpirationTime int64
}

// TokenCodec signs and parses tokens. Parse only checks the signature and format.
type TokenCodec interface {
	Sign(claims TokenClaims) (string, error)
	Parse(token string) (*TokenClaims, error)
}

// TokenVerifier resolves a token to the user it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// TokenPair is returned on login, refresh and password change.
// swagger:model TokenPair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdatePassword(ctx context.Context, id int64, salt, digest string) error
}

// AuthService defines registration, login and token handling.
type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, username, password string) (*User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, user *User, oldPassword, newPassword string) (*TokenPair, error)
}
