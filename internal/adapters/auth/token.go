package auth

import (
	"fmt"
	"time"

	"eventdiscovery/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// jwtClaims carries the password digest so that a password change invalidates
// every token issued before it. Expiration is checked by the token service
// against expiration_time, not by the JWT library.
type jwtClaims struct {
	jwt.RegisteredClaims
	UserID         int64  `json:"user_id"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	ExpirationTime int64  `json:"expiration_time"`
}

type jwtCodec struct {
	secret []byte
}

// NewJWTCodec returns a TokenCodec that signs JWTs with HS256 using the given secret.
func NewJWTCodec(secret string) domain.TokenCodec {
	return &jwtCodec{secret: []byte(secret)}
}

func (c *jwtCodec) Sign(claims domain.TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  fmt.Sprint(claims.UserID),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID:         claims.UserID,
		Username:       claims.Username,
		Password:       claims.Password,
		ExpirationTime: claims.ExpirationTime,
	})
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Parse verifies the signature and decodes the claims. Any failure is reported
// as domain.ErrWrongTokenType.
func (c *jwtCodec) Parse(tokenString string) (*domain.TokenClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWrongTokenType, err)
	}
	if !token.Valid {
		return nil, domain.ErrWrongTokenType
	}
	return &domain.TokenClaims{
		UserID:         claims.UserID,
		Username:       claims.Username,
		Password:       claims.Password,
		ExpirationTime: claims.ExpirationTime,
	}, nil
}
