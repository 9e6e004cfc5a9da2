package auth

import (
	"testing"
	"time"

	"eventdiscovery/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTCodec_SignAndParse(t *testing.T) {
	secret := "test-secret"
	codec := NewJWTCodec(secret)
	exp := time.Now().Add(time.Hour).Unix()

	token, err := codec.Sign(domain.TokenClaims{UserID: 42, Username: "alice", Password: "digest", ExpirationTime: exp})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The payload is a plain HS256 JWT.
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, "HS256", parsed.Method.Alg())

	claims, err := codec.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "digest", claims.Password)
	assert.Equal(t, exp, claims.ExpirationTime)
}

func TestJWTCodec_Parse_expiredPayloadStillParses(t *testing.T) {
	codec := NewJWTCodec("s")
	token, err := codec.Sign(domain.TokenClaims{UserID: 1, ExpirationTime: time.Now().Add(-time.Hour).Unix()})
	require.NoError(t, err)

	claims, err := codec.Parse(token)
	require.NoError(t, err, "expiration is enforced by the token service")
	assert.Equal(t, int64(1), claims.UserID)
}

func TestJWTCodec_Parse_errors(t *testing.T) {
	codec := NewJWTCodec("right")
	other, err := NewJWTCodec("wrong").Sign(domain.TokenClaims{UserID: 1})
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{UserID: 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", other},
		{"alg none", unsigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Parse(tt.token)
			require.ErrorIs(t, err, domain.ErrWrongTokenType)
		})
	}
}
