package auth

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"eventdiscovery/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

// DefaultIterations is the PBKDF2 work factor used by the API server.
const DefaultIterations = 100_000

type pbkdf2Hasher struct {
	pepper     []byte
	iterations int
}

// NewPBKDF2Hasher returns a PasswordHasher deriving SHA-512 digests with PBKDF2.
// The per-user salt is combined with the server-wide pepper, so a leaked salt and
// digest cannot be checked against a dictionary without the server secret.
func NewPBKDF2Hasher(pepper string, iterations int) domain.PasswordHasher {
	if iterations < 1 {
		iterations = DefaultIterations
	}
	return &pbkdf2Hasher{pepper: []byte(pepper), iterations: iterations}
}

// GenerateSalt returns 32 hex characters of randomness.
func (h *pbkdf2Hasher) GenerateSalt() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

func (h *pbkdf2Hasher) Hash(password, salt string) string {
	key := append([]byte(salt), h.pepper...)
	digest := pbkdf2.Key([]byte(password), key, h.iterations, sha512.Size, sha512.New)
	return hex.EncodeToString(digest)
}

func (h *pbkdf2Hasher) Compare(digest, salt, password string) bool {
	return subtle.ConstantTimeCompare([]byte(digest), []byte(h.Hash(password, salt))) == 1
}
