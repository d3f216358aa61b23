package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/pantry-service/internal/domain/model"
)

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks password against the household's stored hash.
// upgrade is true when the hash uses the legacy unsalted SHA-256 scheme and
// should be replaced by a bcrypt hash after a successful login.
func VerifyPassword(h *model.Household, password string) (ok, upgrade bool) {
	switch h.PasswordScheme {
	case model.SchemeLegacySHA256:
		sum := sha256.Sum256([]byte(password))
		digest := hex.EncodeToString(sum[:])
		ok = subtle.ConstantTimeCompare([]byte(digest), []byte(h.Password)) == 1
		return ok, ok
	default:
		return bcrypt.CompareHashAndPassword([]byte(h.Password), []byte(password)) == nil, false
	}
}
