package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/tlcanalytics/backend/internal/domain"
)

// Credentials verifies the single configured API user.
type Credentials struct {
	username     string
	passwordHash []byte
}

// NewCredentials hashes the configured password at startup so the plaintext
// is not retained.
func NewCredentials(username, password string) (*Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Credentials{username: username, passwordHash: hash}, nil
}

// Verify checks a login attempt and returns the principal on success.
func (c *Credentials) Verify(username, password string) (domain.User, bool) {
	if username != c.username {
		return domain.User{}, false
	}
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
		return domain.User{}, false
	}
	return domain.User{Username: c.username}, true
}
