package providers

import (
	"context"
	"errors"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
)

// ErrInvalidToken is returned for missing, expired, or malformed session tokens.
var ErrInvalidToken = errors.New("invalid session token")

// AuthProvider verifies session tokens issued by the identity platform.
type AuthProvider interface {
	// VerifyToken returns the user a bearer token belongs to
	VerifyToken(ctx context.Context, token string) (*entities.User, error)
}
