package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/moodbrew/cafe-discovery/internal/domain/entities"
	"github.com/moodbrew/cafe-discovery/internal/domain/providers"
)

// JWTProvider verifies HS256 session tokens issued by the identity platform.
type JWTProvider struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewJWTProvider creates a new JWT auth provider.
func NewJWTProvider(secret, issuer string) providers.AuthProvider {
	return &JWTProvider{
		secret: []byte(secret),
		issuer: issuer,
		leeway: 30 * time.Second,
	}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// VerifyToken returns the user a bearer token belongs to. Signature, expiry,
// and issuer mismatches all collapse to ErrInvalidToken so callers cannot
// distinguish why a token was rejected.
func (p *JWTProvider) VerifyToken(ctx context.Context, tokenString string) (*entities.User, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return p.secret, nil
	}, jwt.WithLeeway(p.leeway))

	if err != nil || !token.Valid {
		return nil, providers.ErrInvalidToken
	}

	if p.issuer != "" && claims.Issuer != p.issuer {
		return nil, providers.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, providers.ErrInvalidToken
	}

	return &entities.User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}
