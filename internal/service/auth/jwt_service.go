package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JWTService defines operations for managing session tokens.
type JWTService interface {
	// GenerateToken creates a signed session token for the given user.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID primitive.ObjectID) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken for expired tokens and
	// ErrInvalidToken for malformed tokens or bad signatures.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a session token.
type Claims struct {
	// UserID is the identifier of the user the token was issued for.
	UserID primitive.ObjectID

	// Standard registered JWT claims
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
