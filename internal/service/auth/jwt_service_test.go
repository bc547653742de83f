package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mhoudret/taskdeck-api/internal/config"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

func newTestService(t *testing.T) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "tooshort",
		TokenLifetimeMinutes: 60,
	})
	assert.Error(t, err, "secrets shorter than 32 characters must be rejected")
}

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	userID := primitive.NewObjectID()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.Hex(), claims.Subject)
	assert.NotEmpty(t, claims.ID, "each token should carry a unique jti")
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateTokenExpired(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	userID := primitive.NewObjectID()

	issuedAt := time.Now().Add(-24 * time.Hour)
	svc.timeFunc = func() time.Time { return issuedAt }

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	// Validate well past expiry plus clock skew
	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWithinClockSkew(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	userID := primitive.NewObjectID()

	now := time.Now()
	svc.timeFunc = func() time.Time { return now }

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	// One minute past expiry is inside the two-minute skew allowance
	svc.timeFunc = func() time.Time { return now.Add(61 * time.Minute) }
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestValidateTokenWrongKey(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	userID := primitive.NewObjectID()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "anothersecretkeythatis32charslong!!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenMalformed(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
