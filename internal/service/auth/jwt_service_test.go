package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-key-that-is-32-chars!!!",
		TokenLifetimeMinutes:        30,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func newTestService(t *testing.T) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"

	svc, err := NewJWTService(cfg)
	require.Error(t, err)
	assert.Nil(t, svc)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID, "token should carry a jti")
	assert.WithinDuration(t,
		time.Now().Add(30*time.Minute), claims.ExpiresAt, time.Minute)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestValidateTokenRejectsWrongType(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)
	userID := uuid.New()

	refreshToken, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)
	accessToken, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, refreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = svc.ValidateRefreshToken(ctx, accessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)
	userID := uuid.New()

	// Issue a token in the past, beyond lifetime plus clock skew.
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)
	userID := uuid.New()

	issuedAt := time.Now().Add(-8 * 24 * time.Hour)
	svc.timeFunc = func() time.Time { return issuedAt }
	token, err := svc.GenerateRefreshToken(ctx, userID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateRefreshToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredRefreshToken)
}

func TestValidateTokenWithinClockSkew(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)
	userID := uuid.New()

	// Issue a token one minute in the future; within the 2-minute leeway
	// its nbf claim must not reject it.
	svc.timeFunc = func() time.Time { return time.Now().Add(time.Minute) }
	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateToken(ctx, token)
	assert.NoError(t, err)
}

func TestValidateTokenMalformed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIifQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)

			_, err = svc.ValidateRefreshToken(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidRefreshToken)
		})
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "another-secret-key-that-is-32-ch!!!"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	_, err = other.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenLifetime(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	assert.Equal(t, 30*time.Minute, svc.AccessTokenLifetime())
}
