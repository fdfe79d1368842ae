package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

var fixedTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	lifetime := 60 * time.Minute
	userID := uuid.New()
	svc := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime))

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	lifetime := 60 * time.Minute
	userID := uuid.New()
	issuer := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime))
	token, err := issuer.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	wrongType, err := issuer.sign(context.Background(), userID, "refresh", fixedTime.Add(lifetime))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		now     time.Time
		wantErr error
	}{
		{"valid", token, testSecret, fixedTime.Add(time.Minute), nil},
		{"within clock skew after expiry", token, testSecret, fixedTime.Add(lifetime + time.Minute), nil},
		{"expired", token, testSecret, fixedTime.Add(lifetime + 5*time.Minute), ErrExpiredToken},
		{"issued in the future", token, testSecret, fixedTime.Add(-10 * time.Minute), ErrTokenNotYetValid},
		{"wrong secret", token, "wrong-secret-that-is-long-enough-for-testing", fixedTime, ErrInvalidToken},
		{"malformed", "not.a.token", testSecret, fixedTime, ErrInvalidToken},
		{"empty", "", testSecret, fixedTime, ErrInvalidToken},
		{"wrong token type", wrongType, testSecret, fixedTime, ErrWrongTokenType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			validator := newHMACJWTService(tc.secret, lifetime, fixedClock(tc.now))
			claims, err := validator.ValidateToken(context.Background(), tc.token)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, userID, claims.UserID)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, claims)
		})
	}
}
