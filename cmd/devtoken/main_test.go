package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/config"
	"github.com/phrazzld/lumina-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	cfg := config.AuthConfig{
		JWTSecret:            "test-secret-that-is-long-enough-for-testing",
		TokenLifetimeMinutes: 60,
	}
	userID := uuid.New()

	var out bytes.Buffer
	require.NoError(t, issue(cfg, userID, &out))

	svc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(context.Background(), strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestRunRejectsBadUser(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-user", "not-a-uuid"}, &out)
	assert.ErrorContains(t, err, "invalid -user")
	assert.Empty(t, out.String())
}
