package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/config"
	"github.com/phrazzld/lumina-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "no flags"},
		{name: "migrate up", args: []string{"-migrate", "up"}, want: "up"},
		{name: "migrate status", args: []string{"-migrate=status"}, want: "status"},
		{name: "unknown command", args: []string{"-migrate", "sideways"}, wantErr: true},
		{name: "unknown flag", args: []string{"-port", "80"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			opts, err := parseFlags(tc.args)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, opts.migrate)
		})
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Database: config.DatabaseConfig{URL: "postgres://localhost/lumina"},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-that-is-long-enough-for-testing",
			TokenLifetimeMinutes: 60,
		},
		LLM:          config.LLMConfig{ModelName: "gemini-2.5-flash"},
		Conversation: config.ConversationConfig{PersonaWindow: 5},
	}
}

func newTestApplication(t *testing.T) *application {
	t.Helper()
	log, _ := logger.GetTestLogger(t)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := newApplication(context.Background(), testConfig(), log, db)
	require.NoError(t, err)
	return app
}

func TestNewApplicationOffline(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	assert.False(t, app.assistant.Online())
	assert.NotNil(t, app.messagingService)
	assert.NotNil(t, app.studyPlanService)
}

func TestNewApplicationRejectsWeakSecret(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	cfg := testConfig()
	cfg.Auth.JWTSecret = "short"

	_, err := newApplication(context.Background(), cfg, log, nil)
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	t.Run("health is public", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"assistant":"offline"`)
	})

	t.Run("api requires a token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tutor/greeting", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("issued token is accepted", func(t *testing.T) {
		token, err := app.jwtService.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/tutor/greeting?language=en", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["reply"])
		assert.Equal(t, false, body["online"])
	})
}
