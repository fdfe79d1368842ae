//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/lumina-api/internal/platform/postgres"
	"github.com/phrazzld/lumina-api/internal/redact"
	"github.com/stretchr/testify/require"
)

// Environment variables consulted for the database URL, in order.
const (
	EnvTestDatabaseURL = "LUMINA_TEST_DATABASE_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

// URL returns the first configured test database URL, or "".
func URL() string {
	for _, name := range []string{EnvTestDatabaseURL, EnvDatabaseURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Open connects to the test database, applies all migrations and closes the
// pool when the test ends. The test is skipped when no URL is configured.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	if url == "" {
		t.Skipf("%s not set; skipping database test", EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("test database unreachable at %s: %s", redact.String(url), redact.Error(err))
	}

	require.NoError(t, postgres.Migrate(context.Background(), db, nil, "up"), "failed to apply migrations")
	return db
}

// WithTx runs fn in a transaction that is always rolled back, so tests can
// write freely without affecting each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin test transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
