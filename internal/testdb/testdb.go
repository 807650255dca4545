// Package testdb provides utilities for database integration tests. It
// connects to the database named by the environment, applies the
// embedded migrations, and resets table state between tests.
//
// Integration tests are skipped unless a database URL is configured,
// so the default `go test ./...` run stays hermetic.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/omniora/omniora-api/migrations"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// IsIntegrationTestEnvironment returns true if a test database URL is
// configured, indicating that integration tests can run.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the database URL for tests. It checks
// DATABASE_URL and OMNIORA_TEST_DB_URL in that order, returning the
// first non-empty value.
func GetTestDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("OMNIORA_TEST_DB_URL")
}

// Connect opens a connection to the test database, applies the
// embedded migrations, and registers cleanup to close the connection
// when the test finishes. The test is skipped if no database URL is
// configured.
func Connect(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("no test database configured, set DATABASE_URL to run integration tests")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database connection")
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Logf("failed to close test database connection: %v", closeErr)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	applySchema(t, db)
	return db
}

// ResetTables truncates all application tables so each test starts
// from a clean slate.
func ResetTables(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	for _, table := range []string{"profiles", "concepts"} {
		_, err := db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

// applySchema runs the embedded goose migrations against the test
// database.
func applySchema(t *testing.T, db *sql.DB) {
	t.Helper()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&testGooseLogger{t: t})

	require.NoError(t, goose.SetDialect("postgres"), "failed to set migration dialect")
	require.NoError(t, goose.Up(db, "."), "failed to apply migrations")
}

// testGooseLogger routes goose output through the test log.
type testGooseLogger struct {
	t *testing.T
}

func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatalf(format, v...)
}

func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Logf(format, v...)
}
