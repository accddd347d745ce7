package postgresql_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cmlabs-hris/worktime-stats/internal/pkg/database"
	"github.com/cmlabs-hris/worktime-stats/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

var (
	testDBOnce sync.Once
	testDB     *database.DB
	testDBErr  error
)

// openTestDB connects to TEST_DATABASE_URL and applies the schema once.
// Tests are skipped when no database is configured.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		ctx := context.Background()
		testDB, testDBErr = database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
		if testDBErr != nil {
			return
		}

		schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "000001_monthly_stats.up.sql"))
		if err != nil {
			testDBErr = err
			return
		}
		_, testDBErr = testDB.Exec(ctx, string(schema))
	})
	require.NoError(t, testDBErr)

	return testDB
}

// txContext opens a transaction that is rolled back when the test ends, and
// returns a context that routes repository calls through it.
func txContext(t *testing.T, db *database.DB) context.Context {
	t.Helper()

	ctx := context.Background()
	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return postgresql.ContextWithTx(ctx, tx)
}
