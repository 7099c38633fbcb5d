package postgresql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeyaddeeb/zeyaddeeb/internal/storage/postgresql"
	"github.com/zeyaddeeb/zeyaddeeb/internal/storage/postgresql/pgtest"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	pool := pgtest.SetupTestDB(t)

	version, err := postgresql.Version(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, 3, version)

	require.NoError(t, postgresql.Migrate(ctx, pool))

	again, err := postgresql.Version(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, version, again)

	var tables int
	err = pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_name IN ('users', 'posts', 'collection_items')
	`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 3, tables)
}
