package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "postgres", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrateAndReset(t *testing.T) {
	gdb, err := Open(context.Background(), Options{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "db.sqlite")})
	require.NoError(t, err)

	require.NoError(t, Migrate(gdb))
	for _, m := range Models {
		assert.True(t, gdb.Migrator().HasTable(m))
	}

	require.NoError(t, Reset(gdb))
	for _, m := range Models {
		assert.False(t, gdb.Migrator().HasTable(m))
	}
}

func TestBackoff(t *testing.T) {
	b := backoff{maxRetries: 5, delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}

	assert.Equal(t, 500*time.Millisecond, b.nextDelay(0))
	assert.Equal(t, time.Second, b.nextDelay(1))
	assert.Equal(t, 4*time.Second, b.nextDelay(3))
	assert.Equal(t, 5*time.Second, b.nextDelay(4))
}
