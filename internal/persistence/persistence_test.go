package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/travel-support-desk/internal/config"
)

func TestNewPostgres_NoDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, pg.Configured())
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}

func TestRunMigrations_NoPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir(migrationsDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestNewRedis(t *testing.T) {
	disabled := NewRedis(config.RedisConfig{Enabled: false}, zap.NewNop())
	assert.False(t, disabled.Configured())
	assert.Error(t, disabled.Ping(context.Background()))
	disabled.Close()

	mr := miniredis.RunT(t)
	enabled := NewRedis(config.RedisConfig{Enabled: true, Addr: mr.Addr()}, zap.NewNop())
	defer enabled.Close()
	assert.True(t, enabled.Configured())
	assert.NoError(t, enabled.Ping(context.Background()))
}
