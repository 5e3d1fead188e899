package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masareef/internal/config"
)

func TestCreateStoreMemory(t *testing.T) {
	f := NewFactory(nil)

	res, err := f.CreateStore(Config{Type: MemoryBackend})
	require.NoError(t, err)
	assert.True(t, res.Store.Available(context.Background()))
	assert.Nil(t, res.Cleanup)
}

func TestCreateStoreFlatFile(t *testing.T) {
	f := NewFactory(nil)

	res, err := f.CreateStore(Config{Type: FlatFileBackend, FlatFileDir: t.TempDir()})
	require.NoError(t, err)
	assert.True(t, res.Store.Available(context.Background()))
}

func TestCreateStoreSQLite(t *testing.T) {
	f := NewFactory(nil)

	res, err := f.CreateStore(Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "ledger.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { res.Cleanup() })
	assert.True(t, res.Store.Available(context.Background()))
}

func TestCreateStoreRejectsInvalidConfig(t *testing.T) {
	f := NewFactory(nil)

	_, err := f.CreateStore(Config{Type: "postgres"})
	assert.Error(t, err)

	_, err = f.CreateStore(Config{Type: SQLiteBackend})
	assert.Error(t, err)
}

func TestFromAppConfigSlots(t *testing.T) {
	appCfg := &config.Config{
		PrimaryBackend:  "sqlite",
		FallbackBackend: "flatfile",
		SQLiteDBPath:    "./data/ledger.db",
		FlatFileDir:     "./data/ledger",
	}

	cases := []struct {
		slot string
		want Type
	}{
		{PrimarySlot, SQLiteBackend},
		{FallbackSlot, FlatFileBackend},
	}
	for _, tc := range cases {
		got, err := FromAppConfig(appCfg, tc.slot)
		require.NoError(t, err, "slot %s", tc.slot)
		assert.Equal(t, tc.want, got.Type)
		assert.Equal(t, appCfg.SQLiteDBPath, got.SQLiteDBPath)
		assert.Equal(t, appCfg.FlatFileDir, got.FlatFileDir)
	}
}

func TestFromAppConfigDefaults(t *testing.T) {
	// The out-of-the-box config must map cleanly onto both slots.
	appCfg := config.Load()
	require.NoError(t, appCfg.Validate())

	for _, slot := range []string{PrimarySlot, FallbackSlot} {
		cfg, err := FromAppConfig(appCfg, slot)
		require.NoError(t, err, "slot %s", slot)
		require.NoError(t, cfg.Validate())
	}
}

func TestFromAppConfigRejectsBadInput(t *testing.T) {
	_, err := FromAppConfig(nil, PrimarySlot)
	assert.Error(t, err)

	_, err = FromAppConfig(config.Load(), "tertiary")
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{PrimaryBackend: "postgres"}, PrimarySlot)
	assert.Error(t, err)
}

func TestCreateStoreFromSlotConfig(t *testing.T) {
	f := NewFactory(nil)
	appCfg := &config.Config{
		PrimaryBackend:  "memory",
		FallbackBackend: "flatfile",
		FlatFileDir:     t.TempDir(),
	}

	for _, slot := range []string{PrimarySlot, FallbackSlot} {
		cfg, err := FromAppConfig(appCfg, slot)
		require.NoError(t, err, "slot %s", slot)

		res, err := f.CreateStore(cfg)
		require.NoError(t, err, "slot %s", slot)
		assert.True(t, res.Store.Available(context.Background()))
	}
}
