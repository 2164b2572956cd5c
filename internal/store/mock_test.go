package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/placeable"
)

func TestMockStore_TileRoundTrip(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()

	tile := placeable.NewTile(uuid.New(), 0, 0, 10, 10, 2)
	require.NoError(t, store.SaveTile(ctx, tile))

	loaded, err := store.GetTile(ctx, tile.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, tile.ID, loaded.ID)

	// Mutating the loaded copy must not affect the stored document.
	loaded.Elevation = 99
	again, err := store.GetTile(ctx, tile.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, again.Elevation)
}

func TestMockStore_MissingTile(t *testing.T) {
	store := NewMockStore()

	tile, err := store.GetTile(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, tile)
}

func TestMockStore_ListSceneTiles(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()

	sceneID := uuid.New()
	require.NoError(t, store.SaveTile(ctx, placeable.NewTile(sceneID, 0, 0, 10, 10, 0)))
	require.NoError(t, store.SaveTile(ctx, placeable.NewTile(sceneID, 10, 0, 10, 10, 0)))
	require.NoError(t, store.SaveTile(ctx, placeable.NewTile(uuid.New(), 0, 0, 10, 10, 0)))

	tiles, err := store.ListSceneTiles(ctx, sceneID)
	require.NoError(t, err)
	assert.Len(t, tiles, 2)
}

func TestMockStore_SettingsAndContexts(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()

	require.NoError(t, store.SaveSetting(ctx, "debug", true))
	value, ok, err := store.GetSetting(ctx, "debug")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, true, value)

	require.NoError(t, store.SetContextValue(ctx, "session", "round", 1))
	keys, err := store.ContextKeys(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []string{"round"}, keys)
}

func TestMockStore_PingError(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()

	assert.NoError(t, store.Ping(ctx))

	wantErr := errors.New("redis down")
	store.SetPingError(wantErr)
	assert.ErrorIs(t, store.Ping(ctx), wantErr)
}
