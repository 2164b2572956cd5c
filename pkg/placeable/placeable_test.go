package placeable

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/geometry"
)

const testNamespace = "over-my-head"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// countingSaver records how many times a tile was persisted.
type countingSaver struct {
	saves int
	last  *Tile
}

func (s *countingSaver) SaveTile(_ context.Context, tile *Tile) error {
	s.saves++
	s.last = tile
	return nil
}

func TestTile_Geometry(t *testing.T) {
	tile := NewTile(uuid.New(), 100, 200, 50, 80, 3)

	assert.Equal(t, geometry.Point{X: 125, Y: 240}, tile.Center())
	assert.Equal(t, geometry.Rect{
		BottomLeft: geometry.Point{X: 100, Y: 200},
		TopRight:   geometry.Point{X: 150, Y: 280},
	}, tile.Bounds())
}

func TestTile_FlagRoundTrip(t *testing.T) {
	tile := NewTile(uuid.New(), 0, 0, 10, 10, 0)
	ctx := context.Background()

	_, ok := tile.GetFlag(testNamespace, "alsoFade")
	assert.False(t, ok)

	require.NoError(t, tile.SetFlag(ctx, testNamespace, "alsoFade", true))

	value, ok := tile.GetFlag(testNamespace, "alsoFade")
	require.True(t, ok)
	assert.Equal(t, true, value)

	// A different namespace does not see the flag.
	_, ok = tile.GetFlag("other-module", "alsoFade")
	assert.False(t, ok)

	require.NoError(t, tile.UnsetFlag(ctx, testNamespace, "alsoFade"))
	_, ok = tile.GetFlag(testNamespace, "alsoFade")
	assert.False(t, ok)
}

func TestTile_FlagWritesPersistThroughSaver(t *testing.T) {
	tile := NewTile(uuid.New(), 0, 0, 10, 10, 0)
	saver := &countingSaver{}
	tile.AttachSaver(saver)
	ctx := context.Background()

	require.NoError(t, tile.SetFlag(ctx, testNamespace, "alsoFade", true))
	assert.Equal(t, 1, saver.saves)
	assert.Same(t, tile, saver.last)

	require.NoError(t, tile.UnsetFlag(ctx, testNamespace, "alsoFade"))
	assert.Equal(t, 2, saver.saves)

	// Unsetting an absent flag does not persist.
	require.NoError(t, tile.UnsetFlag(ctx, testNamespace, "alsoFade"))
	assert.Equal(t, 2, saver.saves)
}

func TestFlags_AlsoFade(t *testing.T) {
	flags := NewFlags(testNamespace, testLogger())
	tile := NewTile(uuid.New(), 0, 0, 10, 10, 0)
	ctx := context.Background()

	assert.False(t, flags.AlsoFade(tile))

	require.NoError(t, flags.SetAlsoFade(ctx, tile, true))
	assert.True(t, flags.AlsoFade(tile))

	// Corrupt value degrades to false.
	require.NoError(t, tile.SetFlag(ctx, testNamespace, FlagAlsoFade, "yes"))
	assert.False(t, flags.AlsoFade(tile))
}

func TestFlags_Overrides(t *testing.T) {
	flags := NewFlags(testNamespace, testLogger())
	tile := NewTile(uuid.New(), 0, 0, 10, 10, 0)
	ctx := context.Background()

	assert.Empty(t, flags.Overrides(tile))

	want := map[string]any{"fadeOpacity": 0.5}
	require.NoError(t, flags.SetOverrides(ctx, tile, want))
	assert.Equal(t, want, flags.Overrides(tile))

	// A nil map clears the flag.
	require.NoError(t, flags.SetOverrides(ctx, tile, nil))
	assert.Empty(t, flags.Overrides(tile))
	_, ok := tile.GetFlag(testNamespace, FlagOverrides)
	assert.False(t, ok)
}

func TestFlags_NilDocumentIsSafe(t *testing.T) {
	flags := NewFlags(testNamespace, testLogger())
	ctx := context.Background()

	assert.False(t, flags.AlsoFade(nil))
	assert.Empty(t, flags.Overrides(nil))
	assert.NoError(t, flags.SetAlsoFade(ctx, nil, true))
	assert.NoError(t, flags.SetOverrides(ctx, nil, map[string]any{"a": 1}))
}
