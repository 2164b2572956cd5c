package placeable

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/geometry"
)

func TestRelationship_IsUnderDefaults(t *testing.T) {
	rel := NewRelationship(nil, nil, testLogger())
	sceneID := uuid.New()

	token := NewTile(sceneID, 40, 40, 20, 20, 0) // center at (50, 50)
	roof := NewTile(sceneID, 0, 0, 100, 100, 10)

	// Default modes: target center against reference footprint.
	assert.True(t, rel.IsUnder(token, roof, "", ""))
	assert.False(t, rel.IsOver(token, roof, "", ""))
	assert.True(t, rel.IsOver(roof, token, geometry.UseRectangle, geometry.UseCenter))
}

func TestRelationship_ExplicitModes(t *testing.T) {
	rel := NewRelationship(nil, nil, testLogger())
	sceneID := uuid.New()

	lower := NewTile(sceneID, 0, 0, 10, 10, 1)
	upper := NewTile(sceneID, 5, 5, 10, 10, 2)

	assert.True(t, rel.IsUnder(lower, upper, geometry.UseRectangle, geometry.UseRectangle))
	assert.True(t, rel.IsOver(upper, lower, geometry.UseRectangle, geometry.UseRectangle))

	// Edge-touching footprints never relate.
	adjacent := NewTile(sceneID, 10, 0, 10, 10, 2)
	assert.False(t, rel.IsUnder(lower, adjacent, geometry.UseRectangle, geometry.UseRectangle))
}

func TestRelationship_EqualElevationFails(t *testing.T) {
	rel := NewRelationship(nil, nil, testLogger())
	sceneID := uuid.New()

	a := NewTile(sceneID, 40, 40, 20, 20, 5)
	b := NewTile(sceneID, 0, 0, 100, 100, 5)

	assert.False(t, rel.IsUnder(a, b, "", ""))
	assert.False(t, rel.IsOver(a, b, "", ""))
}

func TestRelationship_NilEntity(t *testing.T) {
	rel := NewRelationship(nil, nil, testLogger())
	tile := NewTile(uuid.New(), 0, 0, 10, 10, 0)

	assert.False(t, rel.IsUnder(nil, tile, "", ""))
	assert.False(t, rel.IsUnder(tile, nil, "", ""))
}

func TestRelationship_UnknownEntityType(t *testing.T) {
	rel := NewRelationship(nil, nil, testLogger())
	tile := NewTile(uuid.New(), 0, 0, 100, 100, 10)

	// The default providers only understand tiles.
	assert.False(t, rel.IsUnder("not a tile", tile, "", ""))
}

func TestRelationship_CustomProviders(t *testing.T) {
	type token struct {
		pos  geometry.Point
		elev float64
	}

	positions := func(entity any, mode geometry.UseMode) geometry.Position {
		switch e := entity.(type) {
		case *token:
			return e.pos
		default:
			return TilePosition(entity, mode)
		}
	}
	elevations := func(entity any) (float64, bool) {
		switch e := entity.(type) {
		case *token:
			return e.elev, true
		default:
			return TileElevation(entity)
		}
	}

	rel := NewRelationship(positions, elevations, testLogger())
	roof := NewTile(uuid.New(), 0, 0, 100, 100, 10)
	tok := &token{pos: geometry.Point{X: 50, Y: 50}, elev: 0}

	assert.True(t, rel.IsUnder(tok, roof, geometry.UseCenter, geometry.UseRectangle))
	assert.False(t, rel.IsOver(tok, roof, geometry.UseCenter, geometry.UseRectangle))
}
