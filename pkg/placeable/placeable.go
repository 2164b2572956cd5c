// Package placeable models scene placeables and the namespaced flag storage
// the host persists on their documents.
package placeable

import (
	"context"

	"github.com/google/uuid"

	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/geometry"
)

// Document is the narrow contract a host document must satisfy for flag
// storage. Only these three methods are required of host objects.
type Document interface {
	GetFlag(namespace, key string) (any, bool)
	SetFlag(ctx context.Context, namespace, key string, value any) error
	UnsetFlag(ctx context.Context, namespace, key string) error
}

// Saver persists a tile after its flags change.
type Saver interface {
	SaveTile(ctx context.Context, tile *Tile) error
}

// Tile is a placeable tile document. X and Y locate the bottom-left corner
// in scene-pixel space.
type Tile struct {
	ID        uuid.UUID                 `json:"id"`
	SceneID   uuid.UUID                 `json:"scene_id"`
	X         float64                   `json:"x"`
	Y         float64                   `json:"y"`
	Width     float64                   `json:"width"`
	Height    float64                   `json:"height"`
	Elevation float64                   `json:"elevation"`
	Flags     map[string]map[string]any `json:"flags,omitempty"`

	saver Saver
}

// Ensure Tile implements the host document contract
var _ Document = (*Tile)(nil)

// NewTile creates a tile on the given scene.
func NewTile(sceneID uuid.UUID, x, y, width, height, elevation float64) *Tile {
	return &Tile{
		ID:        uuid.New(),
		SceneID:   sceneID,
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		Elevation: elevation,
	}
}

// AttachSaver makes subsequent flag writes persist through s.
func (t *Tile) AttachSaver(s Saver) {
	t.saver = s
}

// Center returns the tile's visual center point.
func (t *Tile) Center() geometry.Point {
	return geometry.Point{X: t.X + t.Width/2, Y: t.Y + t.Height/2}
}

// Bounds returns the tile's footprint rectangle.
func (t *Tile) Bounds() geometry.Rect {
	return geometry.Rect{
		BottomLeft: geometry.Point{X: t.X, Y: t.Y},
		TopRight:   geometry.Point{X: t.X + t.Width, Y: t.Y + t.Height},
	}
}

// GetFlag reads a namespaced flag from the tile document.
func (t *Tile) GetFlag(namespace, key string) (any, bool) {
	ns, ok := t.Flags[namespace]
	if !ok {
		return nil, false
	}
	value, ok := ns[key]
	return value, ok
}

// SetFlag writes a namespaced flag and persists the tile if a saver is
// attached.
func (t *Tile) SetFlag(ctx context.Context, namespace, key string, value any) error {
	if t.Flags == nil {
		t.Flags = make(map[string]map[string]any)
	}
	if t.Flags[namespace] == nil {
		t.Flags[namespace] = make(map[string]any)
	}
	t.Flags[namespace][key] = value

	if t.saver == nil {
		return nil
	}
	return t.saver.SaveTile(ctx, t)
}

// UnsetFlag removes a namespaced flag and persists the tile if a saver is
// attached. Removing an absent flag is a no-op.
func (t *Tile) UnsetFlag(ctx context.Context, namespace, key string) error {
	ns, ok := t.Flags[namespace]
	if !ok {
		return nil
	}
	if _, ok := ns[key]; !ok {
		return nil
	}
	delete(ns, key)
	if len(ns) == 0 {
		delete(t.Flags, namespace)
	}

	if t.saver == nil {
		return nil
	}
	return t.saver.SaveTile(ctx, t)
}
