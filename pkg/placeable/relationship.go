package placeable

import (
	"log/slog"

	"github.com/Xain3/foundryvtt-over-my-head-sub003/pkg/geometry"
)

// PositionProvider returns the comparison position for an entity in the
// requested use mode, or nil when the entity has no usable position.
type PositionProvider func(entity any, mode geometry.UseMode) geometry.Position

// ElevationProvider returns the elevation for an entity; ok is false when
// the entity has no elevation.
type ElevationProvider func(entity any) (float64, bool)

// TilePosition is the default position provider. It understands *Tile and
// returns nil for anything else.
func TilePosition(entity any, mode geometry.UseMode) geometry.Position {
	t, ok := entity.(*Tile)
	if !ok || t == nil {
		return nil
	}
	switch mode {
	case geometry.UseCenter:
		return t.Center()
	case geometry.UseRectangle:
		return t.Bounds()
	}
	return nil
}

// TileElevation is the default elevation provider for *Tile entities.
func TileElevation(entity any) (float64, bool) {
	t, ok := entity.(*Tile)
	if !ok || t == nil {
		return 0, false
	}
	return t.Elevation, true
}

// Relationship answers under/over queries about pairs of placeables by
// combining the injected position and elevation providers with the
// geometry checker. Every failure path degrades to a warning and false.
type Relationship struct {
	checker    *geometry.Checker
	positions  PositionProvider
	elevations ElevationProvider
	logger     *slog.Logger
}

// NewRelationship creates a relationship facade. Nil providers fall back to
// the tile defaults.
func NewRelationship(positions PositionProvider, elevations ElevationProvider, logger *slog.Logger) *Relationship {
	if logger == nil {
		logger = slog.Default()
	}
	if positions == nil {
		positions = TilePosition
	}
	if elevations == nil {
		elevations = TileElevation
	}
	return &Relationship{
		checker:    geometry.NewChecker(logger),
		positions:  positions,
		elevations: elevations,
		logger:     logger,
	}
}

// IsUnder reports whether target sits under ref. Empty use modes default to
// comparing the target's center against the reference's footprint.
func (r *Relationship) IsUnder(target, ref any, targetMode, refMode geometry.UseMode) bool {
	return r.related(target, ref, targetMode, refMode, geometry.Under)
}

// IsOver reports whether target sits over ref, with the same defaults as
// IsUnder.
func (r *Relationship) IsOver(target, ref any, targetMode, refMode geometry.UseMode) bool {
	return r.related(target, ref, targetMode, refMode, geometry.Over)
}

func (r *Relationship) related(target, ref any, targetMode, refMode geometry.UseMode, check geometry.CheckType) bool {
	if targetMode == "" {
		targetMode = geometry.UseCenter
	}
	if refMode == "" {
		refMode = geometry.UseRectangle
	}

	if target == nil || ref == nil {
		r.logger.Warn("Relationship check with nil entity", "check", check)
		return false
	}

	targetPos := r.positions(target, targetMode)
	if targetPos == nil {
		r.logger.Warn("No position for target entity", "mode", targetMode)
		return false
	}
	refPos := r.positions(ref, refMode)
	if refPos == nil {
		r.logger.Warn("No position for reference entity", "mode", refMode)
		return false
	}

	targetElev, ok := r.elevations(target)
	if !ok {
		r.logger.Warn("No elevation for target entity")
		return false
	}
	refElev, ok := r.elevations(ref)
	if !ok {
		r.logger.Warn("No elevation for reference entity")
		return false
	}

	return r.checker.Check(targetPos, targetElev, refPos, refElev, targetMode, refMode, check)
}
