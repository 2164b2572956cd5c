package geometry

import "log/slog"

// Checker evaluates under/over relationships between placeable positions.
// Every failure path degrades to a warning log and a false result; the
// checker never panics and never mutates its inputs.
type Checker struct {
	logger *slog.Logger
}

// NewChecker creates a checker that reports invalid input on the given logger.
func NewChecker(logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{logger: logger}
}

// Check reports whether target is under or over ref. It dispatches on the
// pair of use modes to the matching predicate; an unrecognized combination
// is logged once and yields false.
func (c *Checker) Check(target Position, targetElev float64, ref Position, refElev float64, targetMode, refMode UseMode, check CheckType) bool {
	switch {
	case targetMode == UseCenter && refMode == UseCenter:
		tp, ok := c.asPoint(target, "target")
		if !ok {
			return false
		}
		rp, ok := c.asPoint(ref, "reference")
		if !ok {
			return false
		}
		return c.CenterVsCenter(tp, targetElev, rp, refElev, check)
	case targetMode == UseCenter && refMode == UseRectangle:
		tp, ok := c.asPoint(target, "target")
		if !ok {
			return false
		}
		rr, ok := c.asRect(ref, "reference")
		if !ok {
			return false
		}
		return c.CenterVsRect(tp, targetElev, rr, refElev, check)
	case targetMode == UseRectangle && refMode == UseCenter:
		tr, ok := c.asRect(target, "target")
		if !ok {
			return false
		}
		rp, ok := c.asPoint(ref, "reference")
		if !ok {
			return false
		}
		return c.RectVsCenter(tr, targetElev, rp, refElev, check)
	case targetMode == UseRectangle && refMode == UseRectangle:
		tr, ok := c.asRect(target, "target")
		if !ok {
			return false
		}
		rr, ok := c.asRect(ref, "reference")
		if !ok {
			return false
		}
		return c.RectVsRect(tr, targetElev, rr, refElev, check)
	default:
		c.logger.Warn("Unknown use mode combination",
			"target_mode", targetMode,
			"reference_mode", refMode)
		return false
	}
}

// CenterVsCenter reports whether the two anchor points coincide exactly and
// the elevation comparison passes.
func (c *Checker) CenterVsCenter(target Point, targetElev float64, ref Point, refElev float64, check CheckType) bool {
	if !c.validPoint(target, "target") || !c.validPoint(ref, "reference") {
		return false
	}
	return target == ref && elevationMatches(targetElev, refElev, check)
}

// CenterVsRect reports whether the target point lies strictly inside the
// reference rectangle and the elevation comparison passes.
func (c *Checker) CenterVsRect(target Point, targetElev float64, ref Rect, refElev float64, check CheckType) bool {
	if !c.validPoint(target, "target") || !c.validRect(ref, "reference") {
		return false
	}
	return ref.ContainsStrict(target) && elevationMatches(targetElev, refElev, check)
}

// RectVsCenter reports whether the reference point lies strictly inside the
// target rectangle and the elevation comparison passes.
func (c *Checker) RectVsCenter(target Rect, targetElev float64, ref Point, refElev float64, check CheckType) bool {
	if !c.validRect(target, "target") || !c.validPoint(ref, "reference") {
		return false
	}
	return target.ContainsStrict(ref) && elevationMatches(targetElev, refElev, check)
}

// RectVsRect reports whether the open interiors of the two rectangles
// overlap and the elevation comparison passes.
func (c *Checker) RectVsRect(target Rect, targetElev float64, ref Rect, refElev float64, check CheckType) bool {
	if !c.validRect(target, "target") || !c.validRect(ref, "reference") {
		return false
	}
	return target.OverlapsStrict(ref) && elevationMatches(targetElev, refElev, check)
}

// elevationMatches applies the directional elevation comparison. Equal
// elevations fail both directions.
func elevationMatches(target, ref float64, check CheckType) bool {
	if check == Under {
		return target < ref
	}
	return target > ref
}

func (c *Checker) asPoint(pos Position, role string) (Point, bool) {
	p, ok := pos.(Point)
	if !ok {
		c.logger.Warn("Position is not a point", "role", role, "position", pos)
		return Point{}, false
	}
	return p, true
}

func (c *Checker) asRect(pos Position, role string) (Rect, bool) {
	r, ok := pos.(Rect)
	if !ok {
		c.logger.Warn("Position is not a rectangle", "role", role, "position", pos)
		return Rect{}, false
	}
	return r, true
}

func (c *Checker) validPoint(p Point, role string) bool {
	if !p.valid() {
		c.logger.Warn("Point has non-numeric coordinates", "role", role, "point", p)
		return false
	}
	return true
}

func (c *Checker) validRect(r Rect, role string) bool {
	if !r.valid() {
		c.logger.Warn("Rectangle is malformed", "role", role, "rect", r)
		return false
	}
	return true
}
