package domain

import "math"

// ItemKind discriminates decoration placements.
type ItemKind int

const (
	KindNone ItemKind = iota
	KindCream
	KindStrawberry
	KindSprinkle
	KindCherry
	KindDrizzle
	KindPiping
)

// PaletteKinds lists every selectable palette entry.
var PaletteKinds = []ItemKind{KindCream, KindStrawberry, KindSprinkle, KindCherry, KindDrizzle, KindPiping}

// String returns the kind name.
func (k ItemKind) String() string {
	switch k {
	case KindCream:
		return "cream"
	case KindStrawberry:
		return "strawberry"
	case KindSprinkle:
		return "sprinkle"
	case KindCherry:
		return "cherry"
	case KindDrizzle:
		return "drizzle"
	case KindPiping:
		return "piping"
	default:
		return "none"
	}
}

// KindFromString converts a kind name. Returns KindNone when unrecognized.
func KindFromString(name string) ItemKind {
	for _, k := range PaletteKinds {
		if k.String() == name {
			return k
		}
	}
	return KindNone
}

// Vec2 is a point on the cake top plane (x, z). The cake centre is the origin.
type Vec2 struct {
	X float64
	Z float64
}

// Len returns the distance from the cake centre.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Z)
}

// Dist returns the planar distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Z-o.Z)
}

// Finite reports whether both coordinates are real numbers. NaN and ±Inf
// positions compare false against every bound, so they must be rejected
// before any distance check.
func (v Vec2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Angle returns the polar angle in (-π, π].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Z, v.X)
}

// PlacedItem is one decoration on the cake top. Y, VelocityY, Settled and
// Scale are owned by the physics world.
type PlacedItem struct {
	ID         int
	Kind       ItemKind
	Pos        Vec2
	Y          float64
	RestHeight float64
	VelocityY  float64
	Settled    bool
	Scale      float64
	Color      uint32
	Seq        int
}
