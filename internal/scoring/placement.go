package scoring

import "github.com/hammamikhairi/ottocake/internal/domain"

// Placement deltas.
const (
	PipingInner        = 0.05
	PipingOuterPenalty = -0.1
	PipingInnerRadius  = 1.0
	SprinkleBonus      = 0.5
	StrawberryBonus    = 5
	CherryBonus        = 10
)

// PlacementDelta returns the immediate score change for placing kind at pos.
func PlacementDelta(kind domain.ItemKind, pos domain.Vec2) float64 {
	switch kind {
	case domain.KindPiping:
		if pos.Len() > PipingInnerRadius {
			return PipingOuterPenalty
		}
		return PipingInner
	case domain.KindSprinkle:
		return SprinkleBonus
	case domain.KindStrawberry:
		return StrawberryBonus
	case domain.KindCherry:
		return CherryBonus
	case domain.KindDrizzle, domain.KindCream, domain.KindNone:
		return 0
	default:
		return 0
	}
}

// Completeness is how full the cake looks, in [0, 1].
func Completeness(itemCount int) float64 {
	const full = 25
	if itemCount >= full {
		return 1
	}
	return float64(itemCount) / full
}
