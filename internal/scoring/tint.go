package scoring

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/hammamikhairi/ottocake/internal/domain"
)

// Batter and bake colours.
const (
	BatterPoor    = "#ffffe0"
	BatterPerfect = "#f4d03f"
	CakeRaw       = "#f1e4c3"
	CakeGolden    = "#cc8855"
	CakeBurnt     = "#5d471b"
)

// Tint blends from poor to perfect by ratio (clamped to [0, 1]) and returns
// a hex colour. Unparseable inputs fall back to perfect.
func Tint(poor, perfect string, ratio float64) string {
	a, err := colorful.Hex(poor)
	if err != nil {
		return perfect
	}
	b, err := colorful.Hex(perfect)
	if err != nil {
		return perfect
	}
	t := math.Min(1, math.Max(0, ratio))
	return a.BlendRgb(b, t).Clamped().Hex()
}

// BatterColor is the mixing-quality tint of the batter.
func BatterColor(ratio float64) string {
	return Tint(BatterPoor, BatterPerfect, ratio)
}

// BakeColor is the live colour of the cake while it bakes. It browns up to
// ratio 1.0 and darkens toward burnt over the next half duration.
func BakeColor(progress float64) string {
	if progress <= 1 {
		return Tint(CakeRaw, CakeGolden, progress)
	}
	return Tint(CakeGolden, CakeBurnt, (progress-1)/0.5)
}

// CakeColor is the final cake colour for a sampled outcome.
func CakeColor(o domain.BakeOutcome) string {
	switch o {
	case domain.BakePerfect:
		return CakeGolden
	case domain.BakeBurnt:
		return CakeBurnt
	default:
		return CakeRaw
	}
}

// HexColor formats a packed 0xRRGGBB value.
func HexColor(c uint32) string {
	col := colorful.Color{
		R: float64((c>>16)&0xff) / 255,
		G: float64((c>>8)&0xff) / 255,
		B: float64(c&0xff) / 255,
	}
	return col.Hex()
}
