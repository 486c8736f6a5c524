// Package scoring holds the score heuristics: per-placement deltas, the
// end-of-decoration balance score and the colour tints derived from
// minigame quality.
package scoring

import (
	"math"

	"github.com/hammamikhairi/ottocake/internal/domain"
)

// Balance score parameters.
const (
	Segments         = 8
	VarianceCeiling  = 15.0
	EvennessMax      = 50
	IdealRadius      = 0.8
	RadiusTolerance  = 0.3
	RadiusNormaliser = 0.8
	RadiusPenaltyMax = 20
)

// counted reports whether an item takes part in the balance score. The
// drizzle is fixed at the centre and cream changes have no position.
func counted(k domain.ItemKind) bool {
	switch k {
	case domain.KindStrawberry, domain.KindSprinkle, domain.KindCherry, domain.KindPiping:
		return true
	case domain.KindDrizzle, domain.KindCream, domain.KindNone:
		return false
	default:
		return false
	}
}

// Segment returns the angular bucket in [0, Segments) for a point.
func Segment(p domain.Vec2) int {
	idx := int(math.Floor((p.Angle() + math.Pi) / (2 * math.Pi) * Segments))
	return idx % Segments
}

// BalanceReport breaks the balance score into its parts.
type BalanceReport struct {
	Counted       int
	Variance      float64
	Evenness      int
	MeanRadius    float64
	RadiusPenalty int
	Score         int
}

// Analyze computes the balance breakdown over items.
func Analyze(items []domain.PlacedItem) BalanceReport {
	var counts [Segments]int
	var r BalanceReport
	totalRadius := 0.0

	for _, it := range items {
		if !counted(it.Kind) {
			continue
		}
		r.Counted++
		totalRadius += it.Pos.Len()
		counts[Segment(it.Pos)]++
	}
	if r.Counted == 0 {
		return r
	}

	expected := float64(r.Counted) / Segments
	for _, c := range counts {
		d := float64(c) - expected
		r.Variance += d * d
	}
	r.Variance /= Segments

	normalized := math.Min(1, r.Variance/VarianceCeiling)
	r.Evenness = int(math.Round(EvennessMax * (1 - normalized)))

	r.MeanRadius = totalRadius / float64(r.Counted)
	dev := math.Abs(r.MeanRadius - IdealRadius)
	if dev > RadiusTolerance {
		r.RadiusPenalty = int(math.Round(RadiusPenaltyMax * math.Min(1, dev/RadiusNormaliser)))
	}

	r.Score = r.Evenness - r.RadiusPenalty
	if r.Score < 0 {
		r.Score = 0
	}
	return r
}

// Balance returns the 0–50 balance score over items.
func Balance(items []domain.PlacedItem) int {
	return Analyze(items).Score
}

// Grade returns a short verdict for a balance score.
func Grade(balance int) string {
	switch {
	case balance >= 40:
		return "beautifully balanced"
	case balance >= 20:
		return "nicely spread"
	default:
		return "a little lopsided"
	}
}
