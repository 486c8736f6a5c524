package domain

import "math"

// ItemBonus is the flat per-item contribution to the displayed score.
const ItemBonus = 2

// ScoreAccumulator collects every scoring event of a play-through.
type ScoreAccumulator struct {
	Permanent float64
	ItemCount int
}

// Add applies a score delta.
func (s *ScoreAccumulator) Add(delta float64) {
	s.Permanent += delta
}

// AddItem counts a newly placed item and applies its placement delta.
func (s *ScoreAccumulator) AddItem(delta float64) {
	s.ItemCount++
	s.Permanent += delta
}

// Reset zeroes the accumulator.
func (s *ScoreAccumulator) Reset() {
	s.Permanent = 0
	s.ItemCount = 0
}

// Display returns max(0, round(permanent + itemCount*2)).
func (s ScoreAccumulator) Display() int {
	v := math.Round(s.Permanent + float64(s.ItemCount*ItemBonus))
	if v < 0 {
		return 0
	}
	return int(v)
}
