package domain

// BakeOutcome classifies the bake when the oven door is reopened.
type BakeOutcome int

const (
	BakePending BakeOutcome = iota
	BakePerfect
	BakeUnderbaked
	BakeBurnt
)

// String returns a human-readable outcome.
func (b BakeOutcome) String() string {
	switch b {
	case BakePerfect:
		return "perfect"
	case BakeUnderbaked:
		return "underbaked"
	case BakeBurnt:
		return "burnt"
	default:
		return "pending"
	}
}
