package domain

import "time"

// Run records one completed play-through. Runs live for the process only.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Score       int
	Balance     int
	Items       int
	MakingScore int // mixing and bake points earned before decorating reset the tally
	MixingRatio float64
	Bake        BakeOutcome
}
