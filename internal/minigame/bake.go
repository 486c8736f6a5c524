package minigame

import (
	"time"

	"github.com/hammamikhairi/ottocake/internal/domain"
)

// Bake timing. A ratio inside [PerfectLow, PerfectHigh] is a perfect bake.
const (
	DefaultBakeDuration = 8 * time.Second
	PerfectLow          = 0.9
	PerfectHigh         = 1.0
)

// Bake outcome bonuses.
const (
	PerfectBonus    = 50
	UnderbakedBonus = 10
	BurntBonus      = 0
)

// BakeSession is the pour → pan → close door → open door interaction. The
// outcome is sampled only when the door is reopened; there is no timeout.
type BakeSession struct {
	duration  time.Duration
	poured    bool
	panInOven bool
	doorOpen  bool
	baking    bool
	startedAt time.Time
	ratio     float64
	outcome   domain.BakeOutcome
}

// NewBakeSession creates a session with the oven door open and an empty pan.
func NewBakeSession(duration time.Duration) *BakeSession {
	if duration <= 0 {
		duration = DefaultBakeDuration
	}
	return &BakeSession{duration: duration, doorOpen: true}
}

// Pour moves the batter from the bowl into the pan.
func (b *BakeSession) Pour() error {
	if b.Done() {
		return domain.ErrSessionOver
	}
	if b.poured {
		return domain.ErrOutOfOrder
	}
	b.poured = true
	return nil
}

// PlacePan puts the filled pan into the open oven.
func (b *BakeSession) PlacePan() error {
	if b.Done() {
		return domain.ErrSessionOver
	}
	if !b.poured || b.panInOven || !b.doorOpen {
		return domain.ErrOutOfOrder
	}
	b.panInOven = true
	return nil
}

// ClickDoor closes the door to start baking, or opens it to take the cake
// out. It returns BakePending when the click started the bake, and the
// final outcome when it ended it.
func (b *BakeSession) ClickDoor(now time.Time) (domain.BakeOutcome, error) {
	if b.Done() {
		return b.outcome, domain.ErrSessionOver
	}
	if b.baking {
		b.ratio = b.Progress(now)
		b.baking = false
		b.doorOpen = true
		b.outcome = Classify(b.ratio)
		return b.outcome, nil
	}
	if !b.panInOven {
		return domain.BakePending, domain.ErrOutOfOrder
	}
	b.doorOpen = false
	b.baking = true
	b.startedAt = now
	return domain.BakePending, nil
}

// Progress returns elapsed/duration while baking, and the frozen ratio once
// the door has been reopened.
func (b *BakeSession) Progress(now time.Time) float64 {
	if !b.baking {
		return b.ratio
	}
	return float64(now.Sub(b.startedAt)) / float64(b.duration)
}

// Done reports whether the outcome has been sampled.
func (b *BakeSession) Done() bool { return b.outcome != domain.BakePending }

// Outcome returns the sampled outcome, or BakePending.
func (b *BakeSession) Outcome() domain.BakeOutcome { return b.outcome }

// View returns the presentation view at now.
func (b *BakeSession) View(now time.Time) domain.BakeView {
	return domain.BakeView{
		Poured:    b.poured,
		PanInOven: b.panInOven,
		DoorOpen:  b.doorOpen,
		Baking:    b.baking,
		Progress:  b.Progress(now),
		Outcome:   b.outcome,
	}
}

// Classify maps a progress ratio to a bake outcome.
func Classify(ratio float64) domain.BakeOutcome {
	switch {
	case ratio < PerfectLow:
		return domain.BakeUnderbaked
	case ratio > PerfectHigh:
		return domain.BakeBurnt
	default:
		return domain.BakePerfect
	}
}

// BakeBonus returns the permanent score for an outcome.
func BakeBonus(o domain.BakeOutcome) int {
	switch o {
	case domain.BakePerfect:
		return PerfectBonus
	case domain.BakeUnderbaked:
		return UnderbakedBonus
	default:
		return BurntBonus
	}
}
