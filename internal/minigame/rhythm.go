package minigame

import (
	"math"
	"math/rand"
	"time"

	"github.com/hammamikhairi/ottocake/internal/domain"
)

// Rhythm defaults.
const (
	DefaultRhythmLength   = 15
	DefaultRhythmDuration = 5 * time.Second
	RhythmMaxScore        = 100.0
	MixingMaxBonus        = 30
)

// Per-target points, in units of 1/len(targets). A hit is worth
// 100/len and a miss costs 50/len.
const (
	hitUnits  = 100
	missUnits = 50
)

// RhythmSession is the timed arrow-matching minigame. Every press consumes
// one target whether or not it matched.
type RhythmSession struct {
	targets  []domain.Direction
	cursor   int
	units    int // score * len(targets); kept integral so a perfect run is exactly 100
	start    time.Time
	duration time.Duration
}

// NewRhythmSession draws n uniform random directions and starts the
// countdown at start.
func NewRhythmSession(rng *rand.Rand, start time.Time, n int, duration time.Duration) *RhythmSession {
	if n <= 0 {
		n = DefaultRhythmLength
	}
	if duration <= 0 {
		duration = DefaultRhythmDuration
	}
	targets := make([]domain.Direction, n)
	for i := range targets {
		targets[i] = domain.Directions[rng.Intn(len(domain.Directions))]
	}
	return &RhythmSession{targets: targets, start: start, duration: duration}
}

// newRhythmSessionWithTargets is used by tests that need a known sequence.
func newRhythmSessionWithTargets(targets []domain.Direction, start time.Time, duration time.Duration) *RhythmSession {
	return &RhythmSession{targets: targets, start: start, duration: duration}
}

// Press scores one directional input against the current target.
func (s *RhythmSession) Press(dir domain.Direction, now time.Time) (bool, error) {
	if s.Finished(now) {
		return false, domain.ErrSessionOver
	}
	hit := s.targets[s.cursor] == dir
	if hit {
		s.units += hitUnits
	} else {
		s.units -= missUnits
		if s.units < 0 {
			s.units = 0
		}
	}
	s.cursor++
	return hit, nil
}

// Exhausted reports whether every target has been consumed.
func (s *RhythmSession) Exhausted() bool { return s.cursor >= len(s.targets) }

// Expired reports whether the countdown has elapsed.
func (s *RhythmSession) Expired(now time.Time) bool {
	return now.Sub(s.start) >= s.duration
}

// Finished reports whether the session accepts no more input.
func (s *RhythmSession) Finished(now time.Time) bool {
	return s.Exhausted() || s.Expired(now)
}

// Score returns the accumulated score in [0, 100].
func (s *RhythmSession) Score() float64 {
	v := float64(s.units) / float64(len(s.targets))
	return math.Min(RhythmMaxScore, math.Max(0, v))
}

// Ratio returns the mixing quality in [0, 1].
func (s *RhythmSession) Ratio() float64 {
	return s.Score() / RhythmMaxScore
}

// Bonus converts the quality ratio into permanent score points.
func (s *RhythmSession) Bonus() int {
	return int(math.Round(s.Ratio() * MixingMaxBonus))
}

// Remaining returns the time left on the countdown, never negative.
func (s *RhythmSession) Remaining(now time.Time) time.Duration {
	left := s.duration - now.Sub(s.start)
	if left < 0 {
		return 0
	}
	return left
}

// Deadline returns when the countdown ends.
func (s *RhythmSession) Deadline() time.Time { return s.start.Add(s.duration) }

// Cursor returns the index of the next target.
func (s *RhythmSession) Cursor() int { return s.cursor }

// Targets returns a copy of the target sequence.
func (s *RhythmSession) Targets() []domain.Direction {
	out := make([]domain.Direction, len(s.targets))
	copy(out, s.targets)
	return out
}
