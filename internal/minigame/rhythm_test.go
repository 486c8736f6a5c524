package minigame

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/hammamikhairi/ottocake/internal/domain"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func opposite(d domain.Direction) domain.Direction {
	switch d {
	case domain.DirUp:
		return domain.DirDown
	case domain.DirDown:
		return domain.DirUp
	case domain.DirLeft:
		return domain.DirRight
	default:
		return domain.DirLeft
	}
}

func TestRhythmAllCorrect(t *testing.T) {
	sess := NewRhythmSession(rand.New(rand.NewSource(7)), t0, DefaultRhythmLength, DefaultRhythmDuration)
	now := t0
	for _, d := range sess.Targets() {
		now = now.Add(100 * time.Millisecond)
		hit, err := sess.Press(d, now)
		if err != nil {
			t.Fatalf("press: %v", err)
		}
		if !hit {
			t.Fatal("expected hit")
		}
	}
	if !sess.Finished(now) {
		t.Fatal("expected finished after all targets")
	}
	if sess.Score() != 100 {
		t.Fatalf("score = %v, want 100", sess.Score())
	}
	if sess.Bonus() != 30 {
		t.Fatalf("bonus = %d, want 30", sess.Bonus())
	}
}

func TestRhythmScoreStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		sess := NewRhythmSession(rng, t0, DefaultRhythmLength, DefaultRhythmDuration)
		targets := sess.Targets()
		for i := range targets {
			d := domain.Directions[rng.Intn(4)]
			if _, err := sess.Press(d, t0.Add(time.Duration(i)*time.Millisecond)); err != nil {
				t.Fatalf("trial %d press %d: %v", trial, i, err)
			}
			if s := sess.Score(); s < 0 || s > 100 {
				t.Fatalf("trial %d: score %v out of range", trial, s)
			}
		}
	}
}

func TestRhythmMissFloorsAtZero(t *testing.T) {
	targets := []domain.Direction{domain.DirUp, domain.DirUp, domain.DirLeft}
	sess := newRhythmSessionWithTargets(targets, t0, time.Second)

	hit, _ := sess.Press(domain.DirDown, t0)
	if hit || sess.Score() != 0 {
		t.Fatalf("expected miss with score 0, got hit=%v score=%v", hit, sess.Score())
	}
	if sess.Cursor() != 1 {
		t.Fatalf("a miss must still consume a target, cursor=%d", sess.Cursor())
	}

	sess.Press(domain.DirUp, t0)
	want := 100.0 / 3
	if got := sess.Score(); got != want {
		t.Fatalf("score = %v, want %v", got, want)
	}

	sess.Press(opposite(domain.DirLeft), t0)
	want = 50.0 / 3
	if got := sess.Score(); got != want {
		t.Fatalf("score = %v, want %v", got, want)
	}
}

func TestRhythmTimeout(t *testing.T) {
	sess := NewRhythmSession(rand.New(rand.NewSource(1)), t0, DefaultRhythmLength, DefaultRhythmDuration)
	first := sess.Targets()[0]
	if _, err := sess.Press(first, t0.Add(time.Second)); err != nil {
		t.Fatalf("press: %v", err)
	}

	late := t0.Add(DefaultRhythmDuration)
	if !sess.Finished(late) {
		t.Fatal("expected finished at the deadline")
	}
	if sess.Remaining(late) != 0 {
		t.Fatalf("remaining = %s, want 0", sess.Remaining(late))
	}
	if _, err := sess.Press(first, late); !errors.Is(err, domain.ErrSessionOver) {
		t.Fatalf("expected ErrSessionOver, got %v", err)
	}
	// One hit out of 15 keeps its partial score.
	if got := sess.Bonus(); got != 2 {
		t.Fatalf("bonus = %d, want 2", got)
	}
}
