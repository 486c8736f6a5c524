package physics

import (
	"math"
	"testing"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
)

func newWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	return New(logger.New(logger.LevelOff, nil), opts...)
}

func TestDropMonotonicUntilSettled(t *testing.T) {
	w := newWorld(t)
	item := &domain.PlacedItem{ID: 1, Kind: domain.KindCherry, Y: StartHeight, RestHeight: RestHeight}
	w.Drop(item)

	prev := item.Y
	ticks := 0
	for !item.Settled {
		w.Step()
		ticks++
		if item.Y > prev {
			t.Fatalf("tick %d: y rose from %v to %v", ticks, prev, item.Y)
		}
		prev = item.Y
		if ticks > 100 {
			t.Fatal("item never settled")
		}
	}

	if item.Y != RestHeight {
		t.Fatalf("settled at %v, want %v", item.Y, RestHeight)
	}
	if item.VelocityY != 0 {
		t.Fatalf("velocity = %v, want 0", item.VelocityY)
	}
	if w.Falling() != 0 {
		t.Fatalf("expected empty falling set, got %d", w.Falling())
	}

	// Settled items never move again.
	for i := 0; i < 10; i++ {
		w.Step()
	}
	if item.Y != RestHeight {
		t.Fatalf("settled item moved to %v", item.Y)
	}
}

func TestDropSettleTick(t *testing.T) {
	// With g=-0.01 from y=1.0: y_n = 1 - 0.01*n(n+1)/2 reaches 0.05 at n=14.
	w := newWorld(t)
	item := &domain.PlacedItem{Y: StartHeight, RestHeight: RestHeight}
	w.Drop(item)

	for i := 1; i <= 13; i++ {
		w.Step()
		if item.Settled {
			t.Fatalf("settled early at tick %d", i)
		}
	}
	if n := w.Step(); n != 1 || !item.Settled {
		t.Fatalf("expected settle on tick 14, settled=%v n=%d", item.Settled, n)
	}
}

func TestSquashCurve(t *testing.T) {
	w := newWorld(t, WithSquashTicks(4))
	item := &domain.PlacedItem{Scale: 1}
	w.Squash(item)

	w.Step()
	want := 1 + math.Sin(0.25*math.Pi)*SquashAmplitude
	if math.Abs(item.Scale-want) > 1e-9 {
		t.Fatalf("scale = %v, want %v", item.Scale, want)
	}

	w.Step()
	if math.Abs(item.Scale-1.2) > 1e-9 {
		t.Fatalf("peak scale = %v, want 1.2", item.Scale)
	}

	w.Step()
	w.Step()
	if item.Scale != 1 {
		t.Fatalf("scale after animation = %v, want 1", item.Scale)
	}
	if w.Squashing() != 0 {
		t.Fatalf("expected no active squashes, got %d", w.Squashing())
	}
}

func TestRestAndClear(t *testing.T) {
	w := newWorld(t)
	flat := &domain.PlacedItem{Kind: domain.KindDrizzle, Y: -1, RestHeight: RestHeight}
	w.Rest(flat)
	if !flat.Settled || flat.Y != RestHeight || flat.Scale != 1 {
		t.Fatalf("rest: %+v", flat)
	}

	w.Drop(&domain.PlacedItem{Y: StartHeight, RestHeight: RestHeight})
	w.Squash(&domain.PlacedItem{})
	w.Clear()
	if w.Falling() != 0 || w.Squashing() != 0 {
		t.Fatalf("clear left falling=%d squashing=%d", w.Falling(), w.Squashing())
	}
}
