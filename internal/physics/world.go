// Package physics advances the drop simulation for newly placed toppings
// and the cosmetic impact squash that follows a placement.
//
// Integration is semi-implicit Euler with a single terminal condition:
// floor contact. There is no bouncing, horizontal motion or inter-item
// collision.
package physics

import (
	"math"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
)

// Simulation constants, in cake-top units per tick.
const (
	Gravity         = -0.01
	StartHeight     = 1.0
	RestHeight      = 0.05
	SquashTicks     = 30
	SquashAmplitude = 0.2
)

// Option configures the world.
type Option func(*World)

// WithGravity overrides the per-tick vertical acceleration.
func WithGravity(g float64) Option {
	return func(w *World) {
		w.gravity = g
	}
}

// WithSquashTicks overrides the length of the impact squash.
func WithSquashTicks(n int) Option {
	return func(w *World) {
		w.squashTicks = n
	}
}

type squash struct {
	item     *domain.PlacedItem
	timer    int
	duration int
}

// World owns the active drop and squash sets. It mutates the PlacedItems it
// is given; callers must not touch Y, VelocityY, Settled or Scale.
type World struct {
	gravity     float64
	squashTicks int
	log         *logger.Logger

	falling  []*domain.PlacedItem
	squashes []*squash
}

// New creates an empty world.
func New(log *logger.Logger, opts ...Option) *World {
	w := &World{
		gravity:     Gravity,
		squashTicks: SquashTicks,
		log:         log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Drop starts item falling from its current Y toward its RestHeight.
func (w *World) Drop(item *domain.PlacedItem) {
	item.VelocityY = 0
	item.Settled = false
	if item.Scale == 0 {
		item.Scale = 1
	}
	w.falling = append(w.falling, item)
	w.log.Debug("drop item %d (%s) from y=%.2f", item.ID, item.Kind, item.Y)
}

// Rest places item directly on its rest height without a fall.
func (w *World) Rest(item *domain.PlacedItem) {
	item.Y = item.RestHeight
	item.VelocityY = 0
	item.Settled = true
	if item.Scale == 0 {
		item.Scale = 1
	}
}

// Squash starts the impact animation for item.
func (w *World) Squash(item *domain.PlacedItem) {
	w.squashes = append(w.squashes, &squash{item: item, duration: w.squashTicks})
}

// Step advances the simulation by one tick and returns how many items
// settled during it.
func (w *World) Step() int {
	settled := 0
	keep := w.falling[:0]
	for _, it := range w.falling {
		if it.Settled {
			continue
		}
		it.VelocityY += w.gravity
		it.Y += it.VelocityY
		if it.Y <= it.RestHeight {
			it.Y = it.RestHeight
			it.VelocityY = 0
			it.Settled = true
			settled++
			continue
		}
		keep = append(keep, it)
	}
	for i := len(keep); i < len(w.falling); i++ {
		w.falling[i] = nil
	}
	w.falling = keep

	active := w.squashes[:0]
	for _, s := range w.squashes {
		s.timer++
		progress := float64(s.timer) / float64(s.duration)
		s.item.Scale = 1 + math.Sin(progress*math.Pi)*SquashAmplitude
		if s.timer >= s.duration {
			s.item.Scale = 1
			continue
		}
		active = append(active, s)
	}
	for i := len(active); i < len(w.squashes); i++ {
		w.squashes[i] = nil
	}
	w.squashes = active

	return settled
}

// Falling returns the number of items still dropping.
func (w *World) Falling() int { return len(w.falling) }

// Squashing returns the number of running squash animations.
func (w *World) Squashing() int { return len(w.squashes) }

// Clear drops every active simulation without touching the items.
func (w *World) Clear() {
	w.falling = nil
	w.squashes = nil
}
