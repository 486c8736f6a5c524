// Package decorate validates and records topping placements on the cake top.
package decorate

import (
	"fmt"
	"math/rand"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
	"github.com/hammamikhairi/ottocake/internal/physics"
	"github.com/hammamikhairi/ottocake/internal/scoring"
)

// Placement constraints, in cake-top units.
const (
	CakeRadius        = 1.5
	MaxRadius         = 1.4
	CherryRadius      = 1.0
	StrawberrySpacing = 0.4
	PipeSpacing       = 0.05
	SprinkleScatter   = 0.1
)

// Placement is the result of a successful placement. Item is nil for a
// cream colour change.
type Placement struct {
	Item  *domain.PlacedItem
	Delta float64
}

// Board is the decoration surface: palette selection, the placed items and
// the piping bag state.
type Board struct {
	world *physics.World
	log   *logger.Logger

	items      []*domain.PlacedItem
	selected   domain.ItemKind
	swatch     uint32 // cream colour picked on the palette
	cream      uint32 // colour currently on the cake top
	piping     bool
	lastPipe   domain.Vec2
	nextItemID int
	rng        *rand.Rand // sprinkle scatter; nil drops sprinkles exactly
}

// Option configures the board.
type Option func(*Board)

// WithScatter makes sprinkles land up to SprinkleScatter away from the
// click point on each axis, drawn from rng.
func WithScatter(rng *rand.Rand) Option {
	return func(b *Board) {
		b.rng = rng
	}
}

// New creates an empty board that drops items into world.
func New(world *physics.World, log *logger.Logger, opts ...Option) *Board {
	b := &Board{
		world:  world,
		log:    log,
		swatch: domain.DefaultCreamColor,
		cream:  domain.DefaultCreamColor,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Select picks a topping kind on the palette.
func (b *Board) Select(kind domain.ItemKind) error {
	if kind == domain.KindNone {
		return domain.ErrNothingSelected
	}
	b.selected = kind
	b.piping = false
	b.log.Debug("palette: selected %s", kind)
	return nil
}

// SelectCream picks a cream colour on the palette. The next click on the
// cake recolours the top, and piped segments use the same colour.
func (b *Board) SelectCream(color uint32) {
	b.selected = domain.KindCream
	b.swatch = color
	b.piping = false
	b.log.Debug("palette: selected cream %06x", color)
}

// Selected returns the current palette kind.
func (b *Board) Selected() domain.ItemKind { return b.selected }

// CreamColor returns the colour of the cake top.
func (b *Board) CreamColor() uint32 { return b.cream }

// Place handles a click on the cake top at pos.
func (b *Board) Place(pos domain.Vec2) (Placement, error) {
	if b.selected == domain.KindNone {
		return Placement{}, domain.ErrNothingSelected
	}
	if !pos.Finite() {
		return Placement{}, fmt.Errorf("%w: non-finite position", domain.ErrOutOfBounds)
	}
	switch b.selected {
	case domain.KindCream:
		// Only a click on the cream top recolours it.
		if d := pos.Len(); !(d <= CakeRadius) {
			return Placement{}, fmt.Errorf("%w: %.2f from centre", domain.ErrOutOfBounds, d)
		}
		b.cream = b.swatch
		b.log.Debug("cream top recoloured to %06x", b.cream)
		return Placement{}, nil
	case domain.KindPiping:
		p, err := b.PipeStart(pos)
		b.PipeEnd()
		return p, err
	case domain.KindDrizzle:
		if b.HasDrizzle() {
			return Placement{}, domain.ErrDrizzleExists
		}
		if d := pos.Len(); !(d <= MaxRadius) {
			return Placement{}, fmt.Errorf("%w: %.2f from centre", domain.ErrOutOfBounds, d)
		}
		// The drizzle is a fixed ring around the centre, laid flat.
		it := b.newItem(domain.KindDrizzle, domain.Vec2{})
		b.world.Rest(it)
		return Placement{Item: it, Delta: scoring.PlacementDelta(domain.KindDrizzle, it.Pos)}, nil
	case domain.KindStrawberry, domain.KindSprinkle, domain.KindCherry:
		if err := b.check(b.selected, pos); err != nil {
			return Placement{}, err
		}
		return b.drop(b.selected, pos), nil
	default:
		return Placement{}, domain.ErrNothingSelected
	}
}

// check applies the kind-specific placement constraints. Every bound is
// written so that a NaN distance fails it.
func (b *Board) check(kind domain.ItemKind, pos domain.Vec2) error {
	if d := pos.Len(); !(d <= MaxRadius) {
		return fmt.Errorf("%w: %.2f from centre", domain.ErrOutOfBounds, d)
	}
	switch kind {
	case domain.KindCherry:
		if d := pos.Len(); !(d <= CherryRadius) {
			return fmt.Errorf("%w: cherry %.2f from centre", domain.ErrOffCentre, d)
		}
	case domain.KindStrawberry:
		for _, it := range b.items {
			if it.Kind == domain.KindDrizzle {
				continue
			}
			if d := it.Pos.Dist(pos); !(d >= StrawberrySpacing) {
				return fmt.Errorf("%w: %.2f from item %d", domain.ErrTooClose, d, it.ID)
			}
		}
	}
	return nil
}

// PipeStart presses the piping bag at pos and lays the first segment.
func (b *Board) PipeStart(pos domain.Vec2) (Placement, error) {
	if b.selected != domain.KindPiping {
		return Placement{}, domain.ErrNothingSelected
	}
	if !pos.Finite() {
		return Placement{}, fmt.Errorf("%w: non-finite position", domain.ErrOutOfBounds)
	}
	b.piping = true
	b.lastPipe = pos
	return b.pipeSegment(pos)
}

// PipeMove lays a new segment when the bag has moved far enough since the
// last one. It returns a zero Placement when no segment was laid.
func (b *Board) PipeMove(pos domain.Vec2) (Placement, error) {
	if !b.piping {
		return Placement{}, nil
	}
	if !pos.Finite() {
		return Placement{}, fmt.Errorf("%w: non-finite position", domain.ErrOutOfBounds)
	}
	if pos.Dist(b.lastPipe) <= PipeSpacing {
		return Placement{}, nil
	}
	b.lastPipe = pos
	return b.pipeSegment(pos)
}

// PipeEnd releases the piping bag.
func (b *Board) PipeEnd() {
	b.piping = false
}

// Piping reports whether the bag is pressed.
func (b *Board) Piping() bool { return b.piping }

func (b *Board) pipeSegment(pos domain.Vec2) (Placement, error) {
	if d := pos.Len(); !(d <= MaxRadius) {
		return Placement{}, fmt.Errorf("%w: %.2f from centre", domain.ErrOutOfBounds, d)
	}
	p := b.drop(domain.KindPiping, pos)
	p.Item.Color = b.swatch
	return p, nil
}

func (b *Board) drop(kind domain.ItemKind, pos domain.Vec2) Placement {
	if kind == domain.KindSprinkle && b.rng != nil {
		pos.X += (b.rng.Float64() - 0.5) * 2 * SprinkleScatter
		pos.Z += (b.rng.Float64() - 0.5) * 2 * SprinkleScatter
	}
	it := b.newItem(kind, pos)
	it.Y = physics.StartHeight
	b.world.Drop(it)
	b.world.Squash(it)
	return Placement{Item: it, Delta: scoring.PlacementDelta(kind, pos)}
}

func (b *Board) newItem(kind domain.ItemKind, pos domain.Vec2) *domain.PlacedItem {
	b.nextItemID++
	it := &domain.PlacedItem{
		ID:         b.nextItemID,
		Kind:       kind,
		Pos:        pos,
		RestHeight: physics.RestHeight,
		Scale:      1,
		Seq:        len(b.items),
	}
	b.items = append(b.items, it)
	b.log.Debug("placed %s #%d at (%.2f, %.2f)", kind, it.ID, pos.X, pos.Z)
	return it
}

// HasDrizzle reports whether the singleton drizzle is on the cake.
func (b *Board) HasDrizzle() bool {
	for _, it := range b.items {
		if it.Kind == domain.KindDrizzle {
			return true
		}
	}
	return false
}

// Count returns the number of placed items.
func (b *Board) Count() int { return len(b.items) }

// Items returns copies of the placed items in placement order.
func (b *Board) Items() []domain.PlacedItem {
	out := make([]domain.PlacedItem, len(b.items))
	for i, it := range b.items {
		out[i] = *it
	}
	return out
}

// Clear removes every item, stops their simulations and resets the cream
// top and palette.
func (b *Board) Clear() {
	b.items = nil
	b.world.Clear()
	b.selected = domain.KindNone
	b.swatch = domain.DefaultCreamColor
	b.cream = domain.DefaultCreamColor
	b.piping = false
}
