// Package engine implements the stage controller: the state machine that
// walks one cake from the first ingredient to the finished display.
package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/hammamikhairi/ottocake/internal/clock"
	"github.com/hammamikhairi/ottocake/internal/decorate"
	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
	"github.com/hammamikhairi/ottocake/internal/minigame"
	"github.com/hammamikhairi/ottocake/internal/physics"
	"github.com/hammamikhairi/ottocake/internal/scoring"
)

// SpinStep is the topping rotation per tick while spinning, in radians.
const SpinStep = 0.01

// ignored is returned for events that mean nothing in the current stage.
var ignored = domain.Feedback{Err: domain.ErrWrongStage}

// Option configures the engine.
type Option func(*Engine)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c domain.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithSeed makes the rhythm targets reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRhythm sets the number of mixing targets and the countdown length.
func WithRhythm(n int, d time.Duration) Option {
	return func(e *Engine) {
		if n > 0 {
			e.rhythmLength = n
		}
		if d > 0 {
			e.rhythmDuration = d
		}
	}
}

// WithBakeDuration sets the nominal bake time.
func WithBakeDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.bakeDuration = d
		}
	}
}

// WithNotifier sends every non-ignored feedback to n as well as returning
// it to the caller.
func WithNotifier(n domain.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// Engine owns one play-through. It is not safe for concurrent use: a single
// goroutine (see package loop) must serialise Handle, Tick and Snapshot.
type Engine struct {
	store    domain.RunStore
	notifier domain.Notifier
	clock    domain.Clock
	rng      *rand.Rand
	log      *logger.Logger

	rhythmLength   int
	rhythmDuration time.Duration
	bakeDuration   time.Duration

	stage       domain.StageState
	score       domain.ScoreAccumulator
	ingredients *minigame.IngredientSession
	rhythm      *minigame.RhythmSession
	bake        *minigame.BakeSession
	world       *physics.World
	board       *decorate.Board

	mixingRatio float64
	makingScore float64
	balance     int
	burnWarned  bool

	theme     int
	light     int
	candle    bool
	spinning  bool
	spinAngle float64

	runID     string
	startedAt time.Time
	lastInput time.Time
	message   string
	tick      uint64
}

// New creates an engine in MAKING step 0. store may be nil, in which case
// finished runs are not recorded.
func New(store domain.RunStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:          store,
		clock:          clock.System{},
		log:            log,
		rhythmLength:   minigame.DefaultRhythmLength,
		rhythmDuration: minigame.DefaultRhythmDuration,
		bakeDuration:   minigame.DefaultBakeDuration,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(e.clock.Now().UnixNano()))
	}
	e.world = physics.New(log.Named("physics"))
	e.board = decorate.New(e.world, log.Named("board"), decorate.WithScatter(e.rng))
	e.reset()
	return e
}

// reset starts a fresh play-through at MAKING step 0.
func (e *Engine) reset() {
	now := e.clock.Now()
	e.stage = domain.StageState{Mode: domain.ModeMaking, Step: domain.StepIntro}
	e.score.Reset()
	e.ingredients = nil
	e.rhythm = nil
	e.bake = nil
	e.board.Clear()
	e.mixingRatio = 0
	e.makingScore = 0
	e.balance = 0
	e.burnWarned = false
	e.theme = domain.ThemeCustom
	e.light = 0
	e.candle = false
	e.spinning = false
	e.spinAngle = 0
	e.runID = generateID()
	e.startedAt = now
	e.lastInput = now
	e.message = lineIntro()
}

// Stage returns the current mode and step.
func (e *Engine) Stage() domain.StageState { return e.stage }

// Score returns the displayed score.
func (e *Engine) Score() int { return e.score.Display() }

// IdleFor returns how long it has been since the last input event.
func (e *Engine) IdleFor() time.Duration {
	return e.clock.Now().Sub(e.lastInput)
}

// Handle applies one input event and returns the feedback for it. Events
// that make no sense in the current stage are ignored and return
// FeedbackNone with ErrWrongStage; they never change state.
func (e *Engine) Handle(ctx context.Context, ev domain.Event) domain.Feedback {
	e.lastInput = e.clock.Now()

	var fb domain.Feedback
	if ev.Type == domain.EventRestart {
		e.log.Info("run %s abandoned, restarting", e.runID)
		e.reset()
		fb = domain.Feedback{Kind: domain.FeedbackInfo, Message: lineRestart()}
	} else {
		switch e.stage.Mode {
		case domain.ModeMaking:
			fb = e.handleMaking(ev)
		case domain.ModeDecorating:
			fb = e.handleDecorating(ctx, ev)
		case domain.ModeViewing:
			fb = e.handleViewing(ev)
		}
	}

	if fb.Ignored() {
		e.log.Debug("ignored %s in %s: %v", ev.Type, e.stage, fb.Err)
		return fb
	}
	e.emit(ctx, fb)
	return fb
}

// Tick advances time-driven state by one frame: the mixing countdown, the
// burning nudge, falling toppings and the display spin.
func (e *Engine) Tick(ctx context.Context) {
	e.tick++
	now := e.clock.Now()

	if e.stage.Is(domain.ModeMaking, domain.StepMixing) && e.rhythm.Expired(now) {
		e.emit(ctx, e.finishMixing(true))
	}

	if e.stage.Is(domain.ModeMaking, domain.StepBaking) && !e.burnWarned {
		v := e.bake.View(now)
		if v.Baking && v.Progress > minigame.PerfectHigh {
			e.burnWarned = true
			e.emit(ctx, domain.Feedback{Kind: domain.FeedbackInfo, Message: lineBurning()})
		}
	}

	if n := e.world.Step(); n > 0 {
		e.log.Debug("tick %d: %d item(s) settled", e.tick, n)
	}

	if e.stage.Mode == domain.ModeViewing && e.spinning {
		e.spinAngle += SpinStep
	}
}

func (e *Engine) emit(ctx context.Context, fb domain.Feedback) {
	if fb.Message != "" {
		e.message = fb.Message
	}
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Notify(ctx, fb); err != nil {
		e.log.Warn("notify failed: %v", err)
	}
}

func (e *Engine) handleMaking(ev domain.Event) domain.Feedback {
	switch e.stage.Step {
	case domain.StepIntro:
		if ev.Type != domain.EventConfirm {
			return ignored
		}
		e.enterIngredients()
		return domain.Feedback{Kind: domain.FeedbackInfo, Message: lineAddIngredient(e.ingredients.Next())}

	case domain.StepIngredients:
		if ev.Type != domain.EventIngredient {
			return ignored
		}
		return e.offerIngredient(ev.Ingredient)

	case domain.StepMixing:
		if ev.Type != domain.EventDirection {
			return ignored
		}
		return e.pressDirection(ev.Direction)

	case domain.StepBaking:
		if ev.Type != domain.EventTarget {
			return ignored
		}
		return e.clickTarget(ev.Target)

	case domain.StepBakeResult:
		if ev.Type != domain.EventContinue && ev.Type != domain.EventConfirm {
			return ignored
		}
		e.stage.Step = domain.StepHandoff
		e.enterDecorating()
		return domain.Feedback{Kind: domain.FeedbackInfo, Message: lineDecorate()}
	}
	return ignored
}

func (e *Engine) enterIngredients() {
	e.stage.Step = domain.StepIngredients
	e.ingredients = minigame.NewIngredientSession(domain.RequiredIngredients)
	e.log.Info("run %s: adding ingredients", e.runID)
}

func (e *Engine) offerIngredient(ing domain.Ingredient) domain.Feedback {
	want := e.ingredients.Next()
	if err := e.ingredients.Offer(ing); err != nil {
		return domain.Feedback{Kind: domain.FeedbackReject, Message: lineWrongIngredient(want), Err: err}
	}
	if !e.ingredients.Done() {
		return domain.Feedback{Kind: domain.FeedbackAccept, Message: lineIngredientAdded(ing, e.ingredients.Next())}
	}

	e.stage.Step = domain.StepMixing
	e.rhythm = minigame.NewRhythmSession(e.rng, e.clock.Now(), e.rhythmLength, e.rhythmDuration)
	e.log.Info("run %s: mixing, %d targets in %s", e.runID, e.rhythmLength, e.rhythmDuration)
	return domain.Feedback{Kind: domain.FeedbackAccept, Message: lineMixStart(e.rhythmLength)}
}

func (e *Engine) pressDirection(dir domain.Direction) domain.Feedback {
	now := e.clock.Now()
	if e.rhythm.Expired(now) {
		// The countdown ran out between ticks.
		return e.finishMixing(true)
	}
	hit, err := e.rhythm.Press(dir, now)
	if err != nil {
		return domain.Feedback{Err: err}
	}
	if e.rhythm.Exhausted() {
		return e.finishMixing(false)
	}
	n := len(e.rhythm.Targets())
	if hit {
		return domain.Feedback{Kind: domain.FeedbackAccept, Message: lineMixHit(e.rhythm.Cursor(), n)}
	}
	return domain.Feedback{Kind: domain.FeedbackFailure, Message: lineMixMiss(e.rhythm.Cursor(), n)}
}

// finishMixing banks the mixing bonus and moves on to baking.
func (e *Engine) finishMixing(timedOut bool) domain.Feedback {
	e.mixingRatio = e.rhythm.Ratio()
	bonus := e.rhythm.Bonus()
	e.score.Add(float64(bonus))
	e.makingScore += float64(bonus)

	e.stage.Step = domain.StepBaking
	e.bake = minigame.NewBakeSession(e.bakeDuration)
	e.burnWarned = false
	e.log.Info("run %s: mixing done (ratio %.2f, +%d, timed out %t)", e.runID, e.mixingRatio, bonus, timedOut)

	kind := domain.FeedbackFailure
	switch {
	case e.mixingRatio >= 0.9:
		kind = domain.FeedbackSuccess
	case e.mixingRatio >= 0.5:
		kind = domain.FeedbackAccept
	}
	return domain.Feedback{Kind: kind, Message: lineMixResult(e.mixingRatio, bonus, timedOut) + " " + lineBakeSetup()}
}

func (e *Engine) clickTarget(t domain.Target) domain.Feedback {
	switch t {
	case domain.TargetBowl:
		if err := e.bake.Pour(); err != nil {
			return domain.Feedback{Err: err}
		}
		return domain.Feedback{Kind: domain.FeedbackAccept, Message: linePoured()}

	case domain.TargetPan:
		if err := e.bake.PlacePan(); err != nil {
			return domain.Feedback{Err: err}
		}
		return domain.Feedback{Kind: domain.FeedbackAccept, Message: linePanIn()}

	case domain.TargetDoor:
		now := e.clock.Now()
		outcome, err := e.bake.ClickDoor(now)
		if err != nil {
			return domain.Feedback{Err: err}
		}
		if outcome == domain.BakePending {
			e.log.Info("run %s: baking for %s", e.runID, e.bakeDuration)
			return domain.Feedback{Kind: domain.FeedbackAccept, Message: lineBaking()}
		}
		bonus := minigame.BakeBonus(outcome)
		e.score.Add(float64(bonus))
		e.makingScore += float64(bonus)
		e.stage.Step = domain.StepBakeResult
		e.log.Info("run %s: bake %s at %.2f (+%d)", e.runID, outcome, e.bake.Progress(now), bonus)

		kind := domain.FeedbackFailure
		if outcome == domain.BakePerfect {
			kind = domain.FeedbackSuccess
		}
		return domain.Feedback{Kind: kind, Message: lineBakeResult(outcome, bonus) + " " + lineContinue()}
	}
	return ignored
}

// enterDecorating switches to DECORATING. Entering always starts from a
// bare cake and a zero score.
func (e *Engine) enterDecorating() {
	e.stage = domain.StageState{Mode: domain.ModeDecorating, Step: e.stage.Step}
	e.score.Reset()
	e.board.Clear()
	e.balance = 0
	e.theme = domain.ThemeCustom
	e.spinning = false
	e.spinAngle = 0
	e.log.Info("run %s: decorating", e.runID)
}

func (e *Engine) handleDecorating(ctx context.Context, ev domain.Event) domain.Feedback {
	switch ev.Type {
	case domain.EventSelect:
		if err := e.board.Select(ev.Kind); err != nil {
			return domain.Feedback{Kind: domain.FeedbackReject, Message: lineRejected(err), Err: err}
		}
		return domain.Feedback{Kind: domain.FeedbackInfo, Message: lineSelected(ev.Kind)}

	case domain.EventSelectCream:
		e.board.SelectCream(ev.Color)
		return domain.Feedback{Kind: domain.FeedbackInfo, Message: lineSelected(domain.KindCream)}

	case domain.EventClick:
		p, err := e.board.Place(ev.Pos)
		return e.placed(p, err)

	case domain.EventDragStart:
		if e.board.Selected() != domain.KindPiping {
			p, err := e.board.Place(ev.Pos)
			return e.placed(p, err)
		}
		p, err := e.board.PipeStart(ev.Pos)
		return e.placed(p, err)

	case domain.EventDragMove:
		if !e.board.Piping() {
			return domain.Feedback{Err: domain.ErrNothingSelected}
		}
		p, err := e.board.PipeMove(ev.Pos)
		if err != nil {
			// Dragging off the cake just stops laying segments.
			return domain.Feedback{Err: err}
		}
		if p.Item == nil {
			return domain.Feedback{}
		}
		return e.placed(p, nil)

	case domain.EventDragEnd:
		if !e.board.Piping() {
			return ignored
		}
		e.board.PipeEnd()
		return domain.Feedback{Kind: domain.FeedbackInfo, Message: lineSelected(domain.KindPiping)}

	case domain.EventConfirm:
		return e.enterViewing(ctx)
	}
	return ignored
}

func (e *Engine) placed(p decorate.Placement, err error) domain.Feedback {
	if err != nil {
		return domain.Feedback{Kind: domain.FeedbackReject, Message: lineRejected(err), Err: err}
	}
	if p.Item == nil {
		return domain.Feedback{Kind: domain.FeedbackAccept, Message: lineCream(scoring.HexColor(e.board.CreamColor()))}
	}
	e.score.AddItem(p.Delta)
	return domain.Feedback{Kind: domain.FeedbackAccept, Message: linePlaced(p.Item.Kind, p.Delta)}
}

// enterViewing banks the balance score and records the run.
func (e *Engine) enterViewing(ctx context.Context) domain.Feedback {
	e.board.PipeEnd()
	items := e.board.Items()
	e.balance = scoring.Balance(items)
	e.score.Add(float64(e.balance))
	e.stage = domain.StageState{Mode: domain.ModeViewing, Step: e.stage.Step}

	final := e.score.Display()
	e.log.Info("run %s: finished with %d items, balance %d, score %d", e.runID, len(items), e.balance, final)
	e.record(ctx, final, len(items))

	return domain.Feedback{Kind: domain.FeedbackSuccess, Message: lineViewing(final, e.balance, scoring.Grade(e.balance))}
}

func (e *Engine) record(ctx context.Context, final, items int) {
	if e.store == nil {
		return
	}
	var outcome domain.BakeOutcome
	if e.bake != nil {
		outcome = e.bake.Outcome()
	}
	run := &domain.Run{
		ID:          e.runID,
		StartedAt:   e.startedAt,
		FinishedAt:  e.clock.Now(),
		Score:       final,
		Balance:     e.balance,
		Items:       items,
		MakingScore: int(e.makingScore),
		MixingRatio: e.mixingRatio,
		Bake:        outcome,
	}
	if err := e.store.Save(ctx, run); err != nil {
		e.log.Error("saving run %s: %v", e.runID, err)
	}
}

func (e *Engine) handleViewing(ev domain.Event) domain.Feedback {
	switch ev.Type {
	case domain.EventTheme:
		e.theme++
		if e.theme >= len(domain.Themes) {
			e.theme = domain.ThemeCustom
		}
		return domain.Feedback{Kind: domain.FeedbackInfo, Message: lineTheme(e.theme)}

	case domain.EventLight:
		e.light = (e.light + 1) % len(domain.LightColors)
		return domain.Feedback{Kind: domain.FeedbackInfo, Message: lineLight(e.light)}

	case domain.EventCandle:
		e.candle = !e.candle
		return domain.Feedback{Kind: domain.FeedbackInfo, Message: lineCandle(e.candle)}

	case domain.EventSpin, domain.EventConfirm:
		e.spinning = !e.spinning
		return domain.Feedback{Kind: domain.FeedbackInfo, Message: lineSpin(e.spinning)}

	case domain.EventRedecorate:
		// A new decoration replaces the recorded attempt, so the run gets a
		// fresh ID for its next record.
		e.runID = generateID()
		e.enterDecorating()
		return domain.Feedback{Kind: domain.FeedbackInfo, Message: lineDecorate()}
	}
	return ignored
}

// Snapshot copies the state the presentation layer draws from.
func (e *Engine) Snapshot() domain.Snapshot {
	now := e.clock.Now()
	items := e.board.Items()
	s := domain.Snapshot{
		Stage:        e.stage,
		Score:        e.score.Display(),
		Permanent:    e.score.Permanent,
		ItemCount:    e.score.ItemCount,
		Completeness: scoring.Completeness(e.score.ItemCount),
		MixingRatio:  e.mixingRatio,
		BatterColor:  scoring.BatterColor(e.mixingRatio),
		Items:        items,
		Selected:     e.board.Selected(),
		CreamColor:   e.board.CreamColor(),
		Balance:      e.balance,
		ThemeIndex:   e.theme,
		LightIndex:   e.light,
		Candle:       e.candle,
		Spinning:     e.spinning,
		SpinAngle:    e.spinAngle,
		Message:      e.message,
		Tick:         e.tick,
	}
	if e.ingredients != nil {
		s.IngredientsAdded = e.ingredients.Cursor()
		s.NextIngredient = e.ingredients.Next()
	}
	if e.rhythm != nil {
		s.Rhythm = domain.RhythmView{
			Targets:   e.rhythm.Targets(),
			Cursor:    e.rhythm.Cursor(),
			Score:     e.rhythm.Score(),
			Remaining: e.rhythm.Remaining(now),
			Active:    e.stage.Is(domain.ModeMaking, domain.StepMixing),
		}
	}
	if e.bake != nil {
		s.Bake = e.bake.View(now)
		if s.Bake.Baking {
			s.CakeColor = scoring.BakeColor(s.Bake.Progress)
		} else if e.bake.Done() {
			s.CakeColor = scoring.CakeColor(e.bake.Outcome())
		}
	}
	return s
}
