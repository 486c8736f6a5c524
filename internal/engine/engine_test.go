package engine

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/ottocake/internal/clock"
	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
	"github.com/hammamikhairi/ottocake/internal/scoring"
	"github.com/hammamikhairi/ottocake/internal/storage"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// mockNotifier collects feedback for testing.
type mockNotifier struct {
	mu       sync.Mutex
	feedback []domain.Feedback
}

func (m *mockNotifier) Notify(_ context.Context, fb domain.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = append(m.feedback, fb)
	return nil
}

func (m *mockNotifier) countContaining(sub string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, fb := range m.feedback {
		if strings.Contains(fb.Message, sub) {
			n++
		}
	}
	return n
}

type fixture struct {
	eng      *Engine
	clk      *clock.Manual
	store    *storage.MemoryStore
	notifier *mockNotifier
	ctx      context.Context
}

func setupEngine(t *testing.T) *fixture {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	clk := clock.NewManual(t0)
	store := storage.NewMemoryStore(log)
	n := &mockNotifier{}
	eng := New(store, log, WithClock(clk), WithSeed(7), WithNotifier(n))
	return &fixture{eng: eng, clk: clk, store: store, notifier: n, ctx: context.Background()}
}

func (f *fixture) send(ev domain.Event) domain.Feedback {
	return f.eng.Handle(f.ctx, ev)
}

func (f *fixture) expectStage(t *testing.T, mode domain.Mode, step int) {
	t.Helper()
	if got := f.eng.Stage(); !got.Is(mode, step) {
		t.Fatalf("expected %s step %d, got %s", mode, step, got)
	}
}

// toMixing confirms the intro and adds every ingredient in order.
func (f *fixture) toMixing(t *testing.T) {
	t.Helper()
	f.send(domain.Event{Type: domain.EventConfirm})
	for _, ing := range domain.RequiredIngredients {
		if fb := f.send(domain.Event{Type: domain.EventIngredient, Ingredient: ing}); fb.Kind != domain.FeedbackAccept {
			t.Fatalf("adding %s: expected accept, got %s (%v)", ing, fb.Kind, fb.Err)
		}
	}
	f.expectStage(t, domain.ModeMaking, domain.StepMixing)
}

// mixPerfectly presses every target correctly.
func (f *fixture) mixPerfectly(t *testing.T) {
	t.Helper()
	for _, dir := range f.eng.Snapshot().Rhythm.Targets {
		f.send(domain.Event{Type: domain.EventDirection, Direction: dir})
	}
	f.expectStage(t, domain.ModeMaking, domain.StepBaking)
}

// bake runs the oven sequence and opens the door after d.
func (f *fixture) bake(t *testing.T, d time.Duration) domain.Feedback {
	t.Helper()
	for _, target := range []domain.Target{domain.TargetBowl, domain.TargetPan, domain.TargetDoor} {
		if fb := f.send(domain.Event{Type: domain.EventTarget, Target: target}); fb.Kind != domain.FeedbackAccept {
			t.Fatalf("clicking %s: expected accept, got %s (%v)", target, fb.Kind, fb.Err)
		}
	}
	f.clk.Advance(d)
	return f.send(domain.Event{Type: domain.EventTarget, Target: domain.TargetDoor})
}

func (f *fixture) toDecorating(t *testing.T) {
	t.Helper()
	f.toMixing(t)
	f.mixPerfectly(t)
	f.bake(t, 7600*time.Millisecond)
	f.send(domain.Event{Type: domain.EventContinue})
	f.expectStage(t, domain.ModeDecorating, domain.StepHandoff)
}

func (f *fixture) place(kind domain.ItemKind, x, z float64) domain.Feedback {
	f.send(domain.Event{Type: domain.EventSelect, Kind: kind})
	return f.send(domain.Event{Type: domain.EventClick, Pos: domain.Vec2{X: x, Z: z}})
}

func TestFullPlaythrough(t *testing.T) {
	f := setupEngine(t)
	f.expectStage(t, domain.ModeMaking, domain.StepIntro)

	f.toMixing(t)
	f.mixPerfectly(t)
	if got := f.eng.Score(); got != 30 {
		t.Fatalf("expected mixing bonus 30, got %d", got)
	}

	fb := f.bake(t, 7600*time.Millisecond)
	if fb.Kind != domain.FeedbackSuccess {
		t.Fatalf("expected success feedback for a perfect bake, got %s", fb.Kind)
	}
	f.expectStage(t, domain.ModeMaking, domain.StepBakeResult)
	if got := f.eng.Score(); got != 80 {
		t.Fatalf("expected 80 after the bake, got %d", got)
	}
	if snap := f.eng.Snapshot(); snap.Bake.Outcome != domain.BakePerfect || snap.CakeColor != scoring.CakeGolden {
		t.Fatalf("expected perfect golden cake, got %s %s", snap.Bake.Outcome, snap.CakeColor)
	}

	f.send(domain.Event{Type: domain.EventContinue})
	f.expectStage(t, domain.ModeDecorating, domain.StepHandoff)
	if got := f.eng.Score(); got != 0 {
		t.Fatalf("expected score reset on entering decorating, got %d", got)
	}

	if fb := f.place(domain.KindStrawberry, 0.8, 0); fb.Kind != domain.FeedbackAccept {
		t.Fatalf("strawberry: expected accept, got %s (%v)", fb.Kind, fb.Err)
	}
	if fb := f.place(domain.KindCherry, 0.3, 0); fb.Kind != domain.FeedbackAccept {
		t.Fatalf("cherry: expected accept, got %s (%v)", fb.Kind, fb.Err)
	}
	// 5 + 10 permanent, plus 2 per item.
	if got := f.eng.Score(); got != 19 {
		t.Fatalf("expected 19 before viewing, got %d", got)
	}

	items := f.eng.Snapshot().Items
	balance := scoring.Balance(items)

	fb = f.send(domain.Event{Type: domain.EventConfirm})
	if fb.Kind != domain.FeedbackSuccess {
		t.Fatalf("expected success on finishing, got %s", fb.Kind)
	}
	f.expectStage(t, domain.ModeViewing, domain.StepHandoff)

	want := int(math.Round(15 + float64(balance) + 4))
	snap := f.eng.Snapshot()
	if snap.Score != want || snap.Balance != balance {
		t.Fatalf("expected score %d with balance %d, got %d / %d", want, balance, snap.Score, snap.Balance)
	}

	runs, err := f.store.List(f.ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	run := runs[0]
	if run.Score != want || run.Items != 2 || run.MakingScore != 80 || run.Bake != domain.BakePerfect {
		t.Fatalf("recorded run mismatch: %+v", run)
	}
}

func TestIgnoredEventsLeaveStateUnchanged(t *testing.T) {
	f := setupEngine(t)

	tests := []struct {
		name string
		ev   domain.Event
	}{
		{"ingredient at intro", domain.Event{Type: domain.EventIngredient, Ingredient: domain.IngredientFlour}},
		{"arrow at intro", domain.Event{Type: domain.EventDirection, Direction: domain.DirUp}},
		{"oven at intro", domain.Event{Type: domain.EventTarget, Target: domain.TargetDoor}},
		{"placement at intro", domain.Event{Type: domain.EventClick}},
		{"theme at intro", domain.Event{Type: domain.EventTheme}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.eng.Snapshot()
			fb := f.send(tt.ev)
			if !fb.Ignored() {
				t.Fatalf("expected ignored feedback, got %s", fb.Kind)
			}
			if !errors.Is(fb.Err, domain.ErrWrongStage) {
				t.Fatalf("expected ErrWrongStage, got %v", fb.Err)
			}
			after := f.eng.Snapshot()
			if after.Stage != before.Stage || after.Score != before.Score || after.ThemeIndex != before.ThemeIndex {
				t.Fatalf("state changed: %+v -> %+v", before.Stage, after.Stage)
			}
		})
	}

	if len(f.notifier.feedback) != 0 {
		t.Fatalf("ignored events must not notify, got %d", len(f.notifier.feedback))
	}
}

func TestWrongIngredientRejected(t *testing.T) {
	f := setupEngine(t)
	f.send(domain.Event{Type: domain.EventConfirm})

	fb := f.send(domain.Event{Type: domain.EventIngredient, Ingredient: domain.IngredientMilk})
	if fb.Kind != domain.FeedbackReject {
		t.Fatalf("expected reject, got %s", fb.Kind)
	}
	if !errors.Is(fb.Err, domain.ErrWrongIngredient) {
		t.Fatalf("expected ErrWrongIngredient, got %v", fb.Err)
	}
	snap := f.eng.Snapshot()
	if snap.IngredientsAdded != 0 || snap.NextIngredient != domain.IngredientFlour {
		t.Fatalf("rejection advanced the order: %d next=%s", snap.IngredientsAdded, snap.NextIngredient)
	}
}

func TestMixingTimeoutAdvancesOnTick(t *testing.T) {
	f := setupEngine(t)
	f.toMixing(t)

	f.send(domain.Event{Type: domain.EventDirection, Direction: f.eng.Snapshot().Rhythm.Targets[0]})

	f.clk.Advance(4 * time.Second)
	f.eng.Tick(f.ctx)
	f.expectStage(t, domain.ModeMaking, domain.StepMixing)

	f.clk.Advance(time.Second)
	f.eng.Tick(f.ctx)
	f.expectStage(t, domain.ModeMaking, domain.StepBaking)

	// One hit out of 15 is worth 2 of the 30 mixing points.
	if got := f.eng.Score(); got != 2 {
		t.Fatalf("expected 2 points for a single hit, got %d", got)
	}
	if f.notifier.countContaining("Time's up") != 1 {
		t.Fatal("expected a timeout notification")
	}

	// Arrows after the countdown are ignored.
	if fb := f.send(domain.Event{Type: domain.EventDirection, Direction: domain.DirUp}); !fb.Ignored() {
		t.Fatalf("expected arrow after mixing to be ignored, got %s", fb.Kind)
	}
}

func TestBakeOrderAndOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		after   time.Duration
		outcome domain.BakeOutcome
		score   int
	}{
		{"underbaked", 6 * time.Second, domain.BakeUnderbaked, 40},
		{"perfect", 7600 * time.Millisecond, domain.BakePerfect, 80},
		{"burnt", 9 * time.Second, domain.BakeBurnt, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupEngine(t)
			f.toMixing(t)
			f.mixPerfectly(t)

			// Door before the batter is poured does nothing.
			fb := f.send(domain.Event{Type: domain.EventTarget, Target: domain.TargetDoor})
			if !fb.Ignored() || !errors.Is(fb.Err, domain.ErrOutOfOrder) {
				t.Fatalf("expected ignored out-of-order click, got %s (%v)", fb.Kind, fb.Err)
			}

			f.bake(t, tt.after)
			f.expectStage(t, domain.ModeMaking, domain.StepBakeResult)
			if got := f.eng.Snapshot().Bake.Outcome; got != tt.outcome {
				t.Fatalf("expected %s, got %s", tt.outcome, got)
			}
			if got := f.eng.Score(); got != tt.score {
				t.Fatalf("expected score %d, got %d", tt.score, got)
			}
		})
	}
}

func TestBurningNudgeFiresOnce(t *testing.T) {
	f := setupEngine(t)
	f.toMixing(t)
	f.mixPerfectly(t)
	for _, target := range []domain.Target{domain.TargetBowl, domain.TargetPan, domain.TargetDoor} {
		f.send(domain.Event{Type: domain.EventTarget, Target: target})
	}

	f.clk.Advance(7 * time.Second)
	f.eng.Tick(f.ctx)
	if f.notifier.countContaining("burning") != 0 {
		t.Fatal("nudged before the cake was done")
	}

	f.clk.Advance(2 * time.Second)
	for i := 0; i < 5; i++ {
		f.eng.Tick(f.ctx)
	}
	if got := f.notifier.countContaining("burning"); got != 1 {
		t.Fatalf("expected exactly 1 burning nudge, got %d", got)
	}
}

func TestPlacementRejections(t *testing.T) {
	f := setupEngine(t)
	f.toDecorating(t)

	tests := []struct {
		name    string
		kind    domain.ItemKind
		x, z    float64
		wantErr error
	}{
		{"off the cake", domain.KindSprinkle, 1.5, 0, domain.ErrOutOfBounds},
		{"cherry too far out", domain.KindCherry, 1.2, 0, domain.ErrOffCentre},
		{"cherry at NaN", domain.KindCherry, math.NaN(), 0, domain.ErrOutOfBounds},
		{"strawberry at NaN", domain.KindStrawberry, math.NaN(), math.NaN(), domain.ErrOutOfBounds},
		{"sprinkle at infinity", domain.KindSprinkle, 0, math.Inf(-1), domain.ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := f.place(tt.kind, tt.x, tt.z)
			if fb.Kind != domain.FeedbackReject {
				t.Fatalf("expected reject, got %s", fb.Kind)
			}
			if !errors.Is(fb.Err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, fb.Err)
			}
			if snap := f.eng.Snapshot(); snap.ItemCount != 0 || len(snap.Items) != 0 {
				t.Fatalf("rejected placement changed the board: %d items", snap.ItemCount)
			}
		})
	}

	// Clicking with nothing selected is a rejection too.
	f2 := setupEngine(t)
	f2.toDecorating(t)
	fb := f2.send(domain.Event{Type: domain.EventClick, Pos: domain.Vec2{X: 0.1}})
	if !errors.Is(fb.Err, domain.ErrNothingSelected) {
		t.Fatalf("expected ErrNothingSelected, got %v", fb.Err)
	}
}

func TestPipingDragThroughEngine(t *testing.T) {
	f := setupEngine(t)
	f.toDecorating(t)

	f.send(domain.Event{Type: domain.EventSelect, Kind: domain.KindPiping})
	f.send(domain.Event{Type: domain.EventDragStart, Pos: domain.Vec2{X: 0.5}})
	f.send(domain.Event{Type: domain.EventDragMove, Pos: domain.Vec2{X: 0.52}})
	f.send(domain.Event{Type: domain.EventDragMove, Pos: domain.Vec2{X: 0.6}})
	if fb := f.send(domain.Event{Type: domain.EventDragMove, Pos: domain.Vec2{X: 1.6}}); fb.Kind == domain.FeedbackReject {
		t.Fatal("dragging off the cake should be silent")
	}
	f.send(domain.Event{Type: domain.EventDragEnd})

	if got := f.eng.Snapshot().ItemCount; got != 2 {
		t.Fatalf("expected 2 piping segments, got %d", got)
	}
}

func TestDecoratingResetIsIdempotent(t *testing.T) {
	f := setupEngine(t)
	f.toDecorating(t)

	for round := 0; round < 3; round++ {
		if snap := f.eng.Snapshot(); snap.Score != 0 || snap.ItemCount != 0 || len(snap.Items) != 0 {
			t.Fatalf("round %d: decorating did not start clean: score=%d items=%d", round, snap.Score, snap.ItemCount)
		}
		f.place(domain.KindSprinkle, 0.5, 0.5)
		f.send(domain.Event{Type: domain.EventConfirm})
		f.expectStage(t, domain.ModeViewing, domain.StepHandoff)
		f.send(domain.Event{Type: domain.EventRedecorate})
		f.expectStage(t, domain.ModeDecorating, domain.StepHandoff)
	}

	runs, _ := f.store.List(f.ctx)
	if len(runs) != 3 {
		t.Fatalf("expected 3 recorded runs, got %d", len(runs))
	}
}

func TestViewingToggles(t *testing.T) {
	f := setupEngine(t)
	f.toDecorating(t)
	f.send(domain.Event{Type: domain.EventConfirm})

	for i := 0; i < len(domain.Themes); i++ {
		f.send(domain.Event{Type: domain.EventTheme})
		if got := f.eng.Snapshot().ThemeIndex; got != i {
			t.Fatalf("theme press %d: expected index %d, got %d", i+1, i, got)
		}
	}
	f.send(domain.Event{Type: domain.EventTheme})
	if got := f.eng.Snapshot().ThemeIndex; got != domain.ThemeCustom {
		t.Fatalf("expected theme to wrap back to custom, got %d", got)
	}

	for i := 0; i < len(domain.LightColors); i++ {
		f.send(domain.Event{Type: domain.EventLight})
	}
	if got := f.eng.Snapshot().LightIndex; got != 0 {
		t.Fatalf("expected light to wrap to 0, got %d", got)
	}

	f.send(domain.Event{Type: domain.EventCandle})
	if !f.eng.Snapshot().Candle {
		t.Fatal("expected candle lit")
	}

	f.send(domain.Event{Type: domain.EventSpin})
	f.eng.Tick(f.ctx)
	f.eng.Tick(f.ctx)
	if got := f.eng.Snapshot().SpinAngle; math.Abs(got-2*SpinStep) > 1e-9 {
		t.Fatalf("expected spin angle %.2f, got %.4f", 2*SpinStep, got)
	}
	f.send(domain.Event{Type: domain.EventSpin})
	f.eng.Tick(f.ctx)
	if got := f.eng.Snapshot().SpinAngle; math.Abs(got-2*SpinStep) > 1e-9 {
		t.Fatalf("spin continued after stopping: %.4f", got)
	}
}

func TestRestartFromAnyStage(t *testing.T) {
	f := setupEngine(t)
	f.toMixing(t)
	f.mixPerfectly(t)

	fb := f.send(domain.Event{Type: domain.EventRestart})
	if fb.Kind != domain.FeedbackInfo {
		t.Fatalf("expected info feedback, got %s", fb.Kind)
	}
	f.expectStage(t, domain.ModeMaking, domain.StepIntro)
	snap := f.eng.Snapshot()
	if snap.Score != 0 || snap.Rhythm.Active || snap.IngredientsAdded != 0 {
		t.Fatalf("restart left state behind: %+v", snap)
	}
}

func TestIdleFor(t *testing.T) {
	f := setupEngine(t)
	f.clk.Advance(3 * time.Second)
	if got := f.eng.IdleFor(); got != 3*time.Second {
		t.Fatalf("expected 3s idle, got %s", got)
	}
	f.send(domain.Event{Type: domain.EventConfirm})
	if got := f.eng.IdleFor(); got != 0 {
		t.Fatalf("expected idle reset by input, got %s", got)
	}
}
