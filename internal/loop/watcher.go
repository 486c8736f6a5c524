package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
)

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets how often the watcher looks at the game.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithIdleAfter sets how long the player must be idle before a nudge.
func WithIdleAfter(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.idleAfter = d
	}
}

// WithNudgeCooldown sets the minimum time between nudges for the same stage.
func WithNudgeCooldown(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.cooldown = d
	}
}

// Watcher nudges a player who has gone quiet with a hint for whatever the
// current stage is waiting on. It runs on a slower cycle than the frame
// tick (default: every 2 seconds).
type Watcher struct {
	notifier  domain.Notifier
	log       *logger.Logger
	interval  time.Duration
	idleAfter time.Duration
	cooldown  time.Duration

	lastStage domain.StageState
	lastNudge time.Time
	nudged    bool
	now       func() time.Time
}

// NewWatcher creates a watcher with the given dependencies.
func NewWatcher(notifier domain.Notifier, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		notifier:  notifier,
		log:       log,
		interval:  2 * time.Second,
		idleAfter: 10 * time.Second,
		cooldown:  20 * time.Second,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// check runs one watcher cycle against a snapshot of the game.
func (w *Watcher) check(ctx context.Context, snap domain.Snapshot, idle time.Duration) {
	if idle < w.idleAfter {
		return
	}
	now := w.now()
	if w.nudged && snap.Stage == w.lastStage && now.Sub(w.lastNudge) < w.cooldown {
		return
	}

	msg := buildNudge(snap)
	if msg == "" {
		w.log.Debug("watcher: idle %s in %s, nothing to say", idle.Round(time.Second), snap.Stage)
		return
	}

	w.lastStage = snap.Stage
	w.lastNudge = now
	w.nudged = true

	if err := w.notifier.Notify(ctx, domain.Feedback{Kind: domain.FeedbackInfo, Message: msg}); err != nil {
		w.log.Error("watcher: notify: %v", err)
	}
}

// buildNudge decides what to tell an idle player.
func buildNudge(snap domain.Snapshot) string {
	switch snap.Stage.Mode {
	case domain.ModeMaking:
		switch snap.Stage.Step {
		case domain.StepIntro:
			return "Press space when you're ready to bake."
		case domain.StepIngredients:
			return fmt.Sprintf("The %s goes in next.", snap.NextIngredient)
		case domain.StepBaking:
			b := snap.Bake
			switch {
			case !b.Poured:
				return "Click the bowl to pour the batter."
			case !b.PanInOven:
				return "Put the pan in the oven."
			case b.DoorOpen && b.Outcome == domain.BakePending:
				return "Close the oven door to start baking."
			}
		case domain.StepBakeResult:
			return "Press enter to start decorating."
		}
	case domain.ModeDecorating:
		if snap.ItemCount == 0 {
			return "Pick a topping and put it on the cake."
		}
		if snap.Completeness < 0.5 {
			return "The cake looks a little bare. Keep going, or press space to finish."
		}
		return "Press space when the cake is done."
	case domain.ModeViewing:
		return "Try k for themes, l for lights and c for the candle."
	}
	// Mixing and baking are on the clock already.
	return ""
}
