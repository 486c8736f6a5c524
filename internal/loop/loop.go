// Package loop runs the game clock. A single goroutine owns the game and
// serialises player input with frame ticks, so the engine never sees two
// callers at once.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
)

// ErrNotRunning is returned by Send when the loop has not been started or
// has been stopped.
var ErrNotRunning = errors.New("game loop not running")

// Game is what the loop drives. *engine.Engine satisfies it.
type Game interface {
	Handle(ctx context.Context, ev domain.Event) domain.Feedback
	Tick(ctx context.Context)
	Snapshot() domain.Snapshot
	IdleFor() time.Duration
}

// Option configures the loop.
type Option func(*Loop)

// WithTickInterval sets the frame period. The default is 60 frames a second.
func WithTickInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.tickInterval = d
		}
	}
}

// WithInputBuffer sets how many events may queue before Send blocks.
func WithInputBuffer(n int) Option {
	return func(l *Loop) {
		if n >= 0 {
			l.inputBuffer = n
		}
	}
}

// WithWatcher enables idle nudges, checked on the watcher's slower cycle.
func WithWatcher(notifier domain.Notifier, opts ...WatcherOption) Option {
	return func(l *Loop) {
		l.watcherNotifier = notifier
		l.watcherOpts = opts
	}
}

// Loop owns a Game and drives it from one goroutine.
type Loop struct {
	game         Game
	log          *logger.Logger
	tickInterval time.Duration
	inputBuffer  int

	watcherNotifier domain.Notifier
	watcherOpts     []WatcherOption
	watcher         *Watcher

	inputs    chan domain.Event
	snapshots chan domain.Snapshot

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	latest  domain.Snapshot
}

// New creates a loop around game.
func New(game Game, log *logger.Logger, opts ...Option) *Loop {
	l := &Loop{
		game:         game,
		log:          log,
		tickInterval: time.Second / 60,
		inputBuffer:  32,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.inputs = make(chan domain.Event, l.inputBuffer)
	l.snapshots = make(chan domain.Snapshot, 1)
	l.latest = game.Snapshot()
	if l.watcherNotifier != nil {
		l.watcher = NewWatcher(l.watcherNotifier, log.Named("watcher"), l.watcherOpts...)
	}
	return l
}

// Start begins the background loop. Non-blocking.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		l.log.Warn("game loop already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.running = true
	l.done = make(chan struct{})

	go l.run(childCtx, l.done)

	l.log.Info("game loop started (tick=%s)", l.tickInterval)
}

// Stop shuts the loop down and waits for the goroutine to exit.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.cancel()
	l.running = false
	done := l.done
	l.mu.Unlock()

	<-done
	l.log.Info("game loop stopped")
}

// Send queues an input event. It blocks while the queue is full.
func (l *Loop) Send(ctx context.Context, ev domain.Event) error {
	l.mu.Lock()
	running := l.running
	l.mu.Unlock()
	if !running {
		return ErrNotRunning
	}

	select {
	case l.inputs <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshots delivers the newest snapshot after each change. Slow readers
// miss intermediate frames, never the latest one.
func (l *Loop) Snapshots() <-chan domain.Snapshot {
	return l.snapshots
}

// Latest returns the most recently published snapshot.
func (l *Loop) Latest() domain.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest
}

// run is the owner goroutine.
func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.tickInterval)
	defer ticker.Stop()

	var watch <-chan time.Time
	if l.watcher != nil {
		wt := time.NewTicker(l.watcher.interval)
		defer wt.Stop()
		watch = wt.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-l.inputs:
			fb := l.game.Handle(ctx, ev)
			if !fb.Ignored() {
				l.log.Debug("%s -> %s: %s", ev.Type, fb.Kind, fb.Message)
			}
			l.publish()
		case <-ticker.C:
			l.game.Tick(ctx)
			l.publish()
		case <-watch:
			l.watcher.check(ctx, l.game.Snapshot(), l.game.IdleFor())
		}
	}
}

// publish replaces any unread snapshot with the current one.
func (l *Loop) publish() {
	snap := l.game.Snapshot()

	l.mu.Lock()
	l.latest = snap
	l.mu.Unlock()

	select {
	case l.snapshots <- snap:
		return
	default:
	}
	select {
	case <-l.snapshots:
	default:
	}
	select {
	case l.snapshots <- snap:
	default:
	}
}
