package domain

import (
	"context"
	"time"
)

// Clock supplies the current time. Timed minigames read time only through
// a Clock so tests can drive them deterministically.
type Clock interface {
	Now() time.Time
}

// RunStore keeps completed play-throughs. Implementations are in-memory;
// nothing is persisted across processes.
type RunStore interface {
	Save(ctx context.Context, run *Run) error
	Load(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context) ([]*Run, error)
	Best(ctx context.Context) (*Run, error)
}

// Notifier delivers feedback to the player. Implementations can print,
// play a sound cue, or both.
type Notifier interface {
	Notify(ctx context.Context, fb Feedback) error
}
