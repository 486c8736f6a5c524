package sound

import "github.com/hammamikhairi/ottocake/internal/logger"

// Compile-time interface check.
var _ CuePlayer = (*NoOp)(nil)

// NoOp is a cue player that does nothing. Used when sound is disabled or the
// audio device is unavailable.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a silent cue player.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Play logs the cue and does nothing else.
func (n *NoOp) Play(c Cue) {
	n.log.Debug("sound no-op: would play %s", c)
}

// Close does nothing.
func (n *NoOp) Close() {}
