package sound

import (
	"context"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CueNotifier)(nil)

// CueNotifier wraps a text notifier and also plays a cue for each feedback.
// Messages are printed immediately (via the inner notifier) and the cue is
// queued on the player.
type CueNotifier struct {
	text domain.Notifier
	cues CuePlayer
	log  *logger.Logger
}

// NewCueNotifier creates a notifier that both prints and plays cues.
func NewCueNotifier(text domain.Notifier, cues CuePlayer, log *logger.Logger) *CueNotifier {
	return &CueNotifier{
		text: text,
		cues: cues,
		log:  log,
	}
}

// Notify prints the feedback and plays the matching cue.
func (n *CueNotifier) Notify(ctx context.Context, fb domain.Feedback) error {
	if err := n.text.Notify(ctx, fb); err != nil {
		return err
	}
	n.cues.Play(CueFor(fb.Kind))
	return nil
}

// CueFor picks the cue for a feedback kind. Info messages get a soft click;
// ignored events stay silent.
func CueFor(k domain.FeedbackKind) Cue {
	switch k {
	case domain.FeedbackAccept:
		return CueAccept
	case domain.FeedbackReject:
		return CueReject
	case domain.FeedbackSuccess:
		return CueSuccess
	case domain.FeedbackFailure:
		return CueFailure
	case domain.FeedbackInfo:
		return CueClick
	default:
		return CueNone
	}
}
