package domain

// FeedbackKind tells the presentation layer which message style and sound
// cue to use.
type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackAccept
	FeedbackReject
	FeedbackSuccess
	FeedbackFailure
	FeedbackInfo
)

// String returns a human-readable feedback kind.
func (f FeedbackKind) String() string {
	switch f {
	case FeedbackAccept:
		return "accept"
	case FeedbackReject:
		return "reject"
	case FeedbackSuccess:
		return "success"
	case FeedbackFailure:
		return "failure"
	case FeedbackInfo:
		return "info"
	default:
		return "none"
	}
}

// Feedback is the outcome of handling one event. FeedbackNone means the
// event was ignored.
type Feedback struct {
	Kind    FeedbackKind
	Message string
	Err     error
}

// Ignored reports whether the event had no effect and nothing to say.
func (f Feedback) Ignored() bool {
	return f.Kind == FeedbackNone
}
