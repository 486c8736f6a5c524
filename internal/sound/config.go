package sound

import "time"

// Audio parameters for the synthesised cues: 16-bit signed mono PCM.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Cue is a short sound effect.
type Cue int

const (
	CueNone Cue = iota
	CueAccept
	CueReject
	CueSuccess
	CueFailure
	CueClick
)

// String returns a human-readable cue name.
func (c Cue) String() string {
	switch c {
	case CueAccept:
		return "accept"
	case CueReject:
		return "reject"
	case CueSuccess:
		return "success"
	case CueFailure:
		return "failure"
	case CueClick:
		return "click"
	default:
		return "none"
	}
}

// Note is one sine tone. A zero frequency is a rest.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// cueNotes are the melodies behind each cue.
var cueNotes = map[Cue][]Note{
	CueAccept: {
		{Freq: 880, Duration: 60 * time.Millisecond},
	},
	CueReject: {
		{Freq: 220, Duration: 90 * time.Millisecond},
		{Freq: 0, Duration: 30 * time.Millisecond},
		{Freq: 196, Duration: 120 * time.Millisecond},
	},
	CueSuccess: {
		{Freq: 523.25, Duration: 90 * time.Millisecond},
		{Freq: 659.25, Duration: 90 * time.Millisecond},
		{Freq: 783.99, Duration: 180 * time.Millisecond},
	},
	CueFailure: {
		{Freq: 392, Duration: 120 * time.Millisecond},
		{Freq: 311.13, Duration: 220 * time.Millisecond},
	},
	CueClick: {
		{Freq: 1320, Duration: 25 * time.Millisecond},
	},
}
