package sound

import (
	"context"
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
)

// fakePlayer records cues.
type fakePlayer struct {
	mu   sync.Mutex
	cues []Cue
}

func (f *fakePlayer) Play(c Cue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cues = append(f.cues, c)
}

func (f *fakePlayer) Close() {}

// fakeText records printed feedback.
type fakeText struct {
	messages []string
}

func (f *fakeText) Notify(_ context.Context, fb domain.Feedback) error {
	f.messages = append(f.messages, fb.Message)
	return nil
}

func samples(pcm []byte) []int16 {
	out := make([]int16, len(pcm)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(pcm[2*i:]))
	}
	return out
}

func TestSynthesizeLengthAndRange(t *testing.T) {
	pcm := Synthesize([]Note{{Freq: 440, Duration: 100 * time.Millisecond}})
	if want := SampleRate / 10 * 2; len(pcm) != want {
		t.Fatalf("expected %d bytes, got %d", want, len(pcm))
	}

	s := samples(pcm)
	if s[0] != 0 {
		t.Fatalf("expected the attack to start silent, got %d", s[0])
	}
	var peak int16
	for _, v := range s {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	if peak == 0 || float64(peak) > amplitude {
		t.Fatalf("peak %d outside (0, %.0f]", peak, amplitude)
	}
}

func TestSynthesizeRest(t *testing.T) {
	pcm := Synthesize([]Note{{Freq: 0, Duration: 10 * time.Millisecond}})
	for i, v := range samples(pcm) {
		if v != 0 {
			t.Fatalf("rest sample %d = %d, want 0", i, v)
		}
	}
}

func TestEveryCueRenders(t *testing.T) {
	for _, c := range []Cue{CueAccept, CueReject, CueSuccess, CueFailure, CueClick} {
		notes, ok := cueNotes[c]
		if !ok {
			t.Fatalf("no melody for %s", c)
		}
		if len(Synthesize(notes)) == 0 {
			t.Fatalf("%s rendered no audio", c)
		}
	}
}

func TestCueNotifier(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	text := &fakeText{}
	player := &fakePlayer{}
	n := NewCueNotifier(text, player, log)
	ctx := context.Background()

	tests := []struct {
		kind domain.FeedbackKind
		want Cue
	}{
		{domain.FeedbackAccept, CueAccept},
		{domain.FeedbackReject, CueReject},
		{domain.FeedbackSuccess, CueSuccess},
		{domain.FeedbackFailure, CueFailure},
		{domain.FeedbackInfo, CueClick},
	}

	for i, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if err := n.Notify(ctx, domain.Feedback{Kind: tt.kind, Message: "m"}); err != nil {
				t.Fatalf("notify: %v", err)
			}
			if len(player.cues) != i+1 || player.cues[i] != tt.want {
				t.Fatalf("expected cue %s, got %v", tt.want, player.cues)
			}
		})
	}

	if len(text.messages) != len(tests) {
		t.Fatalf("expected every feedback printed, got %d", len(text.messages))
	}
	if CueFor(domain.FeedbackNone) != CueNone {
		t.Fatal("ignored feedback should be silent")
	}
}

func TestNoOp(t *testing.T) {
	n := NewNoOp(logger.New(logger.LevelOff, nil))
	n.Play(CueSuccess)
	n.Close()
}
