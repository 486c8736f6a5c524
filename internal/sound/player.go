// Package sound plays short synthesised cues for game feedback.
package sound

import (
	"bytes"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/ottocake/internal/logger"
)

// CuePlayer plays cues without blocking the caller.
type CuePlayer interface {
	Play(c Cue)
	Close()
}

// Compile-time interface check.
var _ CuePlayer = (*Player)(nil)

// Player renders cues through oto. Cues are queued and played one at a
// time on a background goroutine; a full queue drops the new cue.
type Player struct {
	ctx   *oto.Context
	log   *logger.Logger
	pcm   map[Cue][]byte
	queue chan Cue

	mu     sync.Mutex
	active *oto.Player // currently playing, nil when idle
	closed bool
	done   chan struct{}
}

// NewPlayer creates an audio player. Initializes the system audio context
// and pre-renders every cue. Returns an error if the audio device is
// unavailable.
func NewPlayer(log *logger.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	p := &Player{
		ctx:   ctx,
		log:   log,
		pcm:   make(map[Cue][]byte, len(cueNotes)),
		queue: make(chan Cue, 8),
		done:  make(chan struct{}),
	}
	for c, notes := range cueNotes {
		p.pcm[c] = Synthesize(notes)
	}
	go p.run()

	log.Debug("audio player initialized (rate=%d, channels=%d, cues=%d)", SampleRate, ChannelCount, len(p.pcm))
	return p, nil
}

// Play queues a cue.
func (p *Player) Play(c Cue) {
	if c == CueNone {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.queue <- c:
	default:
		p.log.Debug("audio player: queue full, dropping %s", c)
	}
}

// Close interrupts the current cue and stops the player goroutine.
func (p *Player) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	active := p.active
	p.mu.Unlock()

	if active != nil {
		active.Pause()
		p.log.Debug("audio player: interrupted")
	}
	<-p.done
}

func (p *Player) run() {
	defer close(p.done)
	for c := range p.queue {
		if p.isClosed() {
			continue
		}
		if err := p.playPCM(p.pcm[c]); err != nil {
			p.log.Warn("audio player: playing %s: %v", c, err)
		}
	}
}

func (p *Player) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// playPCM plays raw PCM synchronously. Blocks until playback finishes or
// Close interrupts it.
func (p *Player) playPCM(pcm []byte) error {
	if len(pcm) == 0 {
		return nil
	}
	player := p.ctx.NewPlayer(bytes.NewReader(pcm))

	p.mu.Lock()
	p.active = player
	p.mu.Unlock()

	player.Play()

	// Wait for playback to complete or be interrupted.
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()

	return player.Close()
}
