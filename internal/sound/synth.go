package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// amplitude keeps cues well under full scale.
const amplitude = 0.25 * math.MaxInt16

// fadeSamples is the linear attack and release per note, which keeps the
// tones from clicking at their edges.
const fadeSamples = SampleRate / 200

// Synthesize renders notes as 16-bit little-endian mono PCM at SampleRate.
func Synthesize(notes []Note) []byte {
	var total int
	for _, n := range notes {
		total += samplesFor(n.Duration)
	}
	pcm := make([]byte, 0, total*2)

	for _, n := range notes {
		count := samplesFor(n.Duration)
		for i := 0; i < count; i++ {
			var v float64
			if n.Freq > 0 {
				t := float64(i) / SampleRate
				v = math.Sin(2*math.Pi*n.Freq*t) * envelope(i, count) * amplitude
			}
			pcm = binary.LittleEndian.AppendUint16(pcm, uint16(int16(v)))
		}
	}
	return pcm
}

func samplesFor(d time.Duration) int {
	return int(d.Seconds() * SampleRate)
}

func envelope(i, count int) float64 {
	fade := fadeSamples
	if count < 2*fade {
		fade = count / 2
	}
	if fade == 0 {
		return 1
	}
	switch {
	case i < fade:
		return float64(i) / float64(fade)
	case i >= count-fade:
		return float64(count-1-i) / float64(fade)
	default:
		return 1
	}
}
