package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// tone is a sine at freq, cut to duration and shaped by a decay envelope.
func tone(rate beep.SampleRate, freq float64, duration time.Duration, gain float64) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		// freq above Nyquist; substitute silence rather than fail a cue.
		return beep.Silence(rate.N(duration))
	}
	return newDecay(beep.Take(rate.N(duration), sine), rate.N(duration), gain)
}

// noise is a burst of white noise with a decay envelope.
func noise(rate beep.SampleRate, duration time.Duration, gain float64, rng *rand.Rand) beep.Streamer {
	n := rate.N(duration)
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
		}
		return len(samples), true
	})
	return newDecay(beep.Take(n, src), n, gain)
}

// decay scales a stream linearly from gain down to silence over total samples.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
	gain     float64
}

func newDecay(s beep.Streamer, total int, gain float64) beep.Streamer {
	return &decay{streamer: s, total: total, gain: gain}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if d.position >= d.total {
			return i, false
		}
		vol := d.gain * float64(d.total-d.position) / float64(d.total)
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// mix layers streams and cuts the result at duration so it always ends.
func mix(rate beep.SampleRate, duration time.Duration, s ...beep.Streamer) beep.Streamer {
	return beep.Take(rate.N(duration), beep.Mix(s...))
}

// withVolume applies a base-2 volume. Zero leaves the stream unchanged.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol == 0 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: vol, Silent: math.IsInf(vol, -1)}
}

// Synth renders cue at rate. The stream is finite.
func Synth(c Cue, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	ms := time.Millisecond
	switch c {
	case CueShot:
		return mix(rate, 120*ms, tone(rate, 180, 120*ms, 0.5), noise(rate, 80*ms, 0.25, rng))
	case CueEnemyShot:
		return mix(rate, 120*ms, tone(rate, 130, 120*ms, 0.3), noise(rate, 60*ms, 0.15, rng))
	case CueHit:
		return tone(rate, 520, 90*ms, 0.4)
	case CuePlayerHit:
		return beep.Seq(tone(rate, 220, 80*ms, 0.5), tone(rate, 160, 120*ms, 0.5))
	case CueExplosion:
		return mix(rate, 450*ms, noise(rate, 450*ms, 0.6, rng), tone(rate, 60, 450*ms, 0.4))
	case CuePickup:
		return beep.Seq(tone(rate, 660, 70*ms, 0.35), tone(rate, 990, 110*ms, 0.35))
	case CueLevelComplete:
		return beep.Seq(
			tone(rate, 523, 120*ms, 0.4),
			tone(rate, 659, 120*ms, 0.4),
			tone(rate, 784, 240*ms, 0.4),
		)
	case CueGameOver:
		return beep.Seq(
			tone(rate, 392, 200*ms, 0.4),
			tone(rate, 311, 200*ms, 0.4),
			tone(rate, 196, 450*ms, 0.4),
		)
	default:
		return beep.Silence(0)
	}
}
