package audio

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const sampleRate = beep.SampleRate(48000)

// maxVoices bounds concurrent cues; a busy frame with many shots would
// otherwise stack dozens of streams in the mixer.
const maxVoices = 12

// SoundManager plays event cues through a single speaker mixer. Every method
// is safe to call before Initialize or after Cleanup; it simply does nothing.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *beep.Ctrl
	rng         *rand.Rand
	log         zerolog.Logger
	volume      float64
	initialized bool
	played      map[Cue]int
}

// NewSoundManager creates a manager with the given base-2 volume.
func NewSoundManager(volume float64, log zerolog.Logger) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewSource(1)),
		log:    log,
		volume: volume,
		played: make(map[Cue]int),
	}
}

// Initialize opens the audio device. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	sm.master = &beep.Ctrl{Streamer: sm.mixer}
	speaker.Play(sm.master)
	sm.initialized = true
	sm.log.Debug().Int("sample_rate", int(sampleRate)).Msg("audio ready")
	return nil
}

// Cleanup silences the mixer and marks the manager uninitialized.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.master.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted pauses or resumes all output without dropping queued cues.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.master.Paused = muted
	speaker.Unlock()
}

// Play queues one cue.
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.playLocked(c)
}

func (sm *SoundManager) playLocked(c Cue) {
	if !sm.initialized || c == CueNone {
		return
	}
	s := withVolume(Synth(c, sampleRate, sm.rng), sm.volume)
	speaker.Lock()
	if sm.mixer.Len() < maxVoices {
		sm.mixer.Add(s)
		sm.played[c]++
	}
	speaker.Unlock()
}

// HandleEvents plays the cue of each event in a tick's event list. Repeated
// cues within the same batch play once.
func (sm *SoundManager) HandleEvents(events []game.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	var seen [CueGameOver + 1]bool
	for _, e := range events {
		c, ok := CueFor(e)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		sm.playLocked(c)
	}
}

// Played reports how many times c has been queued.
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[c]
}
