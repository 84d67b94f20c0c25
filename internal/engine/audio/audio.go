// Package audio provides the engine rumble played while thrusters fire.
package audio

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// lowpassAlpha is the one-pole filter coefficient applied to the noise.
// Smaller values give a deeper rumble.
const lowpassAlpha = 0.04

// Rumble is a filtered-noise engine sound whose loudness tracks thrust.
type Rumble struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate

	rng    *rand.Rand
	filter [2]float64

	volume *effects.Volume

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	thrust       float64
}

// NewRumble creates a silent rumble. seed fixes the noise sequence.
func NewRumble(masterVolume float64, seed int64) *Rumble {
	r := &Rumble{
		sampleRate:   DefaultSampleRate,
		rng:          rand.New(rand.NewSource(seed)),
		masterVolume: clamp(masterVolume, 0, 1),
	}
	r.volume = &effects.Volume{
		Streamer: beep.StreamerFunc(r.noise),
		Base:     2,
		Silent:   true,
	}
	return r
}

// Init opens the speaker and starts streaming.
func (r *Rumble) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}

	if err := speaker.Init(r.sampleRate, r.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(r.volume)

	r.initialized = true
	return nil
}

// Close stops playback.
func (r *Rumble) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		speaker.Clear()
	}
	r.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (r *Rumble) IsInitialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initialized
}

// SetThrust sets the thrust level (0.0 to 1.0).
func (r *Rumble) SetThrust(level float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.thrust = clamp(level, 0, 1)
	r.updateVolume()
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (r *Rumble) SetMasterVolume(vol float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.masterVolume = clamp(vol, 0, 1)
	r.updateVolume()
}

// Thrust returns the current thrust level.
func (r *Rumble) Thrust() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.thrust
}

// updateVolume pushes the combined level into the volume effect.
// Caller holds r.mu.
func (r *Rumble) updateVolume() {
	if r.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}

	vol := r.masterVolume * r.thrust
	if vol <= 0 {
		r.volume.Silent = true
		return
	}
	r.volume.Silent = false
	r.volume.Volume = volumeToDb(vol)
}

// noise fills samples with low-passed white noise. It runs on the speaker
// goroutine and never ends.
func (r *Rumble) noise(samples [][2]float64) (int, bool) {
	for i := range samples {
		for ch := range 2 {
			white := r.rng.Float64()*2 - 1
			r.filter[ch] += lowpassAlpha * (white - r.filter[ch])
			samples[i][ch] = r.filter[ch]
		}
	}
	return len(samples), true
}

// volumeToDb converts a 0-1 volume to the effect's log scale.
// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
