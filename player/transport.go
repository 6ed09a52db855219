// Package player models the playback transport state of a memorial's
// background music: play/pause, clamped seeking, ten-second skips and a
// 0-100 volume mapped onto the audio element's 0.0-1.0 gain.
package player

import "fmt"

// SkipStep is the forward/backward jump in seconds.
const SkipStep = 10.0

type Transport struct {
	playing     bool
	currentTime float64
	duration    float64
	volume      int
}

func NewTransport() *Transport {
	return &Transport{volume: 50}
}

// TogglePlay flips between playing and paused and reports the new state.
func (t *Transport) TogglePlay() bool {
	t.playing = !t.playing
	return t.playing
}

func (t *Transport) Playing() bool {
	return t.playing
}

// SetDuration records the loaded track length, as reported by the
// loadedmetadata event.
func (t *Transport) SetDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	t.duration = seconds
	if t.currentTime > t.duration {
		t.currentTime = t.duration
	}
}

func (t *Transport) Duration() float64 {
	return t.duration
}

// UpdateTime mirrors a timeupdate event from the playback primitive.
func (t *Transport) UpdateTime(seconds float64) {
	t.currentTime = clamp(seconds, 0, t.duration)
}

func (t *Transport) CurrentTime() float64 {
	return t.currentTime
}

// Seek moves to an absolute position, clamped to [0, duration], and returns
// the effective position.
func (t *Transport) Seek(seconds float64) float64 {
	t.currentTime = clamp(seconds, 0, t.duration)
	return t.currentTime
}

func (t *Transport) SkipForward() float64 {
	return t.Seek(t.currentTime + SkipStep)
}

func (t *Transport) SkipBackward() float64 {
	return t.Seek(t.currentTime - SkipStep)
}

// SetVolume takes the 0-100 slider value and returns the 0.0-1.0 gain to
// apply to the playback primitive.
func (t *Transport) SetVolume(value int) float64 {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	t.volume = value
	return float64(value) / 100.0
}

func (t *Transport) Volume() int {
	return t.volume
}

// FormatTime renders a position as zero-padded MM:SS.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
