package tui

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	chimeLength   = 120 * time.Millisecond
	chimeBaseFreq = 440.0
)

// Chime plays a short tone for a body. Index is the body's position in the
// system, so inner planets sound higher.
type Chime interface {
	Play(index int)
	Close()
}

type speakerChime struct{}

// newSpeakerChime opens the default audio device.
func newSpeakerChime() (*speakerChime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &speakerChime{}, nil
}

func (c *speakerChime) Play(index int) {
	sine, err := generators.SineTone(sampleRate, chimeFrequency(index))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(chimeLength), sine))
}

func (c *speakerChime) Close() {
	speaker.Close()
}

// chimeFrequency steps down a major pentatonic scale from A4.
func chimeFrequency(index int) float64 {
	steps := [5]int{0, 2, 4, 7, 9}
	octave := index / len(steps)
	semis := -(octave*12 + steps[index%len(steps)])
	return chimeBaseFreq * math.Pow(2, float64(semis)/12)
}
