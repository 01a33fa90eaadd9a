package beep

import (
	"bytes"
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate = 44100
	beepHz     = 440

	volumeStep = 0.2
	volumeMax  = 1.0
	volumeMin  = 0.0
)

// Beep is the tone the machine hums while its sound timer is live.
// One wave period is pre-rendered and looped, so the tone holds for
// as long as the timer does.
type Beep struct {
	p *audio.Player
}

func New() (*Beep, error) {
	// one full period of a 440 hz sine, 16-bit LE mono
	numSamples := sampleRate / beepHz
	buf := make([]byte, numSamples*2)
	for i := 0; i < numSamples; i++ {
		a := math.Sin(2.0 * math.Pi * float64(i) / float64(numSamples))
		s := int16(a * math.MaxInt16)
		buf[2*i] = byte(s)
		buf[2*i+1] = byte(s >> 8)
	}

	audioCtx := audio.NewContext(sampleRate)
	loop := audio.NewInfiniteLoop(bytes.NewReader(buf), int64(len(buf)))
	player, err := audioCtx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("couldn't create an audio player: %w", err)
	}

	return &Beep{
		p: player,
	}, nil
}

// Update starts or silences the tone to match the sound timer state.
// The host calls it once per frame.
func (b *Beep) Update(active bool) {
	switch {
	case active && !b.p.IsPlaying():
		if err := b.p.Rewind(); err != nil {
			log.Printf("couldn't rewind the audio player: %s\n", err.Error())
			return
		}
		b.p.Play()
	case !active && b.p.IsPlaying():
		b.p.Pause()
	}
}

func (b *Beep) VolumeUp() {
	volume := b.p.Volume()
	volume = min(volume+volumeStep, volumeMax)
	b.p.SetVolume(volume)
}

func (b *Beep) VolumeDown() {
	volume := b.p.Volume()
	volume = max(volume-volumeStep, volumeMin)
	b.p.SetVolume(volume)
}

func (b *Beep) SetVolume(volume float64) {
	volume = min(volume, volumeMax)
	volume = max(volume, volumeMin)
	b.p.SetVolume(volume)
}
