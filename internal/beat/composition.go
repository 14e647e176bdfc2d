package beat

import (
	"time"

	"github.com/faiface/beep"
)

// Composition is a rendered beat: the mixed audio plus everything needed
// to rebuild it. The renderer fills the fields, afterwards they are only
// read.
type Composition struct {
	Audio           [][2]float64
	Format          beep.Format
	BPM             int
	BaseNote        int
	BeatsPerMeasure int
	NumMeasures     int
	Repeatable      bool
	Template        *Template
}

// Len is the number of samples in the rendered audio.
func (c *Composition) Len() int {
	return len(c.Audio)
}

// Duration is the playing time of the rendered audio.
func (c *Composition) Duration() time.Duration {
	return c.Format.SampleRate.D(len(c.Audio))
}

// Streamer plays the rendered audio from the start. Every call returns
// an independent streamer.
func (c *Composition) Streamer() beep.Streamer {
	return &streamer{audio: c.Audio}
}

type streamer struct {
	audio [][2]float64
	pos   int
}

func (s *streamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.audio) {
		return 0, false
	}
	n := copy(samples, s.audio[s.pos:])
	s.pos += n
	return n, true
}

func (s *streamer) Err() error {
	return nil
}
