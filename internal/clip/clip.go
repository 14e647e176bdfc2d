package clip

import (
	"time"

	"github.com/faiface/beep"
)

// Clip is an immutable named oneshot sample buffer.
type Clip struct {
	name    string
	samples [][2]float64
	format  beep.Format
}

// New copies samples into a clip so later writes to the slice cannot
// reach it.
func New(name string, samples [][2]float64, format beep.Format) *Clip {
	buf := make([][2]float64, len(samples))
	copy(buf, samples)
	return &Clip{name: name, samples: buf, format: format}
}

func (c *Clip) Name() string {
	return c.name
}

func (c *Clip) Len() int {
	return len(c.samples)
}

// At returns the sample pair on frame i.
func (c *Clip) At(i int) [2]float64 {
	return c.samples[i]
}

func (c *Clip) Format() beep.Format {
	return c.format
}

// Duration is the playing time of the clip at its sample rate.
func (c *Clip) Duration() time.Duration {
	return c.format.SampleRate.D(len(c.samples))
}

// Streamer plays the clip from the start.
func (c *Clip) Streamer() beep.Streamer {
	return &clipStreamer{clip: c}
}

type clipStreamer struct {
	clip *Clip
	pos  int
}

func (s *clipStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.clip.Len() {
		return 0, false
	}
	n := copy(samples, s.clip.samples[s.pos:])
	s.pos += n
	return n, true
}

func (s *clipStreamer) Err() error {
	return nil
}
