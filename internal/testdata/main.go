package testdata

import (
	"time"

	"github.com/faiface/beep"
	"github.com/jontwo/beatboxer/internal/clip"
)

// Format is the render format every fixture clip is built at.
func Format() beep.Format {
	return beep.Format{
		SampleRate:  44100,
		NumChannels: 2,
		Precision:   2,
	}
}

// GetLibrary returns a small deterministic library. The clips hold a
// steady amplitude for a known time, and the amplitudes are powers of
// two, so mixed sample values can be compared exactly.
func GetLibrary() *clip.Library {
	l := clip.NewLibrary(Format())
	l.Add(Steady("kick", 250*time.Millisecond, 0.25))
	l.Add(Steady("snare", 150*time.Millisecond, 0.5))
	l.Add(Steady("hihat", 50*time.Millisecond, 0.125))
	l.Add(Steady("bass", 400*time.Millisecond, 0.0625))
	l.Add(Steady("crash", 600*time.Millisecond, 1))
	return l
}

// Steady builds a clip holding amp in both channels of every frame
// for d.
func Steady(name string, d time.Duration, amp float64) *clip.Clip {
	samples := make([][2]float64, Format().SampleRate.N(d))
	for i := range samples {
		samples[i][0], samples[i][1] = amp, amp
	}
	return clip.New(name, samples, Format())
}
