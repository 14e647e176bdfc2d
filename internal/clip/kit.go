package clip

import (
	"math"
	"math/rand"
	"time"

	"github.com/faiface/beep"
)

// DefaultLibrary builds the stock kit, the six voices every pattern can
// assume are present. The voices are synthesized rather than shipped as
// assets, with seeded noise so repeated runs produce identical samples.
func DefaultLibrary(format beep.Format) *Library {
	l := NewLibrary(format)
	l.Add(New("hihat", hihat(format), format))
	l.Add(New("kick", kick(format), format))
	l.Add(New("snare", snare(format), format))
	l.Add(New("clap", clap(format), format))
	l.Add(New("crash", crash(format), format))
	l.Add(New("bass", bass(format), format))
	return l
}

// kick is a sine sweep falling from 150Hz to 40Hz, saturated a little
// for punch.
func kick(format beep.Format) [][2]float64 {
	n := frames(format, 250*time.Millisecond)
	mono := make([]float64, n)
	phase := 0.0
	for i := range mono {
		t := float64(i) / float64(n)
		freq := 40 + 110*math.Exp(-8*t)
		mono[i] = math.Sin(2*math.Pi*phase) * math.Exp(-5*t)
		phase += freq / float64(format.SampleRate)
	}
	for i := range mono {
		mono[i] = math.Tanh(mono[i] * 2)
	}
	return stereo(mono)
}

// hihat is a short noise burst with the low end filtered away.
func hihat(format beep.Format) [][2]float64 {
	n := frames(format, 80*time.Millisecond)
	mono := noise(n, 2)
	for i := range mono {
		t := float64(i) / float64(n)
		mono[i] *= math.Exp(-15 * t)
	}
	highpass(mono, 7000, format.SampleRate)
	normalize(mono, 0.9)
	return stereo(mono)
}

// snare layers a 200Hz body under a noise rattle.
func snare(format beep.Format) [][2]float64 {
	n := frames(format, 180*time.Millisecond)
	rattle := noise(n, 3)
	highpass(rattle, 1500, format.SampleRate)
	mono := make([]float64, n)
	phase := 0.0
	for i := range mono {
		t := float64(i) / float64(n)
		mono[i] = math.Sin(2*math.Pi*phase)*math.Exp(-10*t)*0.5 + rattle[i]*math.Exp(-8*t)*0.5
		phase += 200 / float64(format.SampleRate)
	}
	normalize(mono, 0.9)
	return stereo(mono)
}

// clap is a handful of quick noise bursts falling into a short tail.
func clap(format beep.Format) [][2]float64 {
	n := frames(format, 230*time.Millisecond)
	mono := make([]float64, n)
	src := noise(n, 5)
	burst := frames(format, 10*time.Millisecond)
	gap := frames(format, 5*time.Millisecond)
	pos := 0
	for b := 0; b < 4 && pos < n; b++ {
		amp := 1.0 - 0.15*float64(b)
		for i := 0; i < burst && pos+i < n; i++ {
			mono[pos+i] = src[pos+i] * amp
		}
		pos += burst + gap
	}
	for i := pos; i < n; i++ {
		t := float64(i-pos) / float64(n-pos+1)
		mono[i] = src[i] * 0.5 * math.Exp(-9*t)
	}
	highpass(mono, 1000, format.SampleRate)
	normalize(mono, 0.9)
	return stereo(mono)
}

// crash is a long washing noise decay, the only voice meant to ring
// over several beats.
func crash(format beep.Format) [][2]float64 {
	n := frames(format, 900*time.Millisecond)
	mono := noise(n, 7)
	for i := range mono {
		t := float64(i) / float64(n)
		mono[i] *= math.Exp(-3 * t)
	}
	highpass(mono, 5000, format.SampleRate)
	normalize(mono, 0.8)
	return stereo(mono)
}

// bass is a plain A1 sine thump.
func bass(format beep.Format) [][2]float64 {
	n := frames(format, 400*time.Millisecond)
	mono := make([]float64, n)
	phase := 0.0
	for i := range mono {
		t := float64(i) / float64(n)
		mono[i] = math.Sin(2*math.Pi*phase) * math.Exp(-4*t)
		phase += 55 / float64(format.SampleRate)
	}
	return stereo(mono)
}

func frames(format beep.Format, d time.Duration) int {
	return format.SampleRate.N(d)
}

func noise(n int, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = r.Float64()*2 - 1
	}
	return buf
}

// highpass runs a single pole RC filter over buf in place.
func highpass(buf []float64, cutoff float64, rate beep.SampleRate) {
	rc := 1 / (2 * math.Pi * cutoff)
	dt := 1 / float64(rate)
	alpha := rc / (rc + dt)
	prevIn, prevOut := 0.0, 0.0
	for i, v := range buf {
		out := alpha * (prevOut + v - prevIn)
		prevIn, prevOut = v, out
		buf[i] = out
	}
}

// normalize scales buf in place so its loudest sample sits at peak.
func normalize(buf []float64, peak float64) {
	max := 0.0
	for _, v := range buf {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	if max == 0 {
		return
	}
	for i := range buf {
		buf[i] *= peak / max
	}
}

func stereo(mono []float64) [][2]float64 {
	samples := make([][2]float64, len(mono))
	for i, v := range mono {
		samples[i][0], samples[i][1] = v, v
	}
	return samples
}
