package engine

import (
	"fmt"
	"time"

	"github.com/jontwo/beatboxer/internal/beat"
	"github.com/jontwo/beatboxer/internal/clip"
)

// Render turns the template into a composition at the engine's tempo.
// The template is kept by the composition for later re-edits and never
// modified here.
func (e *Engine) Render(t *beat.Template, numMeasures int, repeatable bool) (*beat.Composition, error) {
	if numMeasures < 1 {
		return nil, fmt.Errorf("%w: got %v", ErrMeasureCount, numMeasures)
	}
	if e.effectiveBPM() < 1 {
		return nil, tooSlow(e.bpm, e.baseNote)
	}

	// Resolve every referenced oneshot before any mixing, so a bad name
	// cannot leave a half written canvas behind.
	cells := make([][]*clip.Clip, t.Beats())
	for i := range cells {
		for _, name := range t.Cell(i).Names() {
			c, ok := e.library.Get(name)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownClip, name)
			}
			cells[i] = append(cells[i], c)
		}
	}

	rate := e.library.Format().SampleRate
	msPerBeat := e.MsPerBeat()
	measureMs := msPerBeat * t.Beats()
	totalMs := measureMs * numMeasures

	canvasLen := rate.N(time.Duration(totalMs) * time.Millisecond)
	if !repeatable {
		canvasLen += tailLen(cells)
	}
	canvas := make([][2]float64, canvasLen)

	overlays := make([][][2]float64, t.Beats())
	for i, cs := range cells {
		overlays[i] = combine(cs)
	}
	for m := 0; m < numMeasures; m++ {
		for i, overlay := range overlays {
			if len(overlay) == 0 {
				continue
			}
			offsetMs := m*measureMs + i*msPerBeat
			mix(canvas, overlay, rate.N(time.Duration(offsetMs)*time.Millisecond))
		}
	}

	return &beat.Composition{
		Audio:           canvas,
		Format:          e.library.Format(),
		BPM:             e.bpm,
		BaseNote:        e.baseNote,
		BeatsPerMeasure: t.Beats(),
		NumMeasures:     numMeasures,
		Repeatable:      repeatable,
		Template:        t,
	}, nil
}

// combine layers every clip of one cell into a single buffer as long as
// the longest clip, all aligned on the first frame.
func combine(clips []*clip.Clip) [][2]float64 {
	maxLen := 0
	for _, c := range clips {
		if c.Len() > maxLen {
			maxLen = c.Len()
		}
	}
	combined := make([][2]float64, maxLen)
	for _, c := range clips {
		for i := 0; i < c.Len(); i++ {
			s := c.At(i)
			combined[i][0] += s[0]
			combined[i][1] += s[1]
		}
	}
	return combined
}

// mix adds src into dst starting at off. Anything past the end of dst
// is dropped, mixing never grows the canvas.
func mix(dst, src [][2]float64, off int) {
	for i := range src {
		if off+i >= len(dst) {
			return
		}
		dst[off+i][0] += src[i][0]
		dst[off+i][1] += src[i][1]
	}
}

// tailLen is the extra room a non repeatable beat needs for the last
// played cell to ring out past the end of the grid.
func tailLen(cells [][]*clip.Clip) int {
	for i := len(cells) - 1; i >= 0; i-- {
		if len(cells[i]) == 0 {
			continue
		}
		max := 0
		for _, c := range cells[i] {
			if c.Len() > max {
				max = c.Len()
			}
		}
		return max
	}
	return 0
}
