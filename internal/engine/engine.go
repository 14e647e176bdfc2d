package engine

import (
	"errors"
	"fmt"

	"github.com/jontwo/beatboxer/internal/clip"
)

// Sentinel errors
var (
	ErrInvalidTempo = errors.New("invalid tempo")
	ErrMeasureCount = errors.New("need at least one measure")
	ErrUnknownClip  = errors.New("unknown oneshot")
)

// Engine renders grid templates into compositions at its current tempo.
type Engine struct {
	bpm      int
	baseNote int
	library  *clip.Library
}

func New(bpm, baseNote int, library *clip.Library) (*Engine, error) {
	if nil == library {
		return nil, errors.New("an engine needs a clip library")
	}
	e := &Engine{library: library}
	if err := e.SetBPM(bpm); nil != err {
		return nil, err
	}
	if err := e.SetBaseNote(baseNote); nil != err {
		return nil, err
	}
	if e.effectiveBPM() < 1 {
		return nil, tooSlow(bpm, baseNote)
	}
	return e, nil
}

func (e *Engine) BPM() int {
	return e.bpm
}

func (e *Engine) BaseNote() int {
	return e.baseNote
}

func (e *Engine) SetBPM(bpm int) error {
	if bpm <= 0 {
		return fmt.Errorf("%w: bpm must be positive, got %v", ErrInvalidTempo, bpm)
	}
	e.bpm = bpm
	return nil
}

// SetBaseNote sets the note value counted as one beat. It has to be a
// power of two: 1, 2, 4, 8, ...
func (e *Engine) SetBaseNote(baseNote int) error {
	if baseNote <= 0 || baseNote&(baseNote-1) != 0 {
		return fmt.Errorf("%w: base note must be a power of two, got %v", ErrInvalidTempo, baseNote)
	}
	e.baseNote = baseNote
	return nil
}

// effectiveBPM folds the base note into the beat rate: an eighth note
// base doubles the pulse a quarter note base would give.
func (e *Engine) effectiveBPM() int {
	return e.baseNote * e.bpm / 4
}

// MsPerBeat is the millisecond length of one grid cell. The division
// truncates, so long renders land slightly ahead of the exact grid.
// It is zero when the bpm and base note combine to under one beat a
// minute, a pair Render refuses anyway.
func (e *Engine) MsPerBeat() int {
	if e.effectiveBPM() < 1 {
		return 0
	}
	return 60000 / e.effectiveBPM()
}

func tooSlow(bpm, baseNote int) error {
	return fmt.Errorf("%w: %v bpm over a base note of %v is under one beat a minute", ErrInvalidTempo, bpm, baseNote)
}
