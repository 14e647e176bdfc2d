package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jontwo/beatboxer/internal/beat"
	"github.com/jontwo/beatboxer/internal/engine"
)

// Sentinel errors
var (
	ErrUnknownBeat       = errors.New("unknown beat")
	ErrCompositionExists = errors.New("a beat is already active")
	ErrNoComposition     = errors.New("no active beat")
)

// Store holds the beat being worked on plus a shelf of finished beats
// kept around by name.
type Store struct {
	current *beat.Composition
	stored  map[string]*beat.Composition
}

func New() *Store {
	return &Store{stored: map[string]*beat.Composition{}}
}

// Current returns the active composition, nil when there is none.
func (s *Store) Current() *beat.Composition {
	return s.current
}

// SetCurrent replaces the active composition with a freshly rendered
// one.
func (s *Store) SetCurrent(c *beat.Composition) {
	s.current = c
}

// Store shelves the composition under name, replacing any previous beat
// with the same name.
func (s *Store) Store(name string, c *beat.Composition) error {
	if nil == c {
		return fmt.Errorf("%w: nothing to store under %q", ErrNoComposition, name)
	}
	s.stored[name] = c
	return nil
}

func (s *Store) Get(name string) (*beat.Composition, bool) {
	c, ok := s.stored[name]
	return c, ok
}

func (s *Store) Len() int {
	return len(s.stored)
}

// Names lists the shelved beat names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.stored))
	for name := range s.stored {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Activate makes the named shelf beat the active one. With a beat
// already active it refuses unless force is set.
func (s *Store) Activate(name string, force bool) error {
	c, ok := s.stored[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBeat, name)
	}
	if nil != s.current && !force {
		return fmt.Errorf("%w: pass force to replace it", ErrCompositionExists)
	}
	s.current = c
	return nil
}

// EditOptions describes one rework of the active beat. Nil fields keep
// the value the active composition already has, and the tempo fields
// override the engine for this one render only.
type EditOptions struct {
	BPM         *int
	BaseNote    *int
	NumMeasures *int
	Repeatable  *bool
	Remove      []beat.Shortcut
	Add         []beat.Shortcut
}

// EditActive rebuilds the active beat. The remove shortcuts run first,
// then the add shortcuts, on a copy of its template, and the result is
// rendered with the resolved settings. On any error the active beat,
// the shelf and the engine tempo are all left as they were.
func (s *Store) EditActive(e *engine.Engine, opts EditOptions) error {
	if nil == s.current {
		return fmt.Errorf("%w: nothing to edit", ErrNoComposition)
	}

	oldBPM, oldBaseNote := e.BPM(), e.BaseNote()
	defer func() {
		// The override is scoped to this one render.
		e.SetBPM(oldBPM)
		e.SetBaseNote(oldBaseNote)
	}()
	if nil != opts.BPM {
		if err := e.SetBPM(*opts.BPM); nil != err {
			return err
		}
	}
	if nil != opts.BaseNote {
		if err := e.SetBaseNote(*opts.BaseNote); nil != err {
			return err
		}
	}

	template := s.current.Template.Clone()
	if err := template.Apply(beat.Remove, opts.Remove...); nil != err {
		return err
	}
	if err := template.Apply(beat.Append, opts.Add...); nil != err {
		return err
	}

	numMeasures := s.current.NumMeasures
	if nil != opts.NumMeasures {
		numMeasures = *opts.NumMeasures
	}
	repeatable := s.current.Repeatable
	if nil != opts.Repeatable {
		repeatable = *opts.Repeatable
	}

	c, err := e.Render(template, numMeasures, repeatable)
	if nil != err {
		return err
	}
	s.current = c
	return nil
}

// String lists the active beat first, then the shelf with the names
// padded so the columns line up.
func (s *Store) String() string {
	var b strings.Builder
	if nil != s.current {
		b.WriteString("---------Current Beat--------\n")
		b.WriteString(describe(s.current))
		b.WriteString("\n")
	}
	if len(s.stored) == 0 {
		return b.String()
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString("---------Stored Beats--------\n")
	width := 0
	for name := range s.stored {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, name := range s.Names() {
		fmt.Fprintf(&b, "Name: %-*v --- %v\n", width, name, describe(s.stored[name]))
	}
	return b.String()
}

func describe(c *beat.Composition) string {
	return fmt.Sprintf("BPM: %v --- Time Signature: %v/%v --- Number of Measures: %v --- Length: %.3f s",
		c.BPM, c.BeatsPerMeasure, c.BaseNote, c.NumMeasures, c.Duration().Seconds())
}
