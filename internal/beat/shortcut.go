package beat

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrUnknownShortcut = errors.New("unknown shortcut")
	ErrBeatIndex       = errors.New("beat index out of range")
)

// Mode selects whether a batch of shortcuts adds names to cells or
// removes them.
type Mode int

const (
	Append Mode = iota
	Remove
)

// ShortcutKind tags the pattern a shortcut expands to.
type ShortcutKind int

const (
	// EveryBeat touches a set of names on every cell.
	EveryBeat ShortcutKind = iota
	// EveryNth touches each hit on the cells offset, offset+n, offset+2n, ...
	EveryNth
	// Single touches one name on an explicit list of cells.
	Single
)

// NthHit pairs a oneshot name with the cell its every nth cycle starts on.
type NthHit struct {
	Name   string
	Offset int
}

// Nth is shorthand for an NthHit literal.
func Nth(name string, offset int) NthHit {
	return NthHit{Name: name, Offset: offset}
}

// Shortcut is one declarative pattern instruction. Build them with
// OnEveryBeat, OnEveryNth and OnBeats.
type Shortcut struct {
	kind  ShortcutKind
	names []string
	n     int
	hits  []NthHit
	name  string
	beats []int
}

// OnEveryBeat touches every cell with each of the given names.
func OnEveryBeat(names ...string) Shortcut {
	return Shortcut{kind: EveryBeat, names: names}
}

// OnEveryNth touches each hit on every nth cell counted from its offset.
func OnEveryNth(n int, hits ...NthHit) Shortcut {
	return Shortcut{kind: EveryNth, n: n, hits: hits}
}

// OnBeats touches name on exactly the given cells.
func OnBeats(name string, beats ...int) Shortcut {
	return Shortcut{kind: Single, name: name, beats: beats}
}

// Apply runs a batch of shortcuts over the template in one mode. The
// whole batch is validated up front, a bad shortcut leaves every cell
// untouched.
func (t *Template) Apply(mode Mode, shortcuts ...Shortcut) error {
	if mode != Append && mode != Remove {
		return fmt.Errorf("%w: edit mode %v", ErrUnknownShortcut, mode)
	}
	for _, s := range shortcuts {
		if err := s.validate(t.Beats()); nil != err {
			return err
		}
	}
	for _, s := range shortcuts {
		s.apply(t, mode)
	}
	return nil
}

func (s Shortcut) validate(beats int) error {
	switch s.kind {
	case EveryBeat:
		return nil
	case EveryNth:
		if s.n < 1 {
			return fmt.Errorf("%w: every %vth beat", ErrUnknownShortcut, s.n)
		}
		for _, hit := range s.hits {
			if hit.Offset < 0 || hit.Offset >= beats {
				return fmt.Errorf("%w: offset %v on a measure of %v beats", ErrBeatIndex, hit.Offset, beats)
			}
		}
		return nil
	case Single:
		for _, b := range s.beats {
			if b < 0 || b >= beats {
				return fmt.Errorf("%w: beat %v on a measure of %v beats", ErrBeatIndex, b, beats)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: kind %v", ErrUnknownShortcut, s.kind)
}

func (s Shortcut) apply(t *Template, mode Mode) {
	switch s.kind {
	case EveryBeat:
		for _, cell := range t.cells {
			for _, name := range s.names {
				cell.change(name, mode)
			}
		}
	case EveryNth:
		for i, cell := range t.cells {
			for _, hit := range s.hits {
				if i >= hit.Offset && (i-hit.Offset)%s.n == 0 {
					cell.change(hit.Name, mode)
				}
			}
		}
	case Single:
		for _, b := range s.beats {
			t.cells[b].change(s.name, mode)
		}
	}
}
