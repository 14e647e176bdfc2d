package store

import (
	"errors"
	"testing"

	"github.com/jontwo/beatboxer/internal/beat"
	"github.com/jontwo/beatboxer/internal/engine"
)

func equalCells(p, q [][]string) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if len(p[i]) != len(q[i]) {
			return false
		}
		for j := range p[i] {
			if p[i][j] != q[i][j] {
				return false
			}
		}
	}
	return true
}

// grooveStore shelves and activates a sixteen beat pattern with hihat
// on every beat, snare on 1, 5, 9, 13, kick on 1, 4, 7, 10, 13 and
// crash on 0 and 8.
func grooveStore(t *testing.T, e *engine.Engine) *Store {
	t.Helper()
	template, err := beat.NewTemplate(16)
	if nil != err {
		t.Fatal(err)
	}
	if err := template.Apply(beat.Append,
		beat.OnEveryBeat("hihat"),
		beat.OnEveryNth(4, beat.Nth("snare", 1)),
		beat.OnEveryNth(3, beat.Nth("kick", 1)),
		beat.OnEveryNth(8, beat.Nth("crash", 0)),
	); nil != err {
		t.Fatal(err)
	}
	c, err := e.Render(template, 1, true)
	if nil != err {
		t.Fatal(err)
	}
	s := New()
	if err := s.Store("groove", c); nil != err {
		t.Fatal(err)
	}
	if err := s.Activate("groove", false); nil != err {
		t.Fatal(err)
	}
	return s
}

var grooveCells = [][]string{
	{"hihat", "crash"},
	{"hihat", "snare", "kick"},
	{"hihat"},
	{"hihat"},
	{"hihat", "kick"},
	{"hihat", "snare"},
	{"hihat"},
	{"hihat", "kick"},
	{"hihat", "crash"},
	{"hihat", "snare"},
	{"hihat", "kick"},
	{"hihat"},
	{"hihat"},
	{"hihat", "snare", "kick"},
	{"hihat"},
	{"hihat"},
}

var reworkedCells = [][]string{
	{"hihat", "crash"},
	{"kick", "bass"},
	{"hihat", "snare"},
	{},
	{"hihat", "kick", "bass"},
	{},
	{"hihat", "snare"},
	{"kick", "bass"},
	{"hihat", "crash"},
	{},
	{"hihat", "kick", "bass", "snare"},
	{},
	{"hihat"},
	{"kick", "bass"},
	{"hihat", "snare"},
	{},
}

func TestEditActive(t *testing.T) {
	e := testEngine(t)
	s := grooveStore(t, e)
	snapshot, _ := s.Get("groove")

	bpm, baseNote, measures := 140, 8, 4
	if err := s.EditActive(e, EditOptions{
		BPM:         &bpm,
		BaseNote:    &baseNote,
		NumMeasures: &measures,
		Remove: []beat.Shortcut{
			beat.OnEveryBeat("snare"),
			beat.OnEveryNth(2, beat.Nth("hihat", 1)),
		},
		Add: []beat.Shortcut{
			beat.OnEveryNth(3, beat.Nth("bass", 1)),
			beat.OnEveryNth(4, beat.Nth("snare", 2)),
		},
	}); nil != err {
		t.Fatal(err)
	}

	c := s.Current()
	if c == snapshot {
		t.Log("expected the edit to render a new composition")
		t.Fail()
	}
	if c.BPM != 140 || c.BaseNote != 8 || c.NumMeasures != 4 || !c.Repeatable {
		t.Log("got     ", c.BPM, c.BaseNote, c.NumMeasures, c.Repeatable)
		t.Log("expected", 140, 8, 4, true)
		t.Fail()
	}
	if out := c.Template.Cells(); !equalCells(out, reworkedCells) {
		t.Log("out     ", out)
		t.Log("expected", reworkedCells)
		t.Fail()
	}

	// The shelved snapshot keeps its own grid.
	if out := snapshot.Template.Cells(); !equalCells(out, grooveCells) {
		t.Log("out     ", out)
		t.Log("expected", grooveCells)
		t.Fail()
	}

	// The tempo override must not stick to the engine.
	if e.BPM() != 120 || e.BaseNote() != 4 {
		t.Log("tempo   ", e.BPM(), e.BaseNote())
		t.Log("expected", 120, 4)
		t.Fail()
	}
}

func TestEditActiveDefaults(t *testing.T) {
	e := testEngine(t)
	s := grooveStore(t, e)
	before := s.Current()

	if err := s.EditActive(e, EditOptions{}); nil != err {
		t.Fatal(err)
	}

	c := s.Current()
	if c == before {
		t.Log("expected a fresh render even without overrides")
		t.Fail()
	}
	if c.BPM != before.BPM || c.BaseNote != before.BaseNote ||
		c.NumMeasures != before.NumMeasures || c.Repeatable != before.Repeatable {
		t.Log("got     ", c.BPM, c.BaseNote, c.NumMeasures, c.Repeatable)
		t.Log("expected the previous settings to carry over")
		t.Fail()
	}
	if !equalCells(c.Template.Cells(), before.Template.Cells()) {
		t.Log("expected the grid to carry over")
		t.Fail()
	}
	if c.Len() != before.Len() {
		t.Log("len     ", c.Len())
		t.Log("expected", before.Len())
		t.Fail()
	}
}

func TestEditActiveRepeatable(t *testing.T) {
	e := testEngine(t)
	s := grooveStore(t, e)
	before := s.Current()

	oneshot := false
	if err := s.EditActive(e, EditOptions{Repeatable: &oneshot}); nil != err {
		t.Fatal(err)
	}

	c := s.Current()
	if c.Repeatable {
		t.Log("expected an explicit false to be honored")
		t.Fail()
	}
	if c.Len() <= before.Len() {
		t.Log("len     ", c.Len())
		t.Log("expected a ring out tail beyond", before.Len())
		t.Fail()
	}
}

func TestEditActiveNoCurrent(t *testing.T) {
	e := testEngine(t)
	s := New()
	if err := s.EditActive(e, EditOptions{}); !errors.Is(err, ErrNoComposition) {
		t.Log("err     ", err)
		t.Log("expected", ErrNoComposition)
		t.Fail()
	}
}

func TestEditActiveBadTempo(t *testing.T) {
	e := testEngine(t)
	s := grooveStore(t, e)
	before := s.Current()

	bpm := -5
	err := s.EditActive(e, EditOptions{BPM: &bpm})
	if !errors.Is(err, engine.ErrInvalidTempo) {
		t.Log("err     ", err)
		t.Log("expected", engine.ErrInvalidTempo)
		t.Fail()
	}
	if s.Current() != before {
		t.Log("expected a failed edit to keep the current beat")
		t.Fail()
	}
	if e.BPM() != 120 || e.BaseNote() != 4 {
		t.Log("tempo   ", e.BPM(), e.BaseNote())
		t.Log("expected", 120, 4)
		t.Fail()
	}
}

func TestEditActiveBadShortcut(t *testing.T) {
	e := testEngine(t)
	s := grooveStore(t, e)
	before := s.Current()

	bpm := 90
	err := s.EditActive(e, EditOptions{
		BPM:    &bpm,
		Remove: []beat.Shortcut{beat.OnBeats("kick", 40)},
	})
	if !errors.Is(err, beat.ErrBeatIndex) {
		t.Log("err     ", err)
		t.Log("expected", beat.ErrBeatIndex)
		t.Fail()
	}
	if s.Current() != before {
		t.Log("expected a failed edit to keep the current beat")
		t.Fail()
	}
	if out := before.Template.Cells(); !equalCells(out, grooveCells) {
		t.Log("out     ", out)
		t.Log("expected the grid to be untouched")
		t.Fail()
	}
	if e.BPM() != 120 {
		t.Log("bpm     ", e.BPM())
		t.Log("expected the tempo override to be rolled back")
		t.Fail()
	}
}

func TestEditActiveUnknownClip(t *testing.T) {
	e := testEngine(t)
	s := grooveStore(t, e)
	before := s.Current()

	err := s.EditActive(e, EditOptions{
		Add: []beat.Shortcut{beat.OnEveryBeat("vuvuzela")},
	})
	if !errors.Is(err, engine.ErrUnknownClip) {
		t.Log("err     ", err)
		t.Log("expected", engine.ErrUnknownClip)
		t.Fail()
	}
	if s.Current() != before {
		t.Log("expected a failed edit to keep the current beat")
		t.Fail()
	}
}
