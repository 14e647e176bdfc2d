package clip

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep/wav"
)

func writeWav(t *testing.T, dir, name string, c *Clip) string {
	t.Helper()
	file := filepath.Join(dir, name)
	f, err := os.Create(file)
	if nil != err {
		t.Fatal(err)
	}
	if err := wav.Encode(f, c.Streamer(), c.Format()); nil != err {
		t.Fatal(err)
	}
	if err := f.Close(); nil != err {
		t.Fatal(err)
	}
	return file
}

func TestLoadWavRoundtrip(t *testing.T) {
	c := steadyClip("tick", 4410, 0.25)
	file := writeWav(t, t.TempDir(), "tick.wav", c)

	loader := &DefaultLoader{Target: testFormat()}
	out, err := loader.Load(file, "")
	if nil != err {
		t.Fatal(err)
	}

	if out.Name() != "tick" {
		t.Log("name    ", out.Name())
		t.Log("expected", "tick")
		t.Fail()
	}
	if out.Len() != c.Len() {
		t.Log("len     ", out.Len())
		t.Log("expected", c.Len())
		t.Fail()
	}
	// A 16 bit wav roundtrip quantizes the amplitude a little.
	if s := out.At(0); math.Abs(s[0]-0.25) > 1e-3 || math.Abs(s[1]-0.25) > 1e-3 {
		t.Log("frame   ", s)
		t.Log("expected about", 0.25)
		t.Fail()
	}
}

func TestLoadRename(t *testing.T) {
	file := writeWav(t, t.TempDir(), "tick.wav", steadyClip("tick", 441, 0.5))

	loader := &DefaultLoader{Target: testFormat()}
	out, err := loader.Load(file, "boom")
	if nil != err {
		t.Fatal(err)
	}
	if out.Name() != "boom" {
		t.Log("name    ", out.Name())
		t.Log("expected", "boom")
		t.Fail()
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(file, []byte("not audio"), 0644); nil != err {
		t.Fatal(err)
	}

	loader := &DefaultLoader{Target: testFormat()}
	if _, err := loader.Load(file, ""); !errors.Is(err, ErrClipLoad) {
		t.Log("err     ", err)
		t.Log("expected", ErrClipLoad)
		t.Fail()
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := &DefaultLoader{Target: testFormat()}
	if _, err := loader.Load(filepath.Join(t.TempDir(), "nope.wav"), ""); !errors.Is(err, ErrClipLoad) {
		t.Log("err     ", err)
		t.Log("expected", ErrClipLoad)
		t.Fail()
	}
}

func TestLoadGarbageWav(t *testing.T) {
	file := filepath.Join(t.TempDir(), "broken.wav")
	if err := os.WriteFile(file, []byte("RIFFgarbage"), 0644); nil != err {
		t.Fatal(err)
	}

	loader := &DefaultLoader{Target: testFormat()}
	if _, err := loader.Load(file, ""); !errors.Is(err, ErrClipLoad) {
		t.Log("err     ", err)
		t.Log("expected", ErrClipLoad)
		t.Fail()
	}
}
