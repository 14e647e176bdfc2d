package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/jontwo/beatboxer/internal/beat"
)

// DefaultOutput plays compositions through the speaker and exports them
// as wav files.
type DefaultOutput struct {
	rate beep.SampleRate
}

// Play blocks until the whole composition has sounded.
func (o *DefaultOutput) Play(c *beat.Composition) error {
	if nil == c {
		return errors.New("no beat to play")
	}
	if err := o.init(c.Format); nil != err {
		return err
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(c.Streamer(), beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}

// init brings the speaker up, once per sample rate.
func (o *DefaultOutput) init(format beep.Format) error {
	if o.rate == format.SampleRate {
		return nil
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); nil != err {
		return fmt.Errorf("unable to init speaker: %w", err)
	}
	o.rate = format.SampleRate
	return nil
}

func (o *DefaultOutput) Export(c *beat.Composition, dir, name, format string) error {
	if nil == c {
		return fmt.Errorf("%w: no beat to export", ErrExport)
	}
	if format == "" {
		format = "wav"
	}
	if format != "wav" {
		return fmt.Errorf("%w: no encoder for %q", ErrExport, format)
	}
	if err := os.MkdirAll(dir, 0755); nil != err {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	file, err := os.Create(filepath.Join(dir, name+"."+format))
	if nil != err {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	if err := wav.Encode(file, c.Streamer(), c.Format); nil != err {
		file.Close()
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	if err := file.Close(); nil != err {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}
