package clip

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

type DefaultLoader struct {
	// Target is the library format decoded clips are resampled to.
	Target beep.Format
}

func (l *DefaultLoader) Load(file, name string) (*Clip, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, fmt.Errorf("%w: %v", ErrClipLoad, err)
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext := path.Ext(file); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: no decoder for %q", ErrClipLoad, ext)
	}
	if nil != err {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrClipLoad, err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != l.Target.SampleRate {
		source = beep.Resample(4, format.SampleRate, l.Target.SampleRate, streamer)
	}

	samples := make([][2]float64, 0, 4096)
	buf := make([][2]float64, 512)
	for {
		n, ok := source.Stream(buf)
		samples = append(samples, buf[:n]...)
		if !ok {
			break
		}
	}
	if err := streamer.Err(); nil != err {
		return nil, fmt.Errorf("%w: %v", ErrClipLoad, err)
	}

	if name == "" {
		base := path.Base(file)
		name = strings.TrimSuffix(base, path.Ext(base))
	}
	return New(name, samples, l.Target), nil
}
