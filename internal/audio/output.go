package audio

import (
	"errors"

	"github.com/jontwo/beatboxer/internal/beat"
)

// Sentinel errors
var (
	ErrExport = errors.New("unable to export beat")
)

// Player turns a finished composition into sound.
type Player interface {
	Play(c *beat.Composition) error
}

// Exporter persists a finished composition under dir/name.format.
type Exporter interface {
	Export(c *beat.Composition, dir, name, format string) error
}
