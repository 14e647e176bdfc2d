package clip

import "errors"

// Sentinel errors
var (
	ErrClipLoad = errors.New("unable to load oneshot")
)

// Loader decodes an audio file into a clip at the library rate. The
// name overrides the clip name, the file basename is used when empty.
type Loader interface {
	Load(file, name string) (*Clip, error)
}
