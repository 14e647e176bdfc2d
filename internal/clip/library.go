package clip

import (
	"sort"

	"github.com/faiface/beep"
)

// Library holds the oneshots a composition can reference, keyed by name.
// It is filled during setup, before any rendering starts.
type Library struct {
	format beep.Format
	clips  map[string]*Clip
}

func NewLibrary(format beep.Format) *Library {
	return &Library{format: format, clips: map[string]*Clip{}}
}

// Add shelves the clip, replacing any previous clip with the same name.
func (l *Library) Add(c *Clip) {
	l.clips[c.Name()] = c
}

func (l *Library) Get(name string) (*Clip, bool) {
	c, ok := l.clips[name]
	return c, ok
}

func (l *Library) Len() int {
	return len(l.clips)
}

func (l *Library) Format() beep.Format {
	return l.format
}

// Names lists the held clip names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.clips))
	for name := range l.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
