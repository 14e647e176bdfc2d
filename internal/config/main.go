package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Out         = kingpin.Flag("out", "Directory finished beats are exported into").Default("outputs").Short('o').String()
	SampleRate  = kingpin.Flag("rate", "Sample rate beats are rendered at").Default("44100").Short('r').Int()
	Samples     = kingpin.Flag("samples", "Directory of extra oneshot files to load").Short('s').String()
	Database    = kingpin.Flag("db", "Path to the beat catalog database").String()
	Recall      = kingpin.Flag("recall", "Re-render this beat from the catalog").String()
	Play        = kingpin.Flag("play", "Play the current beat once composed").Short('p').Bool()
	Interactive = kingpin.Flag("interactive", "Audition stored beats from the keyboard").Short('i').Bool()
	Quiet       = kingpin.Flag("quiet", "Suppress the beat listings").Short('q').Bool()
)

// Parse reads the command line. It must run before any flag value is
// dereferenced.
func Parse() {
	kingpin.Version("0.2.0")
	kingpin.Parse()
}
