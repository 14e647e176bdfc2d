package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/jontwo/beatboxer/internal/audio"
	"github.com/jontwo/beatboxer/internal/beat"
	"github.com/jontwo/beatboxer/internal/clip"
	"github.com/jontwo/beatboxer/internal/config"
	"github.com/jontwo/beatboxer/internal/engine"
	"github.com/jontwo/beatboxer/internal/store"
	"golang.org/x/term"
)

type Program struct {
	Loader   clip.Loader
	Player   audio.Player
	Exporter audio.Exporter

	library *clip.Library
	engine  *engine.Engine
	beats   *store.Store
	catalog *store.Catalog
}

func (p *Program) Init() error {
	// Ensure our Default implementations are used as interfaces
	format := beep.Format{
		SampleRate:  beep.SampleRate(*config.SampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	p.Loader = &clip.DefaultLoader{Target: format}
	output := &audio.DefaultOutput{}
	p.Player = output
	p.Exporter = output

	p.library = clip.DefaultLibrary(format)
	if *config.Samples != "" {
		if err := p.loadSamples(*config.Samples); nil != err {
			return err
		}
	}

	eng, err := engine.New(120, 4, p.library)
	if nil != err {
		return err
	}
	p.engine = eng
	p.beats = store.New()

	if *config.Database != "" {
		catalog, err := store.OpenCatalog(*config.Database)
		if nil != err {
			return err
		}
		p.catalog = catalog
		entries, err := catalog.List()
		if nil != err {
			return err
		}
		if len(entries) > 0 {
			log.Printf("beat catalog already holds %v beats\n", len(entries))
		}
	}
	return nil
}

func (p *Program) Deinit() {
	if nil != p.catalog {
		if err := p.catalog.Close(); nil != err {
			log.Println("unable to close beat catalog:", err)
		}
	}
}

func (p *Program) Run() error {
	if err := p.compose(); nil != err {
		return err
	}
	if !*config.Quiet {
		fmt.Println(p.beats)
	}

	if err := p.rework(); nil != err {
		return err
	}
	if !*config.Quiet {
		fmt.Println("Did some editing...")
		fmt.Println(p.beats)
	}

	if *config.Recall != "" {
		if err := p.recall(*config.Recall); nil != err {
			return err
		}
	}
	if *config.Play {
		if err := p.Player.Play(p.beats.Current()); nil != err {
			return err
		}
	}
	if *config.Interactive {
		return p.audition()
	}
	return nil
}

// loadSamples walks dir and shelves every audio file it can decode.
func (p *Program) loadSamples(dir string) error {
	return filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".wav", ".mp3", ".ogg":
		default:
			return nil
		}
		c, err := p.Loader.Load(file, "")
		if nil != err {
			log.Println("skipping oneshot:", err)
			return nil
		}
		p.library.Add(c)
		return nil
	})
}

func demoShortcuts() []beat.Shortcut {
	return []beat.Shortcut{
		beat.OnEveryBeat("hihat"),
		beat.OnEveryNth(4, beat.Nth("snare", 1)),
		beat.OnEveryNth(3, beat.Nth("kick", 1)),
		beat.OnEveryNth(8, beat.Nth("crash", 0)),
	}
}

// compose builds the three demo beats and shelves them.
func (p *Program) compose() error {
	// Sixteen beats to the measure at 120 bpm, a quarter note per beat
	template, err := beat.NewTemplate(16)
	if nil != err {
		return err
	}
	if err := template.Apply(beat.Append, demoShortcuts()...); nil != err {
		return err
	}
	c, err := p.engine.Render(template, 1, true)
	if nil != err {
		return err
	}
	p.beats.SetCurrent(c)
	if err := p.keep("dope1", c); nil != err {
		return err
	}

	// The same grid over an eighth note base plays twice as fast
	if err := p.engine.SetBaseNote(8); nil != err {
		return err
	}
	template, err = beat.NewTemplate(16)
	if nil != err {
		return err
	}
	if err := template.Apply(beat.Append, demoShortcuts()...); nil != err {
		return err
	}
	c, err = p.engine.Render(template, 4, true)
	if nil != err {
		return err
	}
	p.beats.SetCurrent(c)
	if err := p.keep("dope2", c); nil != err {
		return err
	}

	// Slow down into a three beat feel for twelve measures
	if err := p.engine.SetBPM(100); nil != err {
		return err
	}
	template, err = beat.NewTemplate(3)
	if nil != err {
		return err
	}
	if err := template.Apply(beat.Append,
		beat.OnEveryBeat("hihat"),
		beat.OnEveryNth(3, beat.Nth("snare", 2), beat.Nth("kick", 1)),
	); nil != err {
		return err
	}
	c, err = p.engine.Render(template, 12, true)
	if nil != err {
		return err
	}
	p.beats.SetCurrent(c)
	if err := p.keep("lastly dope", c); nil != err {
		return err
	}

	dope2, ok := p.beats.Get("dope2")
	if !ok {
		return fmt.Errorf("%w: dope2", store.ErrUnknownBeat)
	}
	return p.Exporter.Export(dope2, *config.Out, "dopest", "wav")
}

// rework pulls dope1 back and rebuilds it faster with a new groove.
func (p *Program) rework() error {
	if err := p.beats.Activate("dope1", true); nil != err {
		return err
	}
	bpm, baseNote, measures := 140, 8, 4
	if err := p.beats.EditActive(p.engine, store.EditOptions{
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
		return err
	}
	c := p.beats.Current()
	if err := p.keep("way better than dope1", c); nil != err {
		return err
	}
	return p.Exporter.Export(c, *config.Out, "dopestest", "wav")
}

// recall re-renders a cataloged beat and makes it the active one.
func (p *Program) recall(name string) error {
	if nil == p.catalog {
		return errors.New("recall needs a beat catalog, pass a path with --db")
	}
	entries, err := p.catalog.List()
	if nil != err {
		return err
	}
	var entry *store.Entry
	for i := range entries {
		if entries[i].Name == name {
			entry = &entries[i]
			break
		}
	}
	if nil == entry {
		return fmt.Errorf("%w: %q not in catalog", store.ErrUnknownBeat, name)
	}
	template, err := p.catalog.Template(name)
	if nil != err {
		return err
	}
	if err := p.engine.SetBPM(entry.BPM); nil != err {
		return err
	}
	if err := p.engine.SetBaseNote(entry.BaseNote); nil != err {
		return err
	}
	c, err := p.engine.Render(template, entry.NumMeasures, entry.Repeatable)
	if nil != err {
		return err
	}
	p.beats.SetCurrent(c)
	return p.beats.Store(name, c)
}

// keep shelves the beat and mirrors it into the catalog when one is
// open. A catalog write failure is not worth losing the session over.
func (p *Program) keep(name string, c *beat.Composition) error {
	if err := p.beats.Store(name, c); nil != err {
		return err
	}
	if nil == p.catalog {
		return nil
	}
	if err := p.catalog.Save(name, c); nil != err {
		log.Println("unable to catalog beat:", err)
	}
	return nil
}

// audition plays shelved beats from the number keys until esc or q.
func (p *Program) audition() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("interactive audition needs a terminal")
	}
	keyChannel, err := keyboard.GetKeys(16)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard:", err)
		}
	}()

	names := p.beats.Names()
	for i, name := range names {
		fmt.Printf("%2v) %v\n", i, name)
	}
	fmt.Println("Press a number to play a beat, esc or q to quit")

	for key := range keyChannel {
		if key.Key == keyboard.KeyEsc || key.Rune == 'q' {
			return nil
		}
		index, err := strconv.ParseInt(string(key.Rune), 10, 64)
		if nil != err || index > int64(len(names)-1) {
			continue
		}
		c, ok := p.beats.Get(names[index])
		if !ok {
			continue
		}
		if err := p.Player.Play(c); nil != err {
			return err
		}
	}
	return nil
}
