package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jontwo/beatboxer/internal/beat"
	_ "github.com/mattn/go-sqlite3"
)

// Catalog keeps beats across runs in a sqlite database. The audio is
// not persisted, only the template and the settings needed to render
// it again.
type Catalog struct {
	db *sql.DB
}

func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, fmt.Errorf("unable to open beat catalog: %w", err)
	}

	initStatement := `
	create table if not exists beats
	  (
		  id integer not null primary key,
		  name text not null unique,
		  bpm integer,
		  base_note integer,
		  beats_per_measure integer,
		  num_measures integer,
		  repeatable integer,
		  length_ms integer,
		  template bytearray,
		  created integer
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create beat table: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Entry is one catalog row, everything about a beat except its cells.
type Entry struct {
	Name            string
	BPM             int
	BaseNote        int
	BeatsPerMeasure int
	NumMeasures     int
	Repeatable      bool
	Length          time.Duration
	Created         time.Time
}

// Save upserts the composition under name.
func (c *Catalog) Save(name string, comp *beat.Composition) error {
	if nil == comp {
		return fmt.Errorf("%w: nothing to save under %q", ErrNoComposition, name)
	}
	data, err := json.Marshal(comp.Template.Cells())
	if nil != err {
		return fmt.Errorf("unable to marshal template: %w", err)
	}
	_, err = c.db.Exec(
		"insert or replace into beats(name, bpm, base_note, beats_per_measure, num_measures, repeatable, length_ms, template, created) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		name, comp.BPM, comp.BaseNote, comp.BeatsPerMeasure, comp.NumMeasures,
		comp.Repeatable, comp.Duration().Milliseconds(), data, time.Now().Unix())
	if nil != err {
		return fmt.Errorf("unable to save beat %q: %w", name, err)
	}
	return nil
}

// List returns every cataloged beat, newest first.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query(
		"select name, bpm, base_note, beats_per_measure, num_measures, repeatable, length_ms, created from beats order by id desc")
	if nil != err {
		return nil, fmt.Errorf("unable to list beats: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ms, created int64
		if err := rows.Scan(&e.Name, &e.BPM, &e.BaseNote, &e.BeatsPerMeasure,
			&e.NumMeasures, &e.Repeatable, &ms, &created); nil != err {
			return nil, fmt.Errorf("unable to read beat row: %w", err)
		}
		e.Length = time.Duration(ms) * time.Millisecond
		e.Created = time.Unix(created, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Template rebuilds the named beat's grid from its stored cells.
func (c *Catalog) Template(name string) (*beat.Template, error) {
	var data []byte
	err := c.db.QueryRow("select template from beats where name = ?", name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q not in catalog", ErrUnknownBeat, name)
	}
	if nil != err {
		return nil, fmt.Errorf("unable to read beat %q: %w", name, err)
	}
	var cells [][]string
	if err := json.Unmarshal(data, &cells); nil != err {
		return nil, fmt.Errorf("unable to unmarshal template of %q: %w", name, err)
	}
	return beat.FromCells(cells)
}

func (c *Catalog) Close() error {
	return c.db.Close()
}
