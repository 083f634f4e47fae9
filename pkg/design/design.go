// Package design holds weld designs: named grooves and workpieces produced
// by DSL evaluation or read from tagged tree documents.
package design

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/chazu/weldgroove/pkg/groove"
)

// Kind enumerates the entry types of a design.
type Kind int

const (
	KindGroove    Kind = iota // ISO 9692-1 groove
	KindWorkpiece             // workpiece description
)

func (k Kind) String() string {
	switch k {
	case KindGroove:
		return "groove"
	case KindWorkpiece:
		return "workpiece"
	default:
		return "unknown"
	}
}

// SourceRef locates the DSL form that created an entry.
type SourceRef struct {
	Line int `json:"line,omitempty"`
	Col  int `json:"col,omitempty"`
}

// Entry is one named element of a design.
type Entry struct {
	Name   string    `json:"name"`
	Kind   Kind      `json:"kind"`
	Source SourceRef `json:"source"`
	Data   EntryData `json:"data"`
}

// EntryData is the kind-specific payload of an entry.
type EntryData interface {
	entryData()
}

// GrooveData wraps a groove instance.
type GrooveData struct {
	Groove groove.Groove
}

func (GrooveData) entryData() {}

// Workpiece describes the workpiece a groove is cut into. Geometry is a free
// form description.
type Workpiece struct {
	Geometry string `json:"geometry,omitempty"`
}

func (Workpiece) entryData() {}

// Design is the result of one evaluation. It is never mutated after it is
// returned; each evaluation produces a new design.
type Design struct {
	Entries   []*Entry       `json:"entries"`
	NameIndex map[string]int `json:"name_index"`
	Units     string         `json:"units"`
}

// New creates an empty design in millimetres.
func New() *Design {
	return &Design{
		NameIndex: make(map[string]int),
		Units:     "mm",
	}
}

// Add appends an entry. It does not check for duplicate names; the last
// entry added under a name wins the index and Validate reports the clash.
func (d *Design) Add(e *Entry) {
	d.Entries = append(d.Entries, e)
	if e.Name != "" {
		d.NameIndex[e.Name] = len(d.Entries) - 1
	}
}

// AddGroove is shorthand for adding a groove entry.
func (d *Design) AddGroove(name string, g groove.Groove) *Entry {
	e := &Entry{Name: name, Kind: KindGroove, Data: GrooveData{Groove: g}}
	d.Add(e)
	return e
}

// AddWorkpiece is shorthand for adding a workpiece entry.
func (d *Design) AddWorkpiece(name string, w Workpiece) *Entry {
	e := &Entry{Name: name, Kind: KindWorkpiece, Data: w}
	d.Add(e)
	return e
}

// Lookup returns the entry with the given name, or nil.
func (d *Design) Lookup(name string) *Entry {
	i, ok := d.NameIndex[name]
	if !ok || i < 0 || i >= len(d.Entries) {
		return nil
	}
	return d.Entries[i]
}

// MustLookup returns the entry with the given name, or panics.
func (d *Design) MustLookup(name string) *Entry {
	e := d.Lookup(name)
	if e == nil {
		panic(fmt.Sprintf("design: no entry named %q", name))
	}
	return e
}

// Groove returns the groove stored under name.
func (d *Design) Groove(name string) (groove.Groove, bool) {
	e := d.Lookup(name)
	if e == nil {
		return nil, false
	}
	gd, ok := e.Data.(GrooveData)
	return gd.Groove, ok
}

// Grooves returns all groove entries in insertion order.
func (d *Design) Grooves() []*Entry {
	return lo.Filter(d.Entries, func(e *Entry, _ int) bool { return e.Kind == KindGroove })
}

// Workpieces returns all workpiece entries in insertion order.
func (d *Design) Workpieces() []*Entry {
	return lo.Filter(d.Entries, func(e *Entry, _ int) bool { return e.Kind == KindWorkpiece })
}

// Names returns the entry names in insertion order.
func (d *Design) Names() []string {
	return lo.Map(d.Entries, func(e *Entry, _ int) string { return e.Name })
}

// Len returns the number of entries.
func (d *Design) Len() int {
	return len(d.Entries)
}
