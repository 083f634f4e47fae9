package design

import (
	"fmt"
	"io"
	"sort"

	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/tagtree"
)

// WorkpieceConverter maps Workpiece to {geometry}.
type WorkpieceConverter struct{}

func (WorkpieceConverter) Tag() string { return tagtree.WorkpieceTag }

func (WorkpieceConverter) Match(v any) bool {
	_, ok := v.(Workpiece)
	return ok
}

func (WorkpieceConverter) ToTree(v any) (map[string]any, error) {
	w := v.(Workpiece)
	tree := map[string]any{}
	if w.Geometry != "" {
		tree["geometry"] = w.Geometry
	}
	return tree, nil
}

func (WorkpieceConverter) FromTree(tree map[string]any) (any, error) {
	var w Workpiece
	if g, ok := tree["geometry"]; ok {
		s, ok := g.(string)
		if !ok {
			return nil, fmt.Errorf("geometry is %T, want string", g)
		}
		w.Geometry = s
	}
	return w, nil
}

// Documents reads and writes design documents.
var Documents = tagtree.NewRegistry(WorkpieceConverter{})

// ToDocument maps every named entry to its value.
func ToDocument(d *Design) (map[string]any, error) {
	doc := make(map[string]any, d.Len())
	for _, e := range d.Entries {
		if _, dup := doc[e.Name]; dup {
			return nil, fmt.Errorf("design: duplicate entry %q", e.Name)
		}
		switch data := e.Data.(type) {
		case GrooveData:
			doc[e.Name] = data.Groove
		case Workpiece:
			doc[e.Name] = data
		default:
			return nil, fmt.Errorf("design: entry %q carries %T", e.Name, e.Data)
		}
	}
	return doc, nil
}

// FromDocument builds a design from a decoded document. Documents do not
// keep order, so entries are added sorted by name.
func FromDocument(doc map[string]any) (*Design, error) {
	names := make([]string, 0, len(doc))
	for k := range doc {
		names = append(names, k)
	}
	sort.Strings(names)

	d := New()
	for _, name := range names {
		switch v := doc[name].(type) {
		case groove.Groove:
			d.AddGroove(name, v)
		case Workpiece:
			d.AddWorkpiece(name, v)
		default:
			return nil, fmt.Errorf("design: entry %q is %T, want a groove or workpiece", name, v)
		}
	}
	return d, nil
}

// Write encodes a design as a tagged tree document.
func Write(w io.Writer, d *Design) error {
	doc, err := ToDocument(d)
	if err != nil {
		return err
	}
	return Documents.Write(w, doc)
}

// Read decodes a design from a tagged tree document.
func Read(r io.Reader) (*Design, error) {
	doc, err := Documents.Read(r)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}
