// Package tagtree reads and writes tagged tree documents: YAML mappings in
// which domain values (grooves, quantities, workpieces) appear as mapping
// nodes carrying an ASDF-style tag URI. Converters translate between Go
// values and their untagged field mappings.
package tagtree

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownTag is returned when a document holds a tag no converter serves.
var ErrUnknownTag = errors.New("unknown tag")

// ErrUnsupportedValue is returned when a document value has no tree form.
var ErrUnsupportedValue = errors.New("unsupported value")

// Converter maps one Go type to a tagged mapping node.
type Converter interface {
	// Tag returns the full tag URI.
	Tag() string
	// Match reports whether the converter serves v.
	Match(v any) bool
	// ToTree returns the field mapping of v. Nil values are dropped.
	ToTree(v any) (map[string]any, error)
	// FromTree rebuilds a value from a decoded field mapping.
	FromTree(tree map[string]any) (any, error)
}

// Registry dispatches converters by Go value when writing and by tag when
// reading. A Registry is safe for concurrent use once built.
type Registry struct {
	converters []Converter
	byTag      map[string]Converter
}

// NewRegistry returns a registry with the quantity and groove converters
// plus extra.
func NewRegistry(extra ...Converter) *Registry {
	r := &Registry{byTag: map[string]Converter{}}
	for _, c := range append([]Converter{QuantityConverter{}, GrooveConverter{}}, extra...) {
		if _, dup := r.byTag[c.Tag()]; dup {
			panic("tagtree: duplicate converter for " + c.Tag())
		}
		r.converters = append(r.converters, c)
		r.byTag[c.Tag()] = c
	}
	return r
}

var defaultRegistry = NewRegistry()

// Write encodes doc with the default registry.
func Write(w io.Writer, doc map[string]any) error {
	return defaultRegistry.Write(w, doc)
}

// Read decodes a document with the default registry.
func Read(r io.Reader) (map[string]any, error) {
	return defaultRegistry.Read(r)
}

// Write encodes doc as a YAML document.
func (r *Registry) Write(w io.Writer, doc map[string]any) error {
	root, err := r.encode(StripEmpty(doc))
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("tagtree: encode: %w", err)
	}
	return enc.Close()
}

// Read decodes a YAML document. Tagged nodes are rebuilt by their
// converters; everything else becomes maps, slices and scalars.
func (r *Registry) Read(rd io.Reader) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(rd).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("tagtree: decode: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("tagtree: expected a single document")
	}
	v, err := r.decode(doc.Content[0])
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("tagtree: document root is %T, want a mapping", v)
	}
	return m, nil
}

func (r *Registry) match(v any) Converter {
	for _, c := range r.converters {
		if c.Match(v) {
			return c
		}
	}
	return nil
}

func (r *Registry) encode(v any) (*yaml.Node, error) {
	if c := r.match(v); c != nil {
		tree, err := c.ToTree(v)
		if err != nil {
			return nil, fmt.Errorf("tagtree: %s: %w", c.Tag(), err)
		}
		n, err := r.encodeMap(StripEmpty(tree))
		if err != nil {
			return nil, err
		}
		n.Tag = c.Tag()
		return n, nil
	}

	switch val := v.(type) {
	case map[string]any:
		return r.encodeMap(val)
	case []any:
		return r.encodeSeq(val)
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return r.encodeSeq(items)
	case string, bool, int, int64, float64:
		n := &yaml.Node{}
		if err := n.Encode(val); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func (r *Registry) encodeMap(m map[string]any) (*yaml.Node, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		val, err := r.encode(m[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, val)
	}
	return n, nil
}

func (r *Registry) encodeSeq(items []any) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for i, it := range items {
		val, err := r.encode(it)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		n.Content = append(n.Content, val)
	}
	return n, nil
}

// custom reports whether a resolved node tag is a domain tag rather than a
// YAML core tag.
func custom(tag string) bool {
	return tag != "" && !strings.HasPrefix(tag, "!!") && !strings.HasPrefix(tag, "tag:yaml.org,2002:")
}

func (r *Registry) decode(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode {
		return r.decode(n.Alias)
	}
	if custom(n.Tag) {
		c, ok := r.byTag[n.Tag]
		if !ok {
			return nil, fmt.Errorf("%w: %s (line %d)", ErrUnknownTag, n.Tag, n.Line)
		}
		if n.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("tagtree: %s at line %d is not a mapping", n.Tag, n.Line)
		}
		tree, err := r.decodeMap(n)
		if err != nil {
			return nil, err
		}
		v, err := c.FromTree(tree)
		if err != nil {
			return nil, fmt.Errorf("tagtree: %s at line %d: %w", n.Tag, n.Line, err)
		}
		return v, nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		return r.decodeMap(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := r.decode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("tagtree: line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("tagtree: unexpected node kind %v at line %d", n.Kind, n.Line)
	}
}

func (r *Registry) decodeMap(n *yaml.Node) (map[string]any, error) {
	out := make(map[string]any, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i].Value
		v, err := r.decode(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// StripEmpty returns a copy of m without nil values, recursing into nested
// mappings. Typed nil pointers count as nil.
func StripEmpty(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if isNil(v) {
			continue
		}
		if sub, ok := v.(map[string]any); ok {
			v = StripEmpty(sub)
		}
		out[k] = v
	}
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
