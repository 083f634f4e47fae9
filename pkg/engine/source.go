package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/chazu/weldgroove/pkg/design"
)

// entryForm matches the head of a form that adds a named entry, e.g.
// (defgroove "root" ...) or (workpiece "plates" ...).
var entryForm = regexp.MustCompile(`\((defgroove|workpiece)\s+"((?:[^"\\]|\\.)*)"`)

type formKey struct {
	kind design.Kind
	name string
}

// locateEntries records where each entry of d was defined in source. Forms
// are paired with entries of the same kind and name in order of appearance.
// Entries whose name is computed at run time keep a zero SourceRef.
func locateEntries(source string, d *design.Design) {
	forms := map[formKey][]design.SourceRef{}
	for _, m := range entryForm.FindAllStringSubmatchIndex(source, -1) {
		if inComment(source, m[0]) {
			continue
		}
		name, err := strconv.Unquote(`"` + source[m[4]:m[5]] + `"`)
		if err != nil {
			continue
		}
		kind := design.KindGroove
		if source[m[2]:m[3]] == "workpiece" {
			kind = design.KindWorkpiece
		}
		k := formKey{kind, name}
		forms[k] = append(forms[k], position(source, m[0]))
	}

	for _, e := range d.Entries {
		k := formKey{e.Kind, e.Name}
		if refs := forms[k]; len(refs) > 0 {
			e.Source = refs[0]
			forms[k] = refs[1:]
		}
	}
}

// inComment reports whether offset follows a ';' on its line.
func inComment(source string, offset int) bool {
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	return strings.IndexByte(source[start:offset], ';') >= 0
}

// position converts a byte offset into a 1-based line and column.
func position(source string, offset int) design.SourceRef {
	before := source[:offset]
	return design.SourceRef{
		Line: strings.Count(before, "\n") + 1,
		Col:  offset - strings.LastIndexByte(before, '\n'),
	}
}
