// Package quantity provides physical quantities as explicit (magnitude, unit)
// value types. Only the units needed for weld groove geometry are known:
// lengths and plane angles.
package quantity

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownUnit is returned for unit symbols not in the unit table.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrDimension is returned when a quantity has the wrong dimension for
	// the requested operation.
	ErrDimension = errors.New("incompatible dimension")
	// ErrSyntax is returned by Parse for malformed input.
	ErrSyntax = errors.New("invalid quantity syntax")
)

// Dimension is the physical dimension of a unit.
type Dimension int

const (
	Dimensionless Dimension = iota
	Length
	Angle
)

func (d Dimension) String() string {
	switch d {
	case Dimensionless:
		return "dimensionless"
	case Length:
		return "length"
	case Angle:
		return "angle"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// unitInfo describes a unit by its dimension and its factor to the base
// unit of that dimension (mm for lengths, rad for angles).
type unitInfo struct {
	dim    Dimension
	factor float64
}

var units = map[string]unitInfo{
	"":   {Dimensionless, 1},
	"um": {Length, 1e-3},
	"mm": {Length, 1},
	"cm": {Length, 10},
	"dm": {Length, 100},
	"m":  {Length, 1000},
	"in": {Length, 25.4},

	"rad": {Angle, 1},
	"deg": {Angle, math.Pi / 180},
}

// aliases maps accepted spellings onto the canonical unit symbols.
var aliases = map[string]string{
	"micrometer": "um",
	"millimeter": "mm",
	"millimetre": "mm",
	"centimeter": "cm",
	"meter":      "m",
	"metre":      "m",
	"inch":       "in",
	"radian":     "rad",
	"radians":    "rad",
	"degree":     "deg",
	"degrees":    "deg",
}

// Quantity is a magnitude with a unit. Two quantities are equal when both
// magnitude and unit symbol are equal; no conversion is applied.
type Quantity struct {
	Value float64 `yaml:"value"`
	Unit  string  `yaml:"unit"`
}

// Q builds a quantity without validating the unit. Use New when the unit
// comes from user input.
func Q(value float64, unit string) Quantity {
	return Quantity{Value: value, Unit: canonicalUnit(unit)}
}

// New builds a quantity and checks that the unit is known.
func New(value float64, unit string) (Quantity, error) {
	u := canonicalUnit(unit)
	if _, ok := units[u]; !ok {
		return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return Quantity{Value: value, Unit: u}, nil
}

func canonicalUnit(unit string) string {
	u := strings.TrimSpace(unit)
	if a, ok := aliases[u]; ok {
		return a
	}
	return u
}

// Parse reads strings such as "50 deg", "9mm" or "2.5 in".
func Parse(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("%w: empty string", ErrSyntax)
	}

	// Split at the end of the numeric prefix.
	i := 0
	for i < len(s) && strings.IndexByte("+-0123456789.eE", s[i]) >= 0 {
		// An 'e' only belongs to the number if a digit or sign follows.
		if (s[i] == 'e' || s[i] == 'E') && (i+1 >= len(s) || strings.IndexByte("+-0123456789", s[i+1]) < 0) {
			break
		}
		i++
	}
	if i == 0 {
		return Quantity{}, fmt.Errorf("%w: %q has no magnitude", ErrSyntax, s)
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q: %v", ErrSyntax, s, err)
	}
	return New(v, s[i:])
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Quantity {
	q, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("quantity: %v", err))
	}
	return q
}

// Dimension returns the dimension of the quantity's unit.
func (q Quantity) Dimension() (Dimension, error) {
	info, ok := units[q.Unit]
	if !ok {
		return Dimensionless, fmt.Errorf("%w: %q", ErrUnknownUnit, q.Unit)
	}
	return info.dim, nil
}

// Is reports whether q has dimension d. Unknown units are never of any
// dimension.
func (q Quantity) Is(d Dimension) bool {
	got, err := q.Dimension()
	return err == nil && got == d
}

// In converts the magnitude to the given unit of the same dimension.
func (q Quantity) In(unit string) (float64, error) {
	from, ok := units[q.Unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, q.Unit)
	}
	u := canonicalUnit(unit)
	to, ok := units[u]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	if from.dim != to.dim {
		return 0, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)", ErrDimension, q, from.dim, u, to.dim)
	}
	if q.Unit == u {
		return q.Value, nil
	}
	return q.Value * from.factor / to.factor, nil
}

// To returns q expressed in unit.
func (q Quantity) To(unit string) (Quantity, error) {
	v, err := q.In(unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: v, Unit: canonicalUnit(unit)}, nil
}

// Millimeters returns the magnitude of a length in mm.
func (q Quantity) Millimeters() (float64, error) {
	return q.In("mm")
}

// Radians returns the magnitude of an angle in rad.
func (q Quantity) Radians() (float64, error) {
	return q.In("rad")
}

// IsZero reports whether the magnitude is zero.
func (q Quantity) IsZero() bool {
	return q.Value == 0
}

// String formats the quantity in short form, e.g. "50 deg" or "2.5 mm".
func (q Quantity) String() string {
	v := strconv.FormatFloat(q.Value, 'f', -1, 64)
	if q.Unit == "" {
		return v
	}
	return v + " " + q.Unit
}

// Units returns the known canonical unit symbols of dimension d, sorted.
func Units(d Dimension) []string {
	var out []string
	for sym, info := range units {
		if info.dim == d && sym != "" {
			out = append(out, sym)
		}
	}
	sort.Strings(out)
	return out
}
