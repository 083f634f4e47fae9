package quantity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Quantity
	}{
		{"50 deg", Quantity{Value: 50, Unit: "deg"}},
		{"9mm", Quantity{Value: 9, Unit: "mm"}},
		{" 2.5 in ", Quantity{Value: 2.5, Unit: "in"}},
		{"1e-3 m", Quantity{Value: 1e-3, Unit: "m"}},
		{"0.5 radians", Quantity{Value: 0.5, Unit: "rad"}},
		{"-3 mm", Quantity{Value: -3, Unit: "mm"}},
		{"4", Quantity{Value: 4, Unit: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Parse("mm")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Parse("3 furlongs")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = Parse("NaN mm")
	assert.ErrorIs(t, err, ErrSyntax)

	assert.Panics(t, func() { MustParse("nope") })
}

func TestString(t *testing.T) {
	assert.Equal(t, "50 deg", Q(50, "deg").String())
	assert.Equal(t, "2.5 mm", Q(2.5, "mm").String())
	assert.Equal(t, "9 mm", MustParse("9 mm").String())
	assert.Equal(t, "3", Q(3, "").String())
}

func TestConversion(t *testing.T) {
	v, err := Q(1, "in").In("mm")
	require.NoError(t, err)
	assert.InDelta(t, 25.4, v, 1e-12)

	v, err = Q(180, "deg").Radians()
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, v, 1e-12)

	v, err = Q(2, "cm").Millimeters()
	require.NoError(t, err)
	assert.InDelta(t, 20, v, 1e-12)

	q, err := Q(1500, "mm").To("m")
	require.NoError(t, err)
	assert.Equal(t, "m", q.Unit)
	assert.InDelta(t, 1.5, q.Value, 1e-12)

	_, err = Q(1, "mm").In("deg")
	assert.ErrorIs(t, err, ErrDimension)

	_, err = Quantity{Value: 1, Unit: "parsec"}.In("mm")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestDimension(t *testing.T) {
	assert.True(t, Q(1, "mm").Is(Length))
	assert.True(t, Q(1, "deg").Is(Angle))
	assert.False(t, Q(1, "deg").Is(Length))
	assert.False(t, Quantity{Value: 1, Unit: "bogus"}.Is(Length))

	d, err := Q(1, "").Dimension()
	require.NoError(t, err)
	assert.Equal(t, Dimensionless, d)

	assert.Equal(t, []string{"deg", "rad"}, Units(Angle))
	assert.Equal(t, []string{"cm", "dm", "in", "m", "mm", "um"}, Units(Length))
}

func TestEqualityIsStructural(t *testing.T) {
	assert.Equal(t, Q(9, "mm"), MustParse("9 millimeter"))
	assert.NotEqual(t, Q(9, "mm"), Q(0.9, "cm"))
}
