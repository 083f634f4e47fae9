// Package groove models the ISO 9692-1 weld groove family.
//
// Each groove variant is an immutable value holding its standardized
// parameters as quantities plus the ISO code numbers it stands for. Variants
// are constructed through Get (by registry name and construction keywords)
// or Decode (by tree field names), build their cross section on demand with
// ToProfile, and map onto a tagged tree with Encode.
//
// The variant set is closed: VGroove, VVGroove, UVGroove, UGroove, IGroove,
// HVGroove, HUGroove, DVGroove, DUGroove, DHVGroove, DHUGroove and FFGroove.
// Base is the unspecialized groove and has no shape.
//
// Profile construction follows one policy per variant. Zero root faces,
// zero gaps, zero radii and zero angles give degenerate but valid profiles;
// parameter sets that cannot describe a workpiece (a root face thicker than
// the plate, a bevel of 90° or more, an arc leaving the plate) fail with
// ErrInvalidArgument.
package groove
