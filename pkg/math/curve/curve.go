package curve

import (
	"encoding"
	"fmt"

	"github.com/cronokirby/saferith"
)

// Curve represents a prime-order group.
//
// The name is kept for consistency with the rest of the module, but nothing here
// assumes Weierstrass form: Ristretto255 is a prime-order group built on top of
// edwards25519.
type Curve interface {
	// NewPoint returns the identity element of the group.
	NewPoint() Point
	// NewBasePoint returns the fixed generator G of the group.
	NewBasePoint() Point
	// NewScalar returns the zero scalar.
	NewScalar() Scalar
	// Name returns a unique name for this group, used in encodings and transcripts.
	Name() string
	// ScalarBits returns the number of bits needed to represent a scalar.
	ScalarBits() int
	// SafeScalarBytes returns the number of random bytes to read so that
	// reducing them modulo the order gives a statistically uniform scalar.
	SafeScalarBytes() int
	// Order returns q, the order of the group.
	Order() *saferith.Modulus
}

// Scalar represents an element of ℤ_q.
//
// Arithmetic methods modify the receiver and return it, so that calls can be chained.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	// Add sets s = s + that, returning s.
	Add(Scalar) Scalar
	// Sub sets s = s - that, returning s.
	Sub(Scalar) Scalar
	// Mul sets s = s * that, returning s.
	Mul(Scalar) Scalar
	// Invert sets s = s⁻¹, returning s. The inverse of 0 is 0.
	Invert() Scalar
	// Negate sets s = -s, returning s.
	Negate() Scalar
	Equal(Scalar) bool
	IsZero() bool
	// Set sets s = that, returning s.
	Set(Scalar) Scalar
	// SetNat sets s = x mod q, returning s.
	SetNat(*saferith.Nat) Scalar
	// Act returns s⋅P.
	Act(Point) Point
	// ActOnBase returns s⋅G.
	ActOnBase() Point
}

// Point represents an element of the group.
//
// Points are values: Add, Sub and Negate return new points, and leave their
// arguments untouched.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Set(Point) Point
	Equal(Point) bool
	IsIdentity() bool
}

// FromName returns the group registered under name.
func FromName(name string) (Curve, error) {
	switch name {
	case Ristretto255{}.Name():
		return Ristretto255{}, nil
	case Secp256k1{}.Name():
		return Secp256k1{}, nil
	default:
		return nil, fmt.Errorf("curve: unknown group %q", name)
	}
}
