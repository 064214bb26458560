package curve

import (
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/gtank/ristretto255"
)

var ristretto255OrderNat, _ = new(saferith.Nat).SetHex("1000000000000000000000000000000014DEF9DEA2F79CD65812631A5CF5D3ED")
var ristretto255Order = saferith.ModulusFromNat(ristretto255OrderNat)

const ristretto255Bytes = 32

// Ristretto255 is the prime-order group of RFC 9496, built on edwards25519.
type Ristretto255 struct{}

func (Ristretto255) NewPoint() Point {
	return &Ristretto255Point{value: *ristretto255.NewElement()}
}

func (Ristretto255) NewBasePoint() Point {
	out := ristretto255.NewElement()
	out.Base()
	return &Ristretto255Point{value: *out}
}

func (Ristretto255) NewScalar() Scalar {
	return &Ristretto255Scalar{value: *ristretto255.NewScalar()}
}

func (Ristretto255) Name() string {
	return "ristretto255"
}

func (Ristretto255) ScalarBits() int {
	return 253
}

func (Ristretto255) SafeScalarBytes() int {
	return 64
}

func (Ristretto255) Order() *saferith.Modulus {
	return ristretto255Order
}

// Ristretto255Scalar is an element of ℤ_ℓ, stored in canonical little-endian form.
type Ristretto255Scalar struct {
	value ristretto255.Scalar
}

func ristretto255CastScalar(generic Scalar) *Ristretto255Scalar {
	out, ok := generic.(*Ristretto255Scalar)
	if !ok {
		panic(fmt.Sprintf("failed to convert to ristretto255Scalar: %v", generic))
	}
	return out
}

func (*Ristretto255Scalar) Curve() Curve {
	return Ristretto255{}
}

func (s *Ristretto255Scalar) MarshalBinary() ([]byte, error) {
	return s.value.Bytes(), nil
}

func (s *Ristretto255Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != ristretto255Bytes {
		return fmt.Errorf("invalid length for ristretto255 scalar: %d", len(data))
	}
	if _, err := s.value.SetCanonicalBytes(data); err != nil {
		return errors.New("invalid bytes for ristretto255 scalar")
	}
	return nil
}

func (s *Ristretto255Scalar) Add(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value.Add(&s.value, &other.value)
	return s
}

func (s *Ristretto255Scalar) Sub(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value.Subtract(&s.value, &other.value)
	return s
}

func (s *Ristretto255Scalar) Mul(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value.Multiply(&s.value, &other.value)
	return s
}

func (s *Ristretto255Scalar) Invert() Scalar {
	if s.IsZero() {
		return s
	}
	s.value.Invert(&s.value)
	return s
}

func (s *Ristretto255Scalar) Negate() Scalar {
	s.value.Negate(&s.value)
	return s
}

func (s *Ristretto255Scalar) Equal(that Scalar) bool {
	other, ok := that.(*Ristretto255Scalar)
	if !ok {
		return false
	}
	return s.value.Equal(&other.value) == 1
}

func (s *Ristretto255Scalar) IsZero() bool {
	return s.value.Equal(ristretto255.NewScalar()) == 1
}

func (s *Ristretto255Scalar) Set(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value = other.value
	return s
}

func (s *Ristretto255Scalar) SetNat(x *saferith.Nat) Scalar {
	reduced := new(saferith.Nat).Mod(x, ristretto255Order)
	// saferith is big-endian, ristretto255 wants little-endian
	be := reduced.Bytes()
	le := make([]byte, ristretto255Bytes)
	for i := 0; i < len(be) && i < ristretto255Bytes; i++ {
		le[i] = be[len(be)-1-i]
	}
	if _, err := s.value.SetCanonicalBytes(le); err != nil {
		panic(fmt.Sprintf("ristretto255Scalar.SetNat: reduced value is not canonical: %v", err))
	}
	return s
}

func (s *Ristretto255Scalar) Act(that Point) Point {
	other := ristretto255CastPoint(that)
	out := ristretto255.NewElement()
	out.ScalarMult(&s.value, &other.value)
	return &Ristretto255Point{value: *out}
}

func (s *Ristretto255Scalar) ActOnBase() Point {
	out := ristretto255.NewElement()
	out.ScalarBaseMult(&s.value)
	return &Ristretto255Point{value: *out}
}

// Ristretto255Point is an element of the ristretto255 group.
type Ristretto255Point struct {
	value ristretto255.Element
}

func ristretto255CastPoint(generic Point) *Ristretto255Point {
	out, ok := generic.(*Ristretto255Point)
	if !ok {
		panic(fmt.Sprintf("failed to convert to ristretto255Point: %v", generic))
	}
	return out
}

func (*Ristretto255Point) Curve() Curve {
	return Ristretto255{}
}

func (p *Ristretto255Point) MarshalBinary() ([]byte, error) {
	return p.value.Bytes(), nil
}

func (p *Ristretto255Point) UnmarshalBinary(data []byte) error {
	if len(data) != ristretto255Bytes {
		return fmt.Errorf("invalid length for ristretto255 point: %d", len(data))
	}
	if _, err := p.value.SetCanonicalBytes(data); err != nil {
		return fmt.Errorf("ristretto255Point.UnmarshalBinary: %w", err)
	}
	return nil
}

func (p *Ristretto255Point) Add(that Point) Point {
	other := ristretto255CastPoint(that)

	out := ristretto255.NewElement()
	out.Add(&p.value, &other.value)
	return &Ristretto255Point{value: *out}
}

func (p *Ristretto255Point) Sub(that Point) Point {
	other := ristretto255CastPoint(that)

	out := ristretto255.NewElement()
	out.Subtract(&p.value, &other.value)
	return &Ristretto255Point{value: *out}
}

func (p *Ristretto255Point) Negate() Point {
	out := ristretto255.NewElement()
	out.Negate(&p.value)
	return &Ristretto255Point{value: *out}
}

func (p *Ristretto255Point) Set(that Point) Point {
	other := ristretto255CastPoint(that)

	p.value = other.value
	return p
}

func (p *Ristretto255Point) Equal(that Point) bool {
	other, ok := that.(*Ristretto255Point)
	if !ok {
		return false
	}
	return p.value.Equal(&other.value) == 1
}

func (p *Ristretto255Point) IsIdentity() bool {
	return p.value.Equal(ristretto255.NewElement()) == 1
}
