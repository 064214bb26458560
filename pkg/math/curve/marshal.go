package curve

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// MarshallableScalar wraps a Scalar so that it can be encoded without knowing its group.
//
// The group name travels along with the data, so that decoding can create a
// Scalar of the right concrete type.
type MarshallableScalar struct {
	Scalar Scalar
}

func NewMarshallableScalar(s Scalar) *MarshallableScalar {
	return &MarshallableScalar{Scalar: s}
}

type encodedElement struct {
	Group string
	Data  []byte
}

func (m *MarshallableScalar) MarshalCBOR() ([]byte, error) {
	if m.Scalar == nil {
		return nil, fmt.Errorf("curve.MarshallableScalar: nil scalar")
	}
	data, err := m.Scalar.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(encodedElement{Group: m.Scalar.Curve().Name(), Data: data})
}

func (m *MarshallableScalar) UnmarshalCBOR(data []byte) error {
	var e encodedElement
	if err := cbor.Unmarshal(data, &e); err != nil {
		return err
	}
	group, err := FromName(e.Group)
	if err != nil {
		return err
	}
	s := group.NewScalar()
	if err = s.UnmarshalBinary(e.Data); err != nil {
		return err
	}
	m.Scalar = s
	return nil
}

// MarshallablePoint is the Point counterpart of MarshallableScalar.
type MarshallablePoint struct {
	Point Point
}

func NewMarshallablePoint(p Point) *MarshallablePoint {
	return &MarshallablePoint{Point: p}
}

func (m *MarshallablePoint) MarshalCBOR() ([]byte, error) {
	if m.Point == nil {
		return nil, fmt.Errorf("curve.MarshallablePoint: nil point")
	}
	data, err := m.Point.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(encodedElement{Group: m.Point.Curve().Name(), Data: data})
}

func (m *MarshallablePoint) UnmarshalCBOR(data []byte) error {
	var e encodedElement
	if err := cbor.Unmarshal(data, &e); err != nil {
		return err
	}
	group, err := FromName(e.Group)
	if err != nil {
		return err
	}
	p := group.NewPoint()
	if err = p.UnmarshalBinary(e.Data); err != nil {
		return err
	}
	m.Point = p
	return nil
}
