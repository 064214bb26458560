// Package zkdleq implements a Chaum-Pedersen proof of equality of discrete logarithms.
//
// Given bases A and B, the prover shows knowledge of x such that X = x⋅A and Y = x⋅B.
package zkdleq

import (
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/eqcheck/pkg/hash"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/math/sample"
)

// Public is the statement being proven.
type Public struct {
	// A, B are the two bases.
	A, B curve.Point
	// X = x⋅A, Y = x⋅B
	X, Y curve.Point
}

type Commitment struct {
	// CA = a⋅A
	CA curve.Point
	// CB = a⋅B
	CB curve.Point
}

type Proof struct {
	*Commitment
	// Z = a + e⋅x (mod q)
	Z curve.Scalar
}

func (public Public) group() curve.Curve {
	if public.A == nil {
		return nil
	}
	return public.A.Curve()
}

func (public Public) valid() bool {
	group := public.group()
	return group != nil && curve.InGroup(group, public.A, public.B, public.X, public.Y)
}

// IsValid returns false if the proof is incomplete, or not over group.
func (p *Proof) IsValid(group curve.Curve) bool {
	if p == nil || p.Commitment == nil || p.Z == nil {
		return false
	}
	if !curve.InGroup(group, p.CA, p.CB) || p.Z.Curve().Name() != group.Name() {
		return false
	}
	return true
}

// NewProof proves that x is the discrete logarithm of both public.X and public.Y,
// in bases public.A and public.B respectively.
//
// The challenge is derived from a copy of h, and a nil h is treated as a fresh hash.New().
func NewProof(rand io.Reader, h *hash.Hash, public Public, x curve.Scalar) *Proof {
	group := public.group()
	a := sample.ScalarUnit(rand, group)
	commitment := &Commitment{
		CA: a.Act(public.A),
		CB: a.Act(public.B),
	}
	e := challenge(h, group, public, commitment)
	return &Proof{
		Commitment: commitment,
		Z:          e.Mul(x).Add(a),
	}
}

// Verify returns true if z⋅A = CA + e⋅X and z⋅B = CB + e⋅Y.
func (p *Proof) Verify(h *hash.Hash, public Public) bool {
	if !public.valid() {
		return false
	}
	group := public.group()
	if !p.IsValid(group) {
		return false
	}

	e := challenge(h, group, public, p.Commitment)

	{
		lhs := p.Z.Act(public.A)         // lhs = z⋅A
		rhs := e.Act(public.X).Add(p.CA) // rhs = CA+e⋅X
		if !lhs.Equal(rhs) {
			return false
		}
	}

	{
		lhs := p.Z.Act(public.B)         // lhs = z⋅B
		rhs := e.Act(public.Y).Add(p.CB) // rhs = CB+e⋅Y
		if !lhs.Equal(rhs) {
			return false
		}
	}

	return true
}

func challenge(h *hash.Hash, group curve.Curve, public Public, commitment *Commitment) curve.Scalar {
	if h == nil {
		h = hash.New()
	} else {
		h = h.Clone()
	}
	_ = h.WriteAny(public.A, public.B, public.X, public.Y, commitment.CA, commitment.CB)
	return sample.Scalar(h.Digest(), group)
}

type proofCBOR struct {
	CA *curve.MarshallablePoint
	CB *curve.MarshallablePoint
	Z  *curve.MarshallableScalar
}

func (p *Proof) MarshalCBOR() ([]byte, error) {
	if p.Commitment == nil || p.CA == nil || p.CB == nil || p.Z == nil {
		return nil, errors.New("zkdleq.Proof: nil field")
	}
	return cbor.Marshal(proofCBOR{
		CA: curve.NewMarshallablePoint(p.CA),
		CB: curve.NewMarshallablePoint(p.CB),
		Z:  curve.NewMarshallableScalar(p.Z),
	})
}

func (p *Proof) UnmarshalCBOR(data []byte) error {
	var decoded proofCBOR
	if err := cbor.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.CA == nil || decoded.CB == nil || decoded.Z == nil ||
		decoded.CA.Point == nil || decoded.CB.Point == nil || decoded.Z.Scalar == nil {
		return errors.New("zkdleq.Proof: missing field")
	}
	p.Commitment = &Commitment{CA: decoded.CA.Point, CB: decoded.CB.Point}
	p.Z = decoded.Z.Scalar
	return nil
}
