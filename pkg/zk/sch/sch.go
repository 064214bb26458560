package zksch

import (
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/eqcheck/pkg/hash"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/math/sample"
)

// Proof is a non-interactive Schnorr proof of knowledge of x such that X = x⋅G.
type Proof struct {
	// C = a⋅G
	C curve.Point
	// Z = a + e⋅x (mod q)
	Z curve.Scalar
}

// NewProof proves knowledge of private, the discrete logarithm of public.
//
// The challenge is derived from a copy of h, so h itself is left untouched.
// A nil h is treated as a fresh hash.New().
func NewProof(rand io.Reader, h *hash.Hash, public curve.Point, private curve.Scalar) *Proof {
	group := public.Curve()
	a, C := sample.ScalarPointPair(rand, group)
	e := challenge(h, group, public, C)
	return &Proof{
		C: C,
		Z: e.Mul(private).Add(a),
	}
}

// IsValid returns false if the proof is incomplete, or mixes groups.
func (p *Proof) IsValid(group curve.Curve) bool {
	if p == nil || p.C == nil || p.Z == nil {
		return false
	}
	if !curve.InGroup(group, p.C) || p.Z.Curve().Name() != group.Name() {
		return false
	}
	if p.C.IsIdentity() {
		return false
	}
	return true
}

// Verify checks that Z⋅G = C + e⋅X, with the challenge derived from h.
//
// The identity is rejected as a public key.
func (p *Proof) Verify(h *hash.Hash, public curve.Point) bool {
	if public == nil || public.IsIdentity() {
		return false
	}
	group := public.Curve()
	if !p.IsValid(group) {
		return false
	}

	e := challenge(h, group, public, p.C)

	lhs := p.Z.ActOnBase()        // lhs = z⋅G
	rhs := e.Act(public).Add(p.C) // rhs = C+e⋅X
	return lhs.Equal(rhs)
}

func challenge(h *hash.Hash, group curve.Curve, public, commitment curve.Point) curve.Scalar {
	if h == nil {
		h = hash.New()
	} else {
		h = h.Clone()
	}
	_ = h.WriteAny(group.NewBasePoint(), public, commitment)
	return sample.Scalar(h.Digest(), group)
}

type proofCBOR struct {
	C *curve.MarshallablePoint
	Z *curve.MarshallableScalar
}

func (p *Proof) MarshalCBOR() ([]byte, error) {
	if p.C == nil || p.Z == nil {
		return nil, errors.New("zksch.Proof: nil field")
	}
	return cbor.Marshal(proofCBOR{
		C: curve.NewMarshallablePoint(p.C),
		Z: curve.NewMarshallableScalar(p.Z),
	})
}

func (p *Proof) UnmarshalCBOR(data []byte) error {
	var decoded proofCBOR
	if err := cbor.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.C == nil || decoded.Z == nil || decoded.C.Point == nil || decoded.Z.Scalar == nil {
		return errors.New("zksch.Proof: missing field")
	}
	p.C = decoded.C.Point
	p.Z = decoded.Z.Scalar
	return nil
}
