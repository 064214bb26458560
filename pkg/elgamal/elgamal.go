package elgamal

import (
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/math/sample"
)

type (
	PublicKey = curve.Point
	Nonce     = curve.Scalar
)

// Ciphertext is an exponential ElGamal encryption of a scalar message.
type Ciphertext struct {
	// L = nonce⋅G
	L curve.Point
	// M = message⋅G + nonce⋅public
	M curve.Point
}

// Empty returns a Ciphertext with both components set to the identity of group.
//
// It can be used as a target for decoding.
func Empty(group curve.Curve) *Ciphertext {
	return &Ciphertext{
		L: group.NewPoint(),
		M: group.NewPoint(),
	}
}

// Encrypt returns the encryption of message⋅G under public, along with the nonce used.
func Encrypt(rand io.Reader, public PublicKey, message curve.Scalar) (*Ciphertext, Nonce) {
	return EncryptPoint(rand, public, message.ActOnBase())
}

// EncryptPoint returns the encryption of the group element message under public,
// along with the nonce used. The nonce is never zero.
func EncryptPoint(rand io.Reader, public PublicKey, message curve.Point) (*Ciphertext, Nonce) {
	group := public.Curve()
	nonce := sample.ScalarUnit(rand, group)
	L := nonce.ActOnBase()
	M := message.Add(nonce.Act(public))
	return &Ciphertext{
		L: L,
		M: M,
	}, nonce
}

// Decrypt returns M - secret⋅L, which is message⋅G when c was encrypted to secret⋅G.
func Decrypt(secret curve.Scalar, c *Ciphertext) curve.Point {
	return c.M.Sub(secret.Act(c.L))
}

// Add returns the componentwise sum of c and other.
//
// The result decrypts to the sum of both plaintexts.
func (c *Ciphertext) Add(other *Ciphertext) *Ciphertext {
	return &Ciphertext{
		L: c.L.Add(other.L),
		M: c.M.Add(other.M),
	}
}

// Scale returns k⋅c, which decrypts to k times the plaintext of c.
func (c *Ciphertext) Scale(k curve.Scalar) *Ciphertext {
	return &Ciphertext{
		L: k.Act(c.L),
		M: k.Act(c.M),
	}
}

// Negate returns -c, which decrypts to the negation of the plaintext of c.
func (c *Ciphertext) Negate() *Ciphertext {
	return &Ciphertext{
		L: c.L.Negate(),
		M: c.M.Negate(),
	}
}

// Equal returns true if both components are equal.
func (c *Ciphertext) Equal(other *Ciphertext) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.L.Equal(other.L) && c.M.Equal(other.M)
}

// Valid returns true if both components are set and belong to group.
func (c *Ciphertext) Valid(group curve.Curve) bool {
	if c == nil {
		return false
	}
	return curve.InGroup(group, c.L, c.M)
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (c *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, p := range []curve.Point{c.L, c.M} {
		buf, err := p.MarshalBinary()
		if err != nil {
			return total, err
		}
		n, err := w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*Ciphertext) Domain() string {
	return "ElGamal Ciphertext"
}

type ciphertextCBOR struct {
	L *curve.MarshallablePoint
	M *curve.MarshallablePoint
}

func (c *Ciphertext) MarshalCBOR() ([]byte, error) {
	if c.L == nil || c.M == nil {
		return nil, errors.New("elgamal.Ciphertext: nil component")
	}
	return cbor.Marshal(ciphertextCBOR{
		L: curve.NewMarshallablePoint(c.L),
		M: curve.NewMarshallablePoint(c.M),
	})
}

func (c *Ciphertext) UnmarshalCBOR(data []byte) error {
	var ct ciphertextCBOR
	if err := cbor.Unmarshal(data, &ct); err != nil {
		return err
	}
	if ct.L == nil || ct.M == nil || ct.L.Point == nil || ct.M.Point == nil {
		return errors.New("elgamal.Ciphertext: missing component")
	}
	if ct.L.Point.Curve().Name() != ct.M.Point.Curve().Name() {
		return errors.New("elgamal.Ciphertext: components from different groups")
	}
	c.L = ct.L.Point
	c.M = ct.M.Point
	return nil
}
