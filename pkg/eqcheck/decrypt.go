package eqcheck

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/eqcheck/pkg/elgamal"
	"github.com/taurusgroup/eqcheck/pkg/hash"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/pool"
	zkdleq "github.com/taurusgroup/eqcheck/pkg/zk/dleq"
)

// DecryptionShare is a ciphertext from which one party has removed its share of the key.
type DecryptionShare struct {
	// Residual = L, still to be multiplied by the remaining secrets.
	Residual curve.Point
	// Progress = M - secret⋅L
	Progress curve.Point
}

// Ciphertext returns the share as a ciphertext under the remaining parties' keys.
func (s *DecryptionShare) Ciphertext() *elgamal.Ciphertext {
	return &elgamal.Ciphertext{L: s.Residual, M: s.Progress}
}

func (s *DecryptionShare) valid(group curve.Curve) bool {
	return s != nil && curve.InGroup(group, s.Residual, s.Progress)
}

func decryptionStatement(public curve.Point, ct *elgamal.Ciphertext, share *DecryptionShare) zkdleq.Public {
	return zkdleq.Public{
		A: public.Curve().NewBasePoint(),
		B: ct.L,
		X: public,
		Y: ct.M.Sub(share.Progress), // d = secret⋅L
	}
}

func partialDecrypt(ct *elgamal.Ciphertext, secret curve.Scalar) *DecryptionShare {
	return &DecryptionShare{
		Residual: ct.L,
		Progress: elgamal.Decrypt(secret, ct),
	}
}

// PartialDecryptionAndProof removes key.Secret from each ciphertext, and proves
// that this was done with the secret matching key.Public.
func PartialDecryptionAndProof(rand io.Reader, pl *pool.Pool, h *hash.Hash, cts []*elgamal.Ciphertext, key *KeyPair) ([]*DecryptionShare, []*zkdleq.Proof) {
	h = transcript(h, domainDecryption)
	rand = pl.Reader(rand)

	type result struct {
		share *DecryptionShare
		proof *zkdleq.Proof
	}
	results := pl.Parallelize(len(cts), func(i int) interface{} {
		share := partialDecrypt(cts[i], key.Secret)
		proof := zkdleq.NewProof(rand, positionTranscript(h, i), decryptionStatement(key.Public, cts[i], share), key.Secret)
		return result{share: share, proof: proof}
	})

	shares := make([]*DecryptionShare, len(cts))
	proofs := make([]*zkdleq.Proof, len(cts))
	for i, r := range results {
		res := r.(result)
		shares[i] = res.share
		proofs[i] = res.proof
	}
	return shares, proofs
}

// PartialDecryption removes secret from each ciphertext, without producing proofs.
//
// It is meant for the last party to decrypt, whose result is not sent to anyone.
func PartialDecryption(pl *pool.Pool, cts []*elgamal.Ciphertext, secret curve.Scalar) []*DecryptionShare {
	results := pl.Parallelize(len(cts), func(i int) interface{} {
		return partialDecrypt(cts[i], secret)
	})
	shares := make([]*DecryptionShare, len(cts))
	for i, r := range results {
		shares[i] = r.(*DecryptionShare)
	}
	return shares
}

// VerifyPartialDecryptionProofs checks that shares were obtained from cts with the
// secret matching public.
//
// An error is returned if the vectors have different lengths or contain nil or foreign
// elements. Otherwise the result is true only if every position verifies: a single
// failing proof rejects the whole batch.
func VerifyPartialDecryptionProofs(pl *pool.Pool, h *hash.Hash, public curve.Point, cts []*elgamal.Ciphertext, shares []*DecryptionShare, proofs []*zkdleq.Proof) (bool, error) {
	if public == nil || public.IsIdentity() {
		return false, fmt.Errorf("eqcheck.VerifyPartialDecryptionProofs: public key: %w", ErrMalformed)
	}
	if err := checkLength(len(cts), len(shares)); err != nil {
		return false, fmt.Errorf("eqcheck.VerifyPartialDecryptionProofs: shares: %w", err)
	}
	if err := checkLength(len(cts), len(proofs)); err != nil {
		return false, fmt.Errorf("eqcheck.VerifyPartialDecryptionProofs: proofs: %w", err)
	}
	group := public.Curve()
	for i := range cts {
		if !cts[i].Valid(group) || !shares[i].valid(group) || !proofs[i].IsValid(group) {
			return false, fmt.Errorf("eqcheck.VerifyPartialDecryptionProofs: position %d: %w", i, ErrMalformed)
		}
	}
	h = transcript(h, domainDecryption)

	results := pl.Parallelize(len(cts), func(i int) interface{} {
		if !shares[i].Residual.Equal(cts[i].L) {
			return false
		}
		return proofs[i].Verify(positionTranscript(h, i), decryptionStatement(public, cts[i], shares[i]))
	})
	for _, ok := range results {
		if !ok.(bool) {
			return false, nil
		}
	}
	return true, nil
}

// Plaintexts returns the Progress of each fully decrypted share.
func Plaintexts(shares []*DecryptionShare) []curve.Point {
	plaintexts := make([]curve.Point, len(shares))
	for i, s := range shares {
		plaintexts[i] = s.Progress
	}
	return plaintexts
}

// CheckTests returns true if every plaintext is the identity.
//
// Only the conjunction over all positions is revealed, not which position failed.
func CheckTests(plaintexts []curve.Point) bool {
	for _, p := range plaintexts {
		if p == nil || !p.IsIdentity() {
			return false
		}
	}
	return true
}

type decryptionShareCBOR struct {
	Residual *curve.MarshallablePoint
	Progress *curve.MarshallablePoint
}

func (s *DecryptionShare) MarshalCBOR() ([]byte, error) {
	if s.Residual == nil || s.Progress == nil {
		return nil, errors.New("eqcheck.DecryptionShare: nil field")
	}
	return cbor.Marshal(decryptionShareCBOR{
		Residual: curve.NewMarshallablePoint(s.Residual),
		Progress: curve.NewMarshallablePoint(s.Progress),
	})
}

func (s *DecryptionShare) UnmarshalCBOR(data []byte) error {
	var decoded decryptionShareCBOR
	if err := cbor.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.Residual == nil || decoded.Progress == nil ||
		decoded.Residual.Point == nil || decoded.Progress.Point == nil {
		return errors.New("eqcheck.DecryptionShare: missing field")
	}
	s.Residual = decoded.Residual.Point
	s.Progress = decoded.Progress.Point
	return nil
}
