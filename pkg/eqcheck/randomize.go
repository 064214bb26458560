package eqcheck

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/eqcheck/pkg/elgamal"
	"github.com/taurusgroup/eqcheck/pkg/hash"
	"github.com/taurusgroup/eqcheck/pkg/math/sample"
	"github.com/taurusgroup/eqcheck/pkg/pool"
	zkdleq "github.com/taurusgroup/eqcheck/pkg/zk/dleq"
)

// RandomizationProof shows that each randomized ciphertext is a multiple of the original one.
//
// Proofs[i] is a Chaum-Pedersen proof that (L', M') = k⋅(L, M) for the same k.
type RandomizationProof struct {
	Proofs []*zkdleq.Proof
}

func randomizationStatement(original, randomized *elgamal.Ciphertext) zkdleq.Public {
	return zkdleq.Public{
		A: original.L,
		B: original.M,
		X: randomized.L,
		Y: randomized.M,
	}
}

// RandomizeAndProve multiplies each ciphertext by a fresh non-zero scalar.
//
// A ciphertext of the identity stays a ciphertext of the identity, and any other
// plaintext is mapped to a uniformly random non-identity element.
func RandomizeAndProve(rand io.Reader, pl *pool.Pool, h *hash.Hash, cts []*elgamal.Ciphertext) ([]*elgamal.Ciphertext, *RandomizationProof) {
	h = transcript(h, domainRandomize)
	rand = pl.Reader(rand)

	type result struct {
		ct    *elgamal.Ciphertext
		proof *zkdleq.Proof
	}
	results := pl.Parallelize(len(cts), func(i int) interface{} {
		group := cts[i].L.Curve()
		k := sample.ScalarUnit(rand, group)
		randomized := cts[i].Scale(k)
		proof := zkdleq.NewProof(rand, positionTranscript(h, i), randomizationStatement(cts[i], randomized), k)
		return result{ct: randomized, proof: proof}
	})

	randomized := make([]*elgamal.Ciphertext, len(cts))
	proof := &RandomizationProof{Proofs: make([]*zkdleq.Proof, len(cts))}
	for i, r := range results {
		res := r.(result)
		randomized[i] = res.ct
		proof.Proofs[i] = res.proof
	}
	return randomized, proof
}

// VerifyRandomization checks a RandomizationProof produced by RandomizeAndProve.
//
// The batch is rejected as a whole: the returned error wraps ErrVerification
// if any position fails, or if the vectors are incomplete or of different lengths.
func VerifyRandomization(pl *pool.Pool, h *hash.Hash, original, randomized []*elgamal.Ciphertext, proof *RandomizationProof) error {
	if proof == nil {
		return fmt.Errorf("eqcheck.VerifyRandomization: %w: missing proof", ErrVerification)
	}
	if err := checkLength(len(original), len(randomized)); err != nil {
		return fmt.Errorf("eqcheck.VerifyRandomization: %w: %w", ErrVerification, err)
	}
	if err := checkLength(len(original), len(proof.Proofs)); err != nil {
		return fmt.Errorf("eqcheck.VerifyRandomization: %w: %w", ErrVerification, err)
	}
	h = transcript(h, domainRandomize)

	results := pl.Parallelize(len(original), func(i int) interface{} {
		o, r := original[i], randomized[i]
		if o == nil || o.L == nil || o.L.IsIdentity() {
			return false
		}
		group := o.L.Curve()
		if !o.Valid(group) || !r.Valid(group) {
			return false
		}
		// k = 0 would erase the ciphertext
		if r.L.IsIdentity() {
			return false
		}
		return proof.Proofs[i].Verify(positionTranscript(h, i), randomizationStatement(o, r))
	})
	for i, ok := range results {
		if !ok.(bool) {
			return fmt.Errorf("eqcheck.VerifyRandomization: position %d: %w", i, ErrVerification)
		}
	}
	return nil
}

func (p *RandomizationProof) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(p.Proofs)
}

func (p *RandomizationProof) UnmarshalCBOR(data []byte) error {
	var proofs []*zkdleq.Proof
	if err := cbor.Unmarshal(data, &proofs); err != nil {
		return err
	}
	for _, proof := range proofs {
		if proof == nil {
			return errors.New("eqcheck.RandomizationProof: nil proof")
		}
	}
	p.Proofs = proofs
	return nil
}
