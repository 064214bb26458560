package eqcheck

import (
	"io"

	"github.com/taurusgroup/eqcheck/pkg/hash"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/math/sample"
	zksch "github.com/taurusgroup/eqcheck/pkg/zk/sch"
)

// KeyPair is one party's share of the decryption key.
type KeyPair struct {
	// Secret is never sent to the other party.
	Secret curve.Scalar
	// Public = Secret⋅G
	Public curve.Point
}

// GenerateKeys samples a non-zero secret from rand and derives its public key.
func GenerateKeys(rand io.Reader, group curve.Curve) *KeyPair {
	secret, public := sample.ScalarPointPair(rand, group)
	return &KeyPair{
		Secret: secret,
		Public: public,
	}
}

// Erase overwrites the secret with zero.
func (k *KeyPair) Erase() {
	if k == nil || k.Secret == nil {
		return
	}
	k.Secret.Set(k.Secret.Curve().NewScalar())
}

// ProveKnowledge returns a Schnorr proof that the owner of key knows key.Secret.
func ProveKnowledge(rand io.Reader, h *hash.Hash, key *KeyPair) *zksch.Proof {
	return zksch.NewProof(rand, transcript(h, domainKnowledge), key.Public, key.Secret)
}

// VerifyProofKnowledge returns true if proof shows knowledge of the discrete logarithm of public.
//
// Callers must abort the protocol when this returns false.
func VerifyProofKnowledge(h *hash.Hash, public curve.Point, proof *zksch.Proof) bool {
	return proof.Verify(transcript(h, domainKnowledge), public)
}

// CombinePublicKeys returns a + b, the key under which both parties are needed to decrypt.
func CombinePublicKeys(a, b curve.Point) curve.Point {
	return a.Add(b)
}
