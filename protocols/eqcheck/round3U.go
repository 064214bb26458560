package eqcheck

import (
	"fmt"

	"github.com/taurusgroup/eqcheck/internal/round"
	"github.com/taurusgroup/eqcheck/pkg/elgamal"
	core "github.com/taurusgroup/eqcheck/pkg/eqcheck"
	zkdleq "github.com/taurusgroup/eqcheck/pkg/zk/dleq"
)

// message3U contains the blinded checks, with our share of the key removed.
type message3U struct {
	Randomized         []*elgamal.Ciphertext
	RandomizationProof *core.RandomizationProof
	Shares             []*core.DecryptionShare
	DecryptionProofs   []*zkdleq.Proof
}

func (message3U) RoundNumber() round.Number { return 3 }

// round3U is the third round from the user's perspective.
type round3U struct {
	*round2U

	checks []*elgamal.Ciphertext
}

// VerifyMessage implements round.Round.
func (r *round3U) VerifyMessage(msg round.Message) error {
	body, ok := msg.Content.(*message2S)
	if !ok || body == nil {
		return round.ErrInvalidContent
	}
	if len(body.Checks) != len(r.values) {
		return fmt.Errorf("checks: %w", &core.LengthMismatchError{Expected: len(r.values), Got: len(body.Checks)})
	}
	for i, c := range body.Checks {
		if !c.Valid(r.Group()) || c.L.IsIdentity() {
			return fmt.Errorf("check %d: %w", i, round.ErrNilFields)
		}
	}
	return nil
}

// StoreMessage implements round.Round.
func (r *round3U) StoreMessage(msg round.Message) error {
	body := msg.Content.(*message2S)
	r.checks = body.Checks
	return nil
}

// Finalize implements round.Round
//
// - blind each check with a fresh scalar, and prove it.
// - remove our share of the key from the blinded checks, and prove it.
func (r *round3U) Finalize(out chan<- *round.Message) (round.Session, error) {
	h := r.Hash()
	randomized, randomizationProof := core.RandomizeAndProve(r.rand, r.Pool, h, r.checks)
	shares, proofs := core.PartialDecryptionAndProof(r.rand, r.Pool, h, randomized, r.key)
	r.key.Erase()

	if err := r.SendMessage(out, &message3U{
		Randomized:         randomized,
		RandomizationProof: randomizationProof,
		Shares:             shares,
		DecryptionProofs:   proofs,
	}, r.serverID); err != nil {
		return r, err
	}
	return &round4U{round3U: r}, nil
}

// MessageContent implements round.Round.
func (round3U) MessageContent() round.Content { return &message2S{} }

// Number implements round.Round.
func (round3U) Number() round.Number { return 3 }
