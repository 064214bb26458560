package eqcheck

import (
	"fmt"

	"github.com/taurusgroup/eqcheck/internal/round"
	"github.com/taurusgroup/eqcheck/pkg/elgamal"
	core "github.com/taurusgroup/eqcheck/pkg/eqcheck"
)

// message3S reports the outcome to the user.
type message3S struct {
	Match bool
}

func (message3S) RoundNumber() round.Number { return 4 }

// round3S is the last round from the server's perspective.
type round3S struct {
	*round2S
	checks []*elgamal.Ciphertext

	shares []*core.DecryptionShare
}

// VerifyMessage implements round.Round.
//
// - the randomized checks must be multiples of the checks we sent.
// - the user's decryption shares must be correct for its public key.
//
// A single failing position rejects the whole message.
func (r *round3S) VerifyMessage(msg round.Message) error {
	body, ok := msg.Content.(*message3U)
	if !ok || body == nil {
		return round.ErrInvalidContent
	}
	if body.RandomizationProof == nil {
		return round.ErrNilFields
	}
	h := r.Hash()
	if err := core.VerifyRandomization(r.Pool, h, r.checks, body.Randomized, body.RandomizationProof); err != nil {
		return err
	}
	ok, err := core.VerifyPartialDecryptionProofs(r.Pool, h, r.userPublic, body.Randomized, body.Shares, body.DecryptionProofs)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("decryption shares: %w", core.ErrVerification)
	}
	return nil
}

// StoreMessage implements round.Round.
func (r *round3S) StoreMessage(msg round.Message) error {
	body := msg.Content.(*message3U)
	r.shares = body.Shares
	return nil
}

// Finalize implements round.Round
//
// - remove our share of the key, which fully decrypts the checks.
// - the values match if every position decrypts to the identity.
func (r *round3S) Finalize(out chan<- *round.Message) (round.Session, error) {
	partial := make([]*elgamal.Ciphertext, len(r.shares))
	for i, s := range r.shares {
		partial[i] = s.Ciphertext()
	}
	decrypted := core.PartialDecryption(r.Pool, partial, r.key.Secret)
	match := core.CheckTests(core.Plaintexts(decrypted))
	r.key.Erase()

	if err := r.SendMessage(out, &message3S{Match: match}, r.userID); err != nil {
		return r, err
	}
	return r.ResultRound(&Result{
		Match:        match,
		SharedPublic: r.shared,
		Positions:    len(r.reference),
	}), nil
}

// MessageContent implements round.Round.
func (round3S) MessageContent() round.Content { return &message3U{} }

// Number implements round.Round.
func (round3S) Number() round.Number { return 3 }
