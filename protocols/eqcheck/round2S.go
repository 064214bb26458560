package eqcheck

import (
	"fmt"

	"github.com/taurusgroup/eqcheck/internal/round"
	"github.com/taurusgroup/eqcheck/pkg/elgamal"
	core "github.com/taurusgroup/eqcheck/pkg/eqcheck"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
)

// message2S contains, for each position, an encryption of the difference
// between the user's value and the reference.
type message2S struct {
	Checks []*elgamal.Ciphertext
}

func (message2S) RoundNumber() round.Number { return 3 }

// round2S is the second round from the server's perspective.
type round2S struct {
	*round1S
	key    *core.KeyPair
	shared curve.Point

	encrypted []*elgamal.Ciphertext
}

// VerifyMessage implements round.Round.
//
// - the user must send as many ciphertexts as we have reference values.
func (r *round2S) VerifyMessage(msg round.Message) error {
	body, ok := msg.Content.(*message2U)
	if !ok || body == nil {
		return round.ErrInvalidContent
	}
	if len(body.Encrypted) != len(r.reference) {
		return fmt.Errorf("encrypted values: %w", &core.LengthMismatchError{Expected: len(r.reference), Got: len(body.Encrypted)})
	}
	for i, c := range body.Encrypted {
		if !c.Valid(r.Group()) {
			return fmt.Errorf("encrypted value %d: %w", i, round.ErrNilFields)
		}
	}
	return nil
}

// StoreMessage implements round.Round.
func (r *round2S) StoreMessage(msg round.Message) error {
	body := msg.Content.(*message2U)
	r.encrypted = body.Encrypted
	return nil
}

// Finalize implements round.Round
//
// - subtract the reference values from the user's ciphertexts.
func (r *round2S) Finalize(out chan<- *round.Message) (round.Session, error) {
	checks, err := core.ComputeChecks(r.rand, r.Pool, r.shared, r.encrypted, r.reference)
	if err != nil {
		return r.AbortRound(err, r.userID), nil
	}
	if err = r.SendMessage(out, &message2S{Checks: checks}, r.userID); err != nil {
		return r, err
	}
	return &round3S{round2S: r, checks: checks}, nil
}

// MessageContent implements round.Round.
func (round2S) MessageContent() round.Content { return &message2U{} }

// Number implements round.Round.
func (round2S) Number() round.Number { return 2 }
