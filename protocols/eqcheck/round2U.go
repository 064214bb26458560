package eqcheck

import (
	"errors"

	"github.com/taurusgroup/eqcheck/internal/round"
	"github.com/taurusgroup/eqcheck/pkg/elgamal"
	core "github.com/taurusgroup/eqcheck/pkg/eqcheck"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
)

// message2U contains the user's encrypted values.
type message2U struct {
	Encrypted []*elgamal.Ciphertext
}

func (message2U) RoundNumber() round.Number { return 2 }

// round2U is the second round from the user's perspective.
type round2U struct {
	*round1U
	key *core.KeyPair

	serverPublic curve.Point
	shared       curve.Point
}

// VerifyMessage implements round.Round.
//
// - check the server's proof of knowledge for its key share.
func (r *round2U) VerifyMessage(msg round.Message) error {
	body, ok := msg.Content.(*message1S)
	if !ok || body == nil {
		return round.ErrInvalidContent
	}
	if body.Public == nil || body.Proof == nil {
		return round.ErrNilFields
	}
	if !core.VerifyProofKnowledge(r.HashForID(msg.From), body.Public, body.Proof) {
		return errors.New("invalid Schnorr proof")
	}
	return nil
}

// StoreMessage implements round.Round.
func (r *round2U) StoreMessage(msg round.Message) error {
	body := msg.Content.(*message1S)
	r.serverPublic = body.Public
	return nil
}

// Finalize implements round.Round
//
// - combine both public shares, and bind the result to the session.
// - encrypt our values under the shared key.
func (r *round2U) Finalize(out chan<- *round.Message) (round.Session, error) {
	r.shared = core.CombinePublicKeys(r.key.Public, r.serverPublic)
	if err := r.UpdateHashState(r.shared); err != nil {
		return r, err
	}

	encrypted := core.EncryptInput(r.rand, r.Pool, r.shared, r.values)
	if err := r.SendMessage(out, &message2U{Encrypted: encrypted}, r.serverID); err != nil {
		return r, err
	}
	return &round3U{round2U: r}, nil
}

// MessageContent implements round.Round.
func (r *round2U) MessageContent() round.Content {
	return &message1S{Public: r.Group().NewPoint()}
}

// Number implements round.Round.
func (round2U) Number() round.Number { return 2 }
