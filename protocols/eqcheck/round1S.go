package eqcheck

import (
	"errors"
	"io"

	"github.com/taurusgroup/eqcheck/internal/round"
	core "github.com/taurusgroup/eqcheck/pkg/eqcheck"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/party"
	zksch "github.com/taurusgroup/eqcheck/pkg/zk/sch"
)

// message1S is the server's key share.
type message1S struct {
	Public curve.Point
	Proof  *zksch.Proof
}

func (message1S) RoundNumber() round.Number { return 2 }

// round1S is the first round from the server's perspective.
type round1S struct {
	*round.Helper
	rand      io.Reader
	reference []curve.Scalar
	userID    party.ID

	userPublic curve.Point
}

// VerifyMessage implements round.Round.
//
// - check the user's proof of knowledge for its key share.
func (r *round1S) VerifyMessage(msg round.Message) error {
	body, ok := msg.Content.(*message1U)
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
func (r *round1S) StoreMessage(msg round.Message) error {
	body := msg.Content.(*message1U)
	r.userPublic = body.Public
	return nil
}

// Finalize implements round.Round
//
// - sample a key share, and prove knowledge of its secret.
// - combine both public shares, and bind the result to the session.
func (r *round1S) Finalize(out chan<- *round.Message) (round.Session, error) {
	key := core.GenerateKeys(r.rand, r.Group())
	proof := core.ProveKnowledge(r.rand, r.HashForID(r.SelfID()), key)

	shared := core.CombinePublicKeys(r.userPublic, key.Public)
	if err := r.UpdateHashState(shared); err != nil {
		return r, err
	}

	if err := r.SendMessage(out, &message1S{Public: key.Public, Proof: proof}, r.userID); err != nil {
		return r, err
	}
	return &round2S{round1S: r, key: key, shared: shared}, nil
}

// MessageContent implements round.Round.
func (r *round1S) MessageContent() round.Content {
	return &message1U{Public: r.Group().NewPoint()}
}

// Number implements round.Round.
func (round1S) Number() round.Number { return 1 }
