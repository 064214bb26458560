package eqcheck

import (
	"io"

	"github.com/taurusgroup/eqcheck/internal/round"
	core "github.com/taurusgroup/eqcheck/pkg/eqcheck"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/party"
	zksch "github.com/taurusgroup/eqcheck/pkg/zk/sch"
)

// message1U is the user's key share.
type message1U struct {
	Public curve.Point
	// Proof of knowledge of the secret matching Public.
	Proof *zksch.Proof
}

func (message1U) RoundNumber() round.Number { return 1 }

// round1U corresponds to the first round from the user's perspective.
type round1U struct {
	*round.Helper
	rand     io.Reader
	values   []curve.Scalar
	serverID party.ID
}

// VerifyMessage implements round.Round.
//
// Since this is the start of the protocol, we aren't expecting to have received
// any messages yet, so we do nothing.
func (r *round1U) VerifyMessage(round.Message) error { return nil }

// StoreMessage implements round.Round.
func (r *round1U) StoreMessage(round.Message) error { return nil }

// Finalize implements round.Round
//
// - sample a key share.
// - prove knowledge of its secret.
func (r *round1U) Finalize(out chan<- *round.Message) (round.Session, error) {
	key := core.GenerateKeys(r.rand, r.Group())
	proof := core.ProveKnowledge(r.rand, r.HashForID(r.SelfID()), key)
	if err := r.SendMessage(out, &message1U{Public: key.Public, Proof: proof}, r.serverID); err != nil {
		return r, err
	}
	return &round2U{round1U: r, key: key}, nil
}

// MessageContent implements round.Round.
func (round1U) MessageContent() round.Content { return nil }

// Number implements round.Round.
func (round1U) Number() round.Number { return 1 }
