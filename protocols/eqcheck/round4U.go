package eqcheck

import (
	"github.com/taurusgroup/eqcheck/internal/round"
)

// round4U is the last round from the user's perspective.
type round4U struct {
	*round3U

	match bool
}

// VerifyMessage implements round.Round.
func (r *round4U) VerifyMessage(msg round.Message) error {
	body, ok := msg.Content.(*message3S)
	if !ok || body == nil {
		return round.ErrInvalidContent
	}
	return nil
}

// StoreMessage implements round.Round.
func (r *round4U) StoreMessage(msg round.Message) error {
	body := msg.Content.(*message3S)
	r.match = body.Match
	return nil
}

// Finalize implements round.Round
//
// - output the answer reported by the server.
func (r *round4U) Finalize(chan<- *round.Message) (round.Session, error) {
	return r.ResultRound(&Result{
		Match:        r.match,
		SharedPublic: r.shared,
		Positions:    len(r.values),
	}), nil
}

// MessageContent implements round.Round.
func (round4U) MessageContent() round.Content { return &message3S{} }

// Number implements round.Round.
func (round4U) Number() round.Number { return 4 }
