// Package eqcheck runs the equality check between a user and a server as a
// round based protocol, on top of protocol.TwoPartyHandler.
//
// The user is the leader. At the end, both parties output a *Result with the
// answer computed by the server.
package eqcheck

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/taurusgroup/eqcheck/internal/round"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/party"
	"github.com/taurusgroup/eqcheck/pkg/pool"
	"github.com/taurusgroup/eqcheck/pkg/protocol"
)

const (
	protocolID = "eqcheck/equality-check"
	// user sends rounds 1-3, server sends rounds 2-4.
	protocolRounds round.Number = 4
)

// Result is the output of the protocol for both parties.
type Result struct {
	// Match is true if every value of the user equals the server's reference at the same position.
	Match bool
	// SharedPublic is the combined key the values were encrypted under.
	SharedPublic curve.Point
	// Positions is the number of values compared.
	Positions int
}

func newSession(group curve.Curve, selfID, otherID party.ID, sessionID []byte, pl *pool.Pool) (*round.Helper, error) {
	info := round.Info{
		ProtocolID:       protocolID,
		FinalRoundNumber: protocolRounds,
		SelfID:           selfID,
		PartyIDs:         []party.ID{selfID, otherID},
		Group:            group,
	}
	return round.NewSession(info, sessionID, pl)
}

func randOrDefault(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader
	}
	return r
}

// StartUser returns the StartFunc for the user, who must run it as the leader.
func StartUser(config *UserConfig, selfID, serverID party.ID, pl *pool.Pool) protocol.StartFunc {
	return func(sessionID []byte) (round.Session, error) {
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("eqcheck.StartUser: %w", err)
		}
		helper, err := newSession(config.Group, selfID, serverID, sessionID, pl)
		if err != nil {
			return nil, fmt.Errorf("eqcheck.StartUser: %w", err)
		}
		return &round1U{
			Helper:   helper,
			rand:     randOrDefault(config.Rand),
			values:   config.Values,
			serverID: serverID,
		}, nil
	}
}

// StartServer returns the StartFunc for the server.
func StartServer(config *ServerConfig, selfID, userID party.ID, pl *pool.Pool) protocol.StartFunc {
	return func(sessionID []byte) (round.Session, error) {
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("eqcheck.StartServer: %w", err)
		}
		helper, err := newSession(config.Group, selfID, userID, sessionID, pl)
		if err != nil {
			return nil, fmt.Errorf("eqcheck.StartServer: %w", err)
		}
		return &round1S{
			Helper:    helper,
			rand:      randOrDefault(config.Rand),
			reference: config.Reference,
			userID:    userID,
		}, nil
	}
}
