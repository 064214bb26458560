package round_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/eqcheck/internal/round"
	"github.com/taurusgroup/eqcheck/internal/test"
	"github.com/taurusgroup/eqcheck/pkg/hash"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/party"
)

func TestNewSession(t *testing.T) {
	RNumber := round.Number(4)
	partyIDs := test.PartyIDs(2)
	selfID := partyIDs[0]
	tests := []struct {
		name        string
		roundNumber round.Number
		selfID      party.ID
		partyIDs    []party.ID
		group       curve.Curve
		wantErr     bool
	}{
		{"valid", RNumber, selfID, partyIDs, curve.Ristretto255{}, false},
		{"valid secp256k1", RNumber, partyIDs[1], partyIDs, curve.Secp256k1{}, false},
		{"invalid selfID", RNumber, "", partyIDs, curve.Ristretto255{}, true},
		{"unknown selfID", RNumber, "z", partyIDs, curve.Ristretto255{}, true},
		{"duplicate selfID", RNumber, selfID, append(partyIDs, selfID), curve.Ristretto255{}, true},
		{"single party", RNumber, selfID, partyIDs[:1], curve.Ristretto255{}, true},
		{"no group", RNumber, selfID, partyIDs, nil, true},
		{"no rounds", 0, selfID, partyIDs, curve.Ristretto255{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := round.Info{
				ProtocolID:       "TEST",
				FinalRoundNumber: tt.roundNumber,
				SelfID:           tt.selfID,
				PartyIDs:         tt.partyIDs,
				Group:            tt.group,
			}
			_, err := round.NewSession(info, nil, nil)
			if tt.wantErr == (err == nil) {
				t.Error(err)
			}
		})
	}
}

func TestSessionAgreement(t *testing.T) {
	partyIDs := test.PartyIDs(2)
	newHelper := func(self party.ID, ids []party.ID, sessionID []byte) *round.Helper {
		h, err := round.NewSession(round.Info{
			ProtocolID:       "TEST",
			FinalRoundNumber: 1,
			SelfID:           self,
			PartyIDs:         ids,
			Group:            curve.Ristretto255{},
		}, sessionID, nil)
		require.NoError(t, err)
		return h
	}

	a := newHelper(partyIDs[0], partyIDs, []byte("session"))
	b := newHelper(partyIDs[1], []party.ID{partyIDs[1], partyIDs[0]}, []byte("session"))
	c := newHelper(partyIDs[0], partyIDs, []byte("other session"))

	assert.Equal(t, a.SSID(), b.SSID(), "SSID does not depend on who computes it")
	assert.NotEqual(t, a.SSID(), c.SSID())
	assert.Equal(t, a.HashForID(partyIDs[1]).Sum(), b.HashForID(partyIDs[1]).Sum())
	assert.NotEqual(t, a.HashForID(partyIDs[0]).Sum(), a.HashForID(partyIDs[1]).Sum())
	assert.Equal(t, party.IDSlice{partyIDs[1]}, a.OtherPartyIDs())
	assert.Equal(t, 2, a.N())

	require.NoError(t, a.UpdateHashState([]byte("shared")))
	assert.NotEqual(t, a.Hash().Sum(), b.Hash().Sum())
	require.NoError(t, b.UpdateHashState([]byte("shared")))
	assert.Equal(t, a.Hash().Sum(), b.Hash().Sum())
	assert.Equal(t, a.SSID(), b.SSID(), "SSID is fixed at creation")

	var _ hash.WriterToWithDomain = round.Number(0)
}
