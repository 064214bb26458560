package eqcheck

import (
	"errors"
	"io"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/eqcheck/internal/test"
	"github.com/taurusgroup/eqcheck/pkg/elgamal"
	core "github.com/taurusgroup/eqcheck/pkg/eqcheck"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/math/sample"
	"github.com/taurusgroup/eqcheck/pkg/party"
	"github.com/taurusgroup/eqcheck/pkg/pool"
	"github.com/taurusgroup/eqcheck/pkg/protocol"
)

var testGroups = []curve.Curve{curve.Ristretto255{}, curve.Secp256k1{}}

const (
	userID   party.ID = "user"
	serverID party.ID = "server"
)

func randomValues(rand io.Reader, group curve.Curve, n int) []curve.Scalar {
	values := make([]curve.Scalar, n)
	for i := range values {
		values[i] = sample.Scalar(rand, group)
	}
	return values
}

func copyValues(group curve.Curve, values []curve.Scalar) []curve.Scalar {
	out := make([]curve.Scalar, len(values))
	for i, v := range values {
		out[i] = group.NewScalar().Set(v)
	}
	return out
}

// run executes the protocol between a user holding values and a server holding reference,
// and returns both results, or the first error.
func run(t *testing.T, group curve.Curve, values, reference []curve.Scalar, intercept test.Interceptor) (userResult, serverResult *Result, userErr, serverErr error) {
	t.Helper()
	pl := pool.NewPool(0)
	defer pl.TearDown()

	rand := pool.NewLockedReader(sample.NewSeededReader([]byte("protocol " + group.Name())))
	quiet := protocol.WithLogger(zerolog.Nop())

	hUser, err := protocol.NewTwoPartyHandler(StartUser(&UserConfig{Group: group, Values: values, Rand: rand}, userID, serverID, pl), []byte("session"), true, quiet)
	require.NoError(t, err)
	hServer, err := protocol.NewTwoPartyHandler(StartServer(&ServerConfig{Group: group, Reference: reference, Rand: rand}, serverID, userID, pl), []byte("session"), false, quiet)
	require.NoError(t, err)

	network := test.NewNetwork(party.NewIDSlice([]party.ID{userID, serverID}))
	if intercept != nil {
		network.Intercept(intercept)
	}
	_, _ = test.RunTwoParty(network, [2]party.ID{userID, serverID}, [2]protocol.Handler{hUser, hServer})

	r, userErr := hUser.Result()
	if userErr == nil {
		userResult = r.(*Result)
	}
	r, serverErr = hServer.Result()
	if serverErr == nil {
		serverResult = r.(*Result)
	}
	return
}

func TestEqualityCheck(t *testing.T) {
	for _, group := range testGroups {
		group := group
		t.Run(group.Name(), func(t *testing.T) {
			rand := sample.NewSeededReader([]byte("values"))
			values := randomValues(rand, group, 4)

			t.Run("passing", func(t *testing.T) {
				userResult, serverResult, userErr, serverErr := run(t, group, values, copyValues(group, values), nil)
				require.NoError(t, userErr)
				require.NoError(t, serverErr)
				assert.True(t, serverResult.Match)
				assert.True(t, userResult.Match)
				assert.Equal(t, 4, serverResult.Positions)
				assert.True(t, userResult.SharedPublic.Equal(serverResult.SharedPublic), "both parties must derive the same key")
			})

			t.Run("not passing", func(t *testing.T) {
				reference := copyValues(group, values)
				reference[2] = curve.ScalarFromUint64(group, 12345)
				userResult, serverResult, userErr, serverErr := run(t, group, values, reference, nil)
				require.NoError(t, userErr)
				require.NoError(t, serverErr)
				assert.False(t, serverResult.Match)
				assert.False(t, userResult.Match)
			})
		})
	}
}

func TestLengthMismatchAborts(t *testing.T) {
	group := curve.Ristretto255{}
	rand := sample.NewSeededReader([]byte("length"))
	values := randomValues(rand, group, 3)

	_, _, userErr, serverErr := run(t, group, values, values[:2], nil)
	require.Error(t, serverErr)
	assert.True(t, errors.Is(serverErr, core.ErrLengthMismatch), serverErr.Error())
	var protocolErr protocol.Error
	require.True(t, errors.As(serverErr, &protocolErr))
	assert.Equal(t, userID, protocolErr.Culprit)

	require.Error(t, userErr)
	assert.True(t, errors.Is(userErr, protocol.ErrAbortedByPeer))
}

// tamper rewrites the content of the message sent by the user in the given round.
func tamper[T any](roundNumber int, modify func(*T)) test.Interceptor {
	return func(msg *protocol.Message) *protocol.Message {
		if msg.From != userID || int(msg.RoundNumber) != roundNumber {
			return msg
		}
		var content T
		if err := cbor.Unmarshal(msg.Data, &content); err != nil {
			return msg
		}
		modify(&content)
		data, err := cbor.Marshal(&content)
		if err != nil {
			return msg
		}
		tampered := *msg
		tampered.Data = data
		return &tampered
	}
}

func TestTamperedMessagesAbort(t *testing.T) {
	group := curve.Ristretto255{}
	rand := sample.NewSeededReader([]byte("tamper"))
	values := randomValues(rand, group, 3)

	tests := []struct {
		name      string
		intercept test.Interceptor
		wantErr   error
	}{
		{
			"decryption share",
			tamper(3, func(m *message3U) {
				m.Shares[1].Progress = m.Shares[1].Progress.Add(group.NewBasePoint())
			}),
			core.ErrVerification,
		},
		{
			"decryption proof",
			tamper(3, func(m *message3U) {
				m.DecryptionProofs[0] = m.DecryptionProofs[2]
			}),
			core.ErrVerification,
		},
		{
			"replaced randomized check",
			tamper(3, func(m *message3U) {
				c, _ := elgamal.Encrypt(rand, group.NewBasePoint(), group.NewScalar())
				m.Randomized[0] = c
			}),
			core.ErrVerification,
		},
		{
			"missing share",
			tamper(3, func(m *message3U) {
				m.Shares = m.Shares[:2]
			}),
			core.ErrLengthMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, serverResult, userErr, serverErr := run(t, group, values, copyValues(group, values), tt.intercept)
			assert.Nil(t, serverResult, "the server must not decrypt")
			require.Error(t, serverErr)
			assert.True(t, errors.Is(serverErr, tt.wantErr), serverErr.Error())
			assert.Error(t, userErr)
		})
	}
}

func TestInvalidKeyProofAborts(t *testing.T) {
	group := curve.Secp256k1{}
	rand := sample.NewSeededReader([]byte("key proof"))
	values := randomValues(rand, group, 2)

	other := core.GenerateKeys(rand, group)
	intercept := func(msg *protocol.Message) *protocol.Message {
		if msg.From != userID || msg.RoundNumber != 1 {
			return msg
		}
		content := &message1U{Public: group.NewPoint()}
		if err := cbor.Unmarshal(msg.Data, content); err != nil {
			return msg
		}
		// claim a key we do not know the secret of
		content.Public = other.Public
		data, _ := cbor.Marshal(content)
		tampered := *msg
		tampered.Data = data
		return &tampered
	}

	_, serverResult, userErr, serverErr := run(t, group, values, copyValues(group, values), intercept)
	assert.Nil(t, serverResult)
	assert.Error(t, serverErr)
	assert.Error(t, userErr)
}

func TestConfigValidate(t *testing.T) {
	group := curve.Ristretto255{}
	rand := sample.NewSeededReader([]byte("config"))
	values := randomValues(rand, group, 2)

	assert.NoError(t, (&UserConfig{Group: group, Values: values}).Validate())
	assert.NoError(t, (&ServerConfig{Group: group, Reference: values}).Validate())

	var nilUser *UserConfig
	assert.Error(t, nilUser.Validate())
	assert.Error(t, (&UserConfig{Values: values}).Validate())
	assert.Error(t, (&UserConfig{Group: group}).Validate())
	assert.Error(t, (&ServerConfig{Group: group, Reference: []curve.Scalar{nil}}).Validate())
	assert.Error(t, (&ServerConfig{Group: curve.Secp256k1{}, Reference: values}).Validate())

	_, err := protocol.NewTwoPartyHandler(StartUser(&UserConfig{Group: group}, userID, serverID, nil), nil, true, protocol.WithLogger(zerolog.Nop()))
	assert.Error(t, err)
	_, err = protocol.NewTwoPartyHandler(StartServer(&ServerConfig{Group: group, Reference: values}, serverID, serverID, nil), nil, false, protocol.WithLogger(zerolog.Nop()))
	assert.Error(t, err, "a party cannot run the protocol with itself")
}
