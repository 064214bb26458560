package curve

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGroups = []Curve{Ristretto255{}, Secp256k1{}}

type marshalTester struct {
	S *MarshallableScalar
	P *MarshallablePoint
}

func TestMarshall(t *testing.T) {
	for _, group := range testGroups {
		t.Run(group.Name(), func(t *testing.T) {
			s := marshalTester{
				S: NewMarshallableScalar(group.NewScalar().SetNat(new(saferith.Nat).SetUint64(0xED))),
				P: NewMarshallablePoint(group.NewBasePoint()),
			}
			data, err := cbor.Marshal(s)
			require.NoError(t, err)
			var s2 marshalTester
			err = cbor.Unmarshal(data, &s2)
			require.NoError(t, err)
			assert.True(t, s.S.Scalar.Equal(s2.S.Scalar))
			assert.True(t, s.P.Point.Equal(s2.P.Point))
		})
	}
}

func TestMarshallUnknownGroup(t *testing.T) {
	data, err := cbor.Marshal(encodedElement{Group: "p256", Data: make([]byte, 32)})
	require.NoError(t, err)
	var p MarshallablePoint
	assert.Error(t, cbor.Unmarshal(data, &p))
}

func TestFromName(t *testing.T) {
	for _, group := range testGroups {
		got, err := FromName(group.Name())
		require.NoError(t, err)
		assert.Equal(t, group.Name(), got.Name())
	}
	_, err := FromName("")
	assert.Error(t, err)
}
