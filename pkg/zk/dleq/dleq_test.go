package zkdleq

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/eqcheck/pkg/hash"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/math/sample"
)

var testGroups = []curve.Curve{curve.Ristretto255{}, curve.Secp256k1{}}

func statement(t *testing.T, group curve.Curve, seed string) (Public, curve.Scalar) {
	t.Helper()
	rand := sample.NewSeededReader([]byte(seed))
	x := sample.ScalarUnit(rand, group)
	A := group.NewBasePoint()
	B := sample.ScalarUnit(rand, group).ActOnBase()
	return Public{A: A, B: B, X: x.Act(A), Y: x.Act(B)}, x
}

func TestDLEQ(t *testing.T) {
	for _, group := range testGroups {
		t.Run(group.Name(), func(t *testing.T) {
			rand := sample.NewSeededReader([]byte("dleq prove"))
			public, x := statement(t, group, "dleq statement")

			proof := NewProof(rand, hash.New(), public, x)
			assert.True(t, proof.Verify(hash.New(), public))
			assert.True(t, proof.Verify(nil, public))

			out, err := cbor.Marshal(proof)
			require.NoError(t, err, "failed to marshal proof")
			proof2 := new(Proof)
			require.NoError(t, cbor.Unmarshal(out, proof2), "failed to unmarshal proof")
			assert.True(t, proof2.Verify(hash.New(), public))
		})
	}
}

func TestDLEQFail(t *testing.T) {
	for _, group := range testGroups {
		t.Run(group.Name(), func(t *testing.T) {
			rand := sample.NewSeededReader([]byte("dleq fail"))
			public, x := statement(t, group, "dleq statement")
			proof := NewProof(rand, hash.New(), public, x)

			// different logarithms
			unequal := public
			unequal.Y = public.Y.Add(group.NewBasePoint())
			assert.False(t, NewProof(rand, hash.New(), unequal, x).Verify(hash.New(), unequal))
			assert.False(t, proof.Verify(hash.New(), unequal))

			assert.False(t, proof.Verify(hash.New().Fork([]byte("context")), public), "wrong transcript")

			swapped := Public{A: public.B, B: public.A, X: public.Y, Y: public.X}
			assert.False(t, proof.Verify(hash.New(), swapped))

			var nilProof *Proof
			assert.False(t, nilProof.Verify(hash.New(), public))
			assert.False(t, (&Proof{Z: proof.Z}).Verify(hash.New(), public))
			assert.False(t, proof.Verify(hash.New(), Public{A: public.A, B: public.B, X: public.X}))

			tampered := &Proof{Commitment: proof.Commitment, Z: group.NewScalar().Set(proof.Z).Add(curve.ScalarFromUint64(group, 1))}
			assert.False(t, tampered.Verify(hash.New(), public))
		})
	}
}
