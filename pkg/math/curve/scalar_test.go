package curve

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar_Arithmetic(t *testing.T) {
	for _, group := range testGroups {
		t.Run(group.Name(), func(t *testing.T) {
			two := ScalarFromUint64(group, 2)
			three := ScalarFromUint64(group, 3)
			five := ScalarFromUint64(group, 5)
			six := ScalarFromUint64(group, 6)

			assert.True(t, group.NewScalar().Set(two).Add(three).Equal(five))
			assert.True(t, group.NewScalar().Set(five).Sub(three).Equal(two))
			assert.True(t, group.NewScalar().Set(two).Mul(three).Equal(six))

			inv := group.NewScalar().Set(three).Invert()
			assert.True(t, inv.Mul(three).Equal(ScalarFromUint64(group, 1)))

			neg := group.NewScalar().Set(five).Negate()
			assert.True(t, neg.Add(five).IsZero())

			assert.True(t, group.NewScalar().IsZero())
			assert.True(t, group.NewScalar().Invert().IsZero())
		})
	}
}

func TestScalar_SetNatReduces(t *testing.T) {
	for _, group := range testGroups {
		t.Run(group.Name(), func(t *testing.T) {
			q := group.Order().Nat()
			assert.True(t, group.NewScalar().SetNat(q).IsZero())

			qPlusOne := new(saferith.Nat).Add(q, new(saferith.Nat).SetUint64(1), -1)
			assert.True(t, group.NewScalar().SetNat(qPlusOne).Equal(ScalarFromUint64(group, 1)))
		})
	}
}

func TestScalar_ActMatchesActOnBase(t *testing.T) {
	for _, group := range testGroups {
		t.Run(group.Name(), func(t *testing.T) {
			s := ScalarFromUint64(group, 0xdeadbeef)
			assert.True(t, s.Act(group.NewBasePoint()).Equal(s.ActOnBase()))
			assert.True(t, group.NewScalar().ActOnBase().IsIdentity())
			assert.True(t, s.Act(group.NewPoint()).IsIdentity())
		})
	}
}

func TestScalar_Binary(t *testing.T) {
	for _, group := range testGroups {
		t.Run(group.Name(), func(t *testing.T) {
			s := ScalarFromBytes(group, []byte("some scalar"))
			data, err := s.MarshalBinary()
			require.NoError(t, err)
			s2 := group.NewScalar()
			require.NoError(t, s2.UnmarshalBinary(data))
			assert.True(t, s.Equal(s2))

			invalid := make([]byte, 32)
			for i := range invalid {
				invalid[i] = 0xff
			}
			assert.Error(t, group.NewScalar().UnmarshalBinary(invalid))
		})
	}
}
