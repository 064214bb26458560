package curve

import "github.com/cronokirby/saferith"

// ScalarFromUint64 returns x mod q as a Scalar of group.
func ScalarFromUint64(group Curve, x uint64) Scalar {
	return group.NewScalar().SetNat(new(saferith.Nat).SetUint64(x))
}

// ScalarFromBytes interprets data as a big-endian integer, and reduces it mod q.
func ScalarFromBytes(group Curve, data []byte) Scalar {
	return group.NewScalar().SetNat(new(saferith.Nat).SetBytes(data))
}
