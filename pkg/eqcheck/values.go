package eqcheck

import (
	"github.com/taurusgroup/eqcheck/pkg/hash"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/math/sample"
)

// ValueFromUint64 encodes x as a scalar.
//
// Distinct values smaller than the group order give distinct scalars.
func ValueFromUint64(group curve.Curve, x uint64) curve.Scalar {
	return curve.ScalarFromUint64(group, x)
}

// ValueFromBytes hashes data to a scalar, so that arbitrary byte strings can be compared.
func ValueFromBytes(group curve.Curve, data []byte) curve.Scalar {
	h := hash.New(&hash.BytesWithDomain{TheDomain: "eqcheck value", Bytes: []byte(group.Name())})
	_ = h.WriteAny(data)
	return sample.Scalar(h.Digest(), group)
}
