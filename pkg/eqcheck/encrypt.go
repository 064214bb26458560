package eqcheck

import (
	"fmt"
	"io"

	"github.com/taurusgroup/eqcheck/pkg/elgamal"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/pool"
)

// EncryptInput encrypts values[i]⋅G under pk, with independent randomness for each position.
func EncryptInput(rand io.Reader, pl *pool.Pool, pk curve.Point, values []curve.Scalar) []*elgamal.Ciphertext {
	rand = pl.Reader(rand)
	results := pl.Parallelize(len(values), func(i int) interface{} {
		c, _ := elgamal.Encrypt(rand, pk, values[i])
		return c
	})
	return toCiphertexts(results)
}

// ComputeChecks returns, for each position, encrypted[i] ⊕ Enc(-checks[i]⋅G).
//
// The plaintext of the i-th output is the identity if and only if the plaintext of
// encrypted[i] is checks[i]⋅G. A *LengthMismatchError is returned if the vectors
// have different lengths, and no ciphertext is computed in that case.
func ComputeChecks(rand io.Reader, pl *pool.Pool, pk curve.Point, encrypted []*elgamal.Ciphertext, checks []curve.Scalar) ([]*elgamal.Ciphertext, error) {
	if err := checkLength(len(encrypted), len(checks)); err != nil {
		return nil, fmt.Errorf("eqcheck.ComputeChecks: %w", err)
	}
	group := pk.Curve()
	for i, c := range encrypted {
		if !c.Valid(group) {
			return nil, fmt.Errorf("eqcheck.ComputeChecks: ciphertext %d: %w", i, ErrMalformed)
		}
	}

	rand = pl.Reader(rand)
	results := pl.Parallelize(len(checks), func(i int) interface{} {
		negated := group.NewScalar().Set(checks[i]).Negate()
		c, _ := elgamal.Encrypt(rand, pk, negated)
		return encrypted[i].Add(c)
	})
	return toCiphertexts(results), nil
}

func toCiphertexts(results []interface{}) []*elgamal.Ciphertext {
	cts := make([]*elgamal.Ciphertext, len(results))
	for i, r := range results {
		cts[i] = r.(*elgamal.Ciphertext)
	}
	return cts
}
