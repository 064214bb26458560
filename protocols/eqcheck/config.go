package eqcheck

import (
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/eqcheck/pkg/math/curve"
)

// UserConfig holds the values the user wants to have checked.
type UserConfig struct {
	// Group used for the execution. Both parties must agree on it.
	Group curve.Curve
	// Values are compared position by position with the server's reference.
	Values []curve.Scalar
	// Rand is the source of randomness, crypto/rand.Reader if nil.
	Rand io.Reader
}

// ServerConfig holds the reference values the server compares against.
type ServerConfig struct {
	// Group used for the execution. Both parties must agree on it.
	Group curve.Curve
	// Reference is the vector the user's values must be equal to.
	Reference []curve.Scalar
	// Rand is the source of randomness, crypto/rand.Reader if nil.
	Rand io.Reader
}

var errNoValues = errors.New("no values")

func validateScalars(group curve.Curve, values []curve.Scalar) error {
	if group == nil {
		return errors.New("no group")
	}
	if len(values) == 0 {
		return errNoValues
	}
	for i, v := range values {
		if v == nil {
			return fmt.Errorf("value %d is nil", i)
		}
		if v.Curve().Name() != group.Name() {
			return fmt.Errorf("value %d is in group %s instead of %s", i, v.Curve().Name(), group.Name())
		}
	}
	return nil
}

// Validate returns an error if the config cannot be used to start the protocol.
func (c *UserConfig) Validate() error {
	if c == nil {
		return errors.New("eqcheck.UserConfig: nil")
	}
	if err := validateScalars(c.Group, c.Values); err != nil {
		return fmt.Errorf("eqcheck.UserConfig: %w", err)
	}
	return nil
}

// Validate returns an error if the config cannot be used to start the protocol.
func (c *ServerConfig) Validate() error {
	if c == nil {
		return errors.New("eqcheck.ServerConfig: nil")
	}
	if err := validateScalars(c.Group, c.Reference); err != nil {
		return fmt.Errorf("eqcheck.ServerConfig: %w", err)
	}
	return nil
}
