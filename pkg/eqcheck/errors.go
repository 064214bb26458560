package eqcheck

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned when two vectors which should be processed
	// position by position have different lengths.
	ErrLengthMismatch = errors.New("eqcheck: length mismatch")
	// ErrVerification is returned when a proof does not verify.
	ErrVerification = errors.New("eqcheck: verification failed")
	// ErrMalformed is returned when an input is nil, incomplete, or belongs to the wrong group.
	ErrMalformed = errors.New("eqcheck: malformed input")
)

// LengthMismatchError records the lengths of the two vectors involved.
//
// It matches ErrLengthMismatch with errors.Is.
type LengthMismatchError struct {
	Expected, Got int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d, got %d", ErrLengthMismatch, e.Expected, e.Got)
}

func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

func checkLength(expected, got int) error {
	if expected != got {
		return &LengthMismatchError{Expected: expected, Got: got}
	}
	return nil
}
