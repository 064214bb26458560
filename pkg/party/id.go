package party

import (
	"errors"
	"io"
)

// ID represents a unique identifier for a participant in our scheme.
//
// You should think of this as a strings of bytes, and not as text.
type ID string

// ErrEmptyID is returned when validating an ID of length 0.
var ErrEmptyID = errors.New("party.ID: empty")

// Validate returns an error if the ID cannot be used in a session.
func (id ID) Validate() error {
	if len(id) == 0 {
		return ErrEmptyID
	}
	return nil
}

// WriteTo makes ID implement the io.WriterTo interface.
//
// This writes out the content of this ID, in a domain separated way.
func (id ID) WriteTo(w io.Writer) (int64, error) {
	if id == "" {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := w.Write([]byte(id))
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (ID) Domain() string {
	return "ID"
}
