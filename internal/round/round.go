package round

import "errors"

var (
	// ErrInvalidContent is returned when a message does not have the content type expected by the round.
	ErrInvalidContent = errors.New("round: message content has the wrong type")
	// ErrNilFields is returned when a message is missing some of its fields.
	ErrNilFields = errors.New("round: message contained empty fields")
	// ErrOutChanFull is returned when a message could not be queued for sending.
	ErrOutChanFull = errors.New("round: out channel is full")
)

type Round interface {
	// VerifyMessage handles an incoming Message and validates its content against the round it was sent for.
	// The content argument can be cast to the appropriate type for this round without error check.
	// In the first round, this function returns nil.
	// This function should not modify any saved state.
	VerifyMessage(msg Message) error

	// StoreMessage should be called after VerifyMessage and should only store the appropriate fields from the
	// content.
	StoreMessage(msg Message) error

	// Finalize is called after the message of the current round has been processed.
	// Messages for the next round are sent out through the out channel.
	// If a non-critical error occurs (like a failure to send a message), the current round can be
	// returned so that the caller may try to finalize again.
	//
	// In the last round, Finalize should return
	//   r.ResultRound(result), nil
	// where result is the output of the protocol, and when the protocol must stop
	//   r.AbortRound(err, culprits...), nil
	Finalize(out chan<- *Message) (Session, error)

	// MessageContent returns an uninitialized Content for this round, ready to be decoded into.
	//
	// The first round of a protocol should return nil.
	MessageContent() Content

	// Number returns the current round number.
	Number() Number
}
