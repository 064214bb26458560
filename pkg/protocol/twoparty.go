package protocol

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"
	"github.com/taurusgroup/eqcheck/internal/round"
	"github.com/taurusgroup/eqcheck/pkg/party"
)

// TwoPartyHandler represents a restriction of the Handler for 2 party protocols.
//
// Each round consumes exactly one message from the other party, identified by its RoundNumber.
// Messages arriving early are kept until their round is reached.
type TwoPartyHandler struct {
	round    round.Session
	leader   bool
	err      error
	result   interface{}
	messages map[round.Number]*Message
	out      chan *Message
	done     bool
	mtx      sync.Mutex

	// Log is used to report the progress of the protocol. It never contains secret material.
	Log zerolog.Logger
}

// TwoPartyOption configures a TwoPartyHandler.
type TwoPartyOption func(*TwoPartyHandler)

// WithLogger replaces the default console logger.
//
// The protocol, party and round fields are added to l.
func WithLogger(l zerolog.Logger) TwoPartyOption {
	return func(h *TwoPartyHandler) {
		h.Log = l
	}
}

// NewTwoPartyHandler creates the first round of the protocol, and starts executing it if leader is true.
//
// Exactly one of the two parties must be the leader.
func NewTwoPartyHandler(create StartFunc, sessionID []byte, leader bool, opts ...TwoPartyOption) (*TwoPartyHandler, error) {
	r, err := create(sessionID)
	if err != nil {
		return nil, fmt.Errorf("protocol: failed to create round: %w", err)
	}
	handler := &TwoPartyHandler{
		round:    r,
		leader:   leader,
		messages: map[round.Number]*Message{},
		out:      make(chan *Message, int(r.FinalRoundNumber())+2),
		Log:      zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.InfoLevel),
	}
	for _, opt := range opts {
		opt(handler)
	}
	handler.Log = handler.Log.With().
		Str("protocol", r.ProtocolID()).
		Str("party", string(r.SelfID())).
		Int("round", int(r.Number())).
		Bool("leader", leader).
		Logger()
	handler.Log.Info().Msg("start")

	if leader {
		handler.mtx.Lock()
		handler.advance()
		handler.mtx.Unlock()
	}
	return handler, nil
}

// Result returns the protocol result if the protocol completed successfully. Otherwise an error is returned.
func (h *TwoPartyHandler) Result() (interface{}, error) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	if h.result != nil {
		return h.result, nil
	}
	if h.err != nil {
		return nil, h.err
	}
	return nil, ErrNotFinished
}

// Listen returns a channel with outgoing messages that must be sent to the other party.
// The channel is closed when the protocol finishes or aborts.
func (h *TwoPartyHandler) Listen() <-chan *Message {
	return h.out
}

// Stop aborts the protocol, and notifies the other party.
func (h *TwoPartyHandler) Stop() {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	if h.err == nil && h.result == nil {
		h.abort(ErrStopped, "")
	}
}

func (h *TwoPartyHandler) String() string {
	return fmt.Sprintf("party: %s, protocol: %s", h.round.SelfID(), h.round.ProtocolID())
}

// abort records err, sends it to the other party and closes the out channel.
//
// A nil err closes the channel after a successful execution.
func (h *TwoPartyHandler) abort(err error, culprit party.ID) {
	if h.done {
		return
	}
	if err != nil {
		h.err = Error{
			RoundNumber: h.round.Number(),
			Culprit:     culprit,
			Err:         err,
		}
		h.Log.Error().Err(h.err).Msg("abort")
		select {
		case h.out <- &Message{
			SSID:     h.round.SSID(),
			From:     h.round.SelfID(),
			Protocol: h.round.ProtocolID(),
			Data:     []byte(err.Error()),
		}:
		default:
		}
	}
	h.done = true
	close(h.out)
}

func (h *TwoPartyHandler) canAdvance() bool {
	if h.round.MessageContent() == nil {
		return true
	}
	if h.messages[h.round.Number()] != nil {
		return true
	}
	return false
}

func extractRoundMessage(r round.Session, msg *Message) (round.Message, error) {
	content := r.MessageContent()
	if err := cbor.Unmarshal(msg.Data, content); err != nil {
		return round.Message{}, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	roundMsg := round.Message{
		From:    msg.From,
		To:      msg.To,
		Content: content,
	}
	return roundMsg, nil
}

func (h *TwoPartyHandler) verifyMessage(msg *Message) error {
	if msg == nil {
		return nil
	}
	r := h.round
	roundMsg, err := extractRoundMessage(r, msg)
	if err != nil {
		return err
	}

	if err = r.VerifyMessage(roundMsg); err != nil {
		return err
	}

	if err = r.StoreMessage(roundMsg); err != nil {
		return err
	}

	return nil
}

func (h *TwoPartyHandler) advance() {
	for h.canAdvance() {
		msg := h.messages[h.round.Number()]
		delete(h.messages, h.round.Number())
		if err := h.verifyMessage(msg); err != nil {
			h.abort(err, msg.From)
			return
		}
		out := make(chan *round.Message, 1)
		newRound, err := h.round.Finalize(out)
		close(out)
		if err != nil || newRound == nil {
			h.abort(err, "")
			return
		}
		for roundMsg := range out {
			data, err := cbor.Marshal(roundMsg.Content)
			if err != nil {
				h.abort(fmt.Errorf("failed to marshal round message: %w", err), "")
				return
			}
			h.out <- &Message{
				SSID:        newRound.SSID(),
				From:        newRound.SelfID(),
				To:          roundMsg.To,
				Protocol:    newRound.ProtocolID(),
				RoundNumber: roundMsg.Content.RoundNumber(),
				Data:        data,
			}
		}
		h.round = newRound
		switch R := newRound.(type) {
		// An abort happened
		case *round.Abort:
			var culprit party.ID
			if len(R.Culprits) > 0 {
				culprit = R.Culprits[0]
			}
			h.abort(R.Err, culprit)
			return
		// We have the result
		case *round.Output:
			h.result = R.Result
			h.Log.Info().Msg("done")
			h.abort(nil, "")
			return
		default:
			h.Log.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Int("round", int(newRound.Number()))
			})
			h.Log.Info().Msg("round advanced")
		}
	}
}

// CanAccept returns true if msg belongs to this execution, and a round still expects it.
func (h *TwoPartyHandler) CanAccept(msg *Message) bool {
	r := h.round
	if msg == nil {
		return false
	}
	if !msg.IsFor(r.SelfID()) {
		return false
	}
	if msg.Protocol != r.ProtocolID() {
		return false
	}
	if !bytes.Equal(msg.SSID, r.SSID()) {
		return false
	}
	if !r.OtherPartyIDs().Contains(msg.From) {
		return false
	}
	if msg.Data == nil {
		return false
	}
	if msg.RoundNumber > r.FinalRoundNumber() {
		return false
	}
	if msg.RoundNumber != 0 && msg.RoundNumber < r.Number() {
		return false
	}
	return true
}

// Accept stores msg, and advances the protocol as far as the received messages allow.
func (h *TwoPartyHandler) Accept(msg *Message) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	if h.done || !h.CanAccept(msg) {
		return
	}

	if msg.RoundNumber == 0 {
		h.abort(fmt.Errorf("%w: %q", ErrAbortedByPeer, msg.Data), msg.From)
		return
	}

	if _, duplicate := h.messages[msg.RoundNumber]; duplicate {
		h.Log.Warn().Stringer("msg", msg).Msg("duplicate message")
		return
	}
	h.Log.Debug().Stringer("msg", msg).Msg("got new message")
	h.messages[msg.RoundNumber] = msg

	h.advance()
}
