package test

import (
	"sync"

	"github.com/taurusgroup/eqcheck/pkg/party"
	"github.com/taurusgroup/eqcheck/pkg/protocol"
)

// Interceptor can inspect and rewrite a message before it is delivered.
// Returning nil drops the message.
type Interceptor func(msg *protocol.Message) *protocol.Message

// Network is an in-memory network delivering protocol messages between parties.
type Network struct {
	parties          party.IDSlice
	listenChannels   map[party.ID]chan *protocol.Message
	done             chan struct{}
	closedListenChan chan *protocol.Message
	intercept        Interceptor
	mtx              sync.Mutex
}

func NewNetwork(parties party.IDSlice) *Network {
	closed := make(chan *protocol.Message)
	close(closed)
	c := &Network{
		parties:          parties,
		listenChannels:   make(map[party.ID]chan *protocol.Message, len(parties)),
		closedListenChan: closed,
	}
	return c
}

// Intercept sets a function applied to every message sent after this call.
func (n *Network) Intercept(f Interceptor) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	n.intercept = f
}

func (n *Network) init() {
	N := len(n.parties)
	for _, id := range n.parties {
		n.listenChannels[id] = make(chan *protocol.Message, 8*N*N)
	}
	n.done = make(chan struct{})
}

func (n *Network) Next(id party.ID) <-chan *protocol.Message {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if len(n.listenChannels) == 0 {
		n.init()
	}
	c, ok := n.listenChannels[id]
	if !ok {
		return n.closedListenChan
	}
	return c
}

func (n *Network) Send(msg *protocol.Message) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if n.intercept != nil {
		if msg = n.intercept(msg); msg == nil {
			return
		}
	}
	for id, c := range n.listenChannels {
		if msg.IsFor(id) && c != nil {
			select {
			case c <- msg:
			default:
			}
		}
	}
}

func (n *Network) Done(id party.ID) chan struct{} {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	if len(n.listenChannels) == 0 && n.done == nil {
		n.init()
	}
	if _, ok := n.listenChannels[id]; ok {
		close(n.listenChannels[id])
		delete(n.listenChannels, id)
	}
	if len(n.listenChannels) == 0 {
		select {
		case <-n.done:
		default:
			close(n.done)
		}
	}
	return n.done
}

func (n *Network) Quit(id party.ID) {
	n.mtx.Lock()
	defer n.mtx.Unlock()
	n.parties = n.parties.Remove(id)
}
