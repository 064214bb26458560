package test

import (
	"fmt"

	"github.com/taurusgroup/eqcheck/pkg/party"
	"github.com/taurusgroup/eqcheck/pkg/protocol"
	"golang.org/x/sync/errgroup"
)

// HandlerLoop blocks until the handler has finished. The result of the execution is given by Handler.Result().
func HandlerLoop(id party.ID, h protocol.Handler, network *Network) {
	for {
		select {

		// outgoing messages
		case msg, ok := <-h.Listen():
			if !ok {
				<-network.Done(id)
				// the channel was closed, indicating that the protocol is done executing.
				return
			}
			go network.Send(msg)

		// incoming messages
		case msg := <-network.Next(id):
			h.Accept(msg)
		}
	}
}

// RunTwoParty runs both handlers over network until they finish, and returns their results in order.
//
// The first error returned by either handler's Result is returned.
func RunTwoParty(network *Network, ids [2]party.ID, handlers [2]protocol.Handler) ([2]interface{}, error) {
	var (
		results [2]interface{}
		g       errgroup.Group
	)
	for i := range handlers {
		i := i
		g.Go(func() error {
			HandlerLoop(ids[i], handlers[i], network)
			result, err := handlers[i].Result()
			if err != nil {
				return fmt.Errorf("party %s: %w", ids[i], err)
			}
			results[i] = result
			return nil
		})
	}
	err := g.Wait()
	return results, err
}
