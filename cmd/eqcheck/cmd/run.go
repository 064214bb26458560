package cmd

import (
	"context"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
	"github.com/taurusgroup/eqcheck/pkg/party"
	"github.com/taurusgroup/eqcheck/pkg/pool"
	"github.com/taurusgroup/eqcheck/pkg/protocol"
	"github.com/taurusgroup/eqcheck/protocols/eqcheck"
	"golang.org/x/sync/errgroup"
)

const (
	userID   party.ID = "user"
	serverID party.ID = "server"
)

func run(cmd *cobra.Command, opts *options) error {
	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = cmd.ErrOrStderr()
	})).Level(level).With().Timestamp().Logger()

	group, err := curve.FromName(opts.group)
	if err != nil {
		return err
	}
	values, err := parseValues(group, opts.values, opts.encoding)
	if err != nil {
		return fmt.Errorf("--values: %w", err)
	}
	reference, err := parseValues(group, opts.reference, opts.encoding)
	if err != nil {
		return fmt.Errorf("--reference: %w", err)
	}

	pl := pool.NewPool(opts.workers)
	defer pl.TearDown()

	sessionID := []byte(opts.session)
	user, err := protocol.NewTwoPartyHandler(
		eqcheck.StartUser(&eqcheck.UserConfig{Group: group, Values: values}, userID, serverID, pl),
		sessionID, true, protocol.WithLogger(logger))
	if err != nil {
		return err
	}
	server, err := protocol.NewTwoPartyHandler(
		eqcheck.StartServer(&eqcheck.ServerConfig{Group: group, Reference: reference}, serverID, userID, pl),
		sessionID, false, protocol.WithLogger(logger))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error { return relay(ctx, user, server) })
	g.Go(func() error { return relay(ctx, server, user) })
	if err = g.Wait(); err != nil {
		user.Stop()
		server.Stop()
		return err
	}

	result, err := server.Result()
	if err != nil {
		return err
	}
	res := result.(*eqcheck.Result)
	logger.Debug().Int("positions", res.Positions).Msg("finished")
	fmt.Fprintf(cmd.OutOrStdout(), "match: %t\n", res.Match)
	return nil
}

// relay forwards every message from one handler to the other, going through
// the wire encoding, until from has finished.
func relay(ctx context.Context, from, to protocol.Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-from.Listen():
			if !ok {
				return nil
			}
			data, err := cbor.Marshal(msg)
			if err != nil {
				return fmt.Errorf("encode %v: %w", msg, err)
			}
			var decoded protocol.Message
			if err = cbor.Unmarshal(data, &decoded); err != nil {
				return fmt.Errorf("decode message: %w", err)
			}
			to.Accept(&decoded)
		}
	}
}
