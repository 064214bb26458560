package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	core "github.com/taurusgroup/eqcheck/pkg/eqcheck"
	"github.com/taurusgroup/eqcheck/pkg/math/curve"
)

type options struct {
	group     string
	values    string
	reference string
	encoding  string
	session   string
	workers   int
	logLevel  string
}

// NewRootCmd creates the eqcheck command. It is called once in main.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "eqcheck",
		Short: "Run a private equality check between a user and a server in one process",
		Long: `eqcheck runs both sides of the equality check locally, exchanging
encoded protocol messages in memory. The server learns whether every value
equals the reference at the same position, and nothing else.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.group, "group", curve.Ristretto255{}.Name(), "group to run the protocol over (ristretto255|secp256k1)")
	flags.StringVar(&opts.values, "values", "", "comma separated values held by the user")
	flags.StringVar(&opts.reference, "reference", "", "comma separated reference values held by the server")
	flags.StringVar(&opts.encoding, "encoding", "bytes", "how values are mapped to scalars (bytes|uint)")
	flags.StringVar(&opts.session, "session", "eqcheck", "session identifier, unique per execution")
	flags.IntVar(&opts.workers, "workers", 0, "number of workers, 0 for one per CPU")
	flags.StringVar(&opts.logLevel, "log-level", zerolog.InfoLevel.String(), "log level (debug|info|warn|error|disabled)")
	_ = rootCmd.MarkFlagRequired("values")
	_ = rootCmd.MarkFlagRequired("reference")

	return rootCmd
}

// parseValues splits a comma separated list, and maps each entry to a scalar.
func parseValues(group curve.Curve, list, encoding string) ([]curve.Scalar, error) {
	if list == "" {
		return nil, fmt.Errorf("empty list")
	}
	parts := strings.Split(list, ",")
	values := make([]curve.Scalar, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		switch encoding {
		case "bytes":
			values[i] = core.ValueFromBytes(group, []byte(part))
		case "uint":
			x, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
			values[i] = core.ValueFromUint64(group, x)
		default:
			return nil, fmt.Errorf("unknown encoding %q", encoding)
		}
	}
	return values, nil
}
