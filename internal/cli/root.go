package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Alwanly/ttn-storage-pull/internal/storage"
)

// settings are shared by every subcommand of one root command.
type settings struct {
	out        io.Writer
	errOut     io.Writer
	configFile string
	httpClient storage.Doer
}

type Option func(*settings)

// WithOutput redirects stdout and stderr of the command tree.
func WithOutput(out, errOut io.Writer) Option {
	return func(s *settings) {
		s.out = out
		s.errOut = errOut
	}
}

// WithHTTPClient makes pulls go through d instead of a fresh *http.Client.
func WithHTTPClient(d storage.Doer) Option {
	return func(s *settings) { s.httpClient = d }
}

// NewRootCommand builds the ttnpull command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	s := &settings{out: os.Stdout, errOut: os.Stderr}
	for _, opt := range opts {
		opt(s)
	}

	root := &cobra.Command{
		Use:   "ttnpull",
		Short: "Pull uplinks from The Things Network storage integration",
		Long: `ttnpull fetches the uplink messages kept by the storage integration
of a The Things Network application over a trailing time window.

Both the V2 (legacy) and V3 (The Things Stack) storage APIs are supported.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(s.out)
	root.SetErr(s.errOut)

	root.PersistentFlags().StringVar(&s.configFile, "config", "", "YAML config file")

	root.AddCommand(newPullCommand(s))
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if kind := storage.Kind(err); kind != "unknown" {
			failure(os.Stderr, "%s error: %v", kind, err)
		} else {
			failure(os.Stderr, "error: %v", err)
		}
		return 1
	}
	return 0
}
