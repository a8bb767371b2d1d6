// Package cli implements the syren command line tool, which inspects and
// mutates a persistent store through signals, slices and storages.
package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nagisham/syren/logging"
	"github.com/nagisham/syren/webstorage"
	"github.com/nagisham/syren/webstorage/sqlite"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DB      string // sqlite path, *.json document, or empty for memory
	Format  string // "text" | "json" | "yaml"
	Verbose bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the syren CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "syren",
		Short: "Inspect and edit reactive state stores",
		Long: `syren opens the values of a store as reactive containers.

Objects are opened as slices, arrays as storages, and everything else as
signals. Every command goes through the container, so the same merge,
index and cleanup rules apply as in library code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "store path (*.json for a document, otherwise SQLite; empty for memory)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log container activity to stderr")

	cmd.AddCommand(newGetCommand(opts))
	cmd.AddCommand(newSetCommand(opts))
	cmd.AddCommand(newPushCommand(opts))
	cmd.AddCommand(newPopCommand(opts))
	cmd.AddCommand(newLenCommand(opts))
	cmd.AddCommand(newDelCommand(opts))
	cmd.AddCommand(newKeysCommand(opts))
	cmd.AddCommand(newDumpCommand(opts))

	return cmd
}

// session bundles what a command needs for one invocation.
type session struct {
	store  *webstorage.Store
	logger logging.Logger
	out    *Printer
	close  func() error
}

func (o *RootOptions) open(cmd *cobra.Command) (*session, error) {
	logger := newLogger(cmd.ErrOrStderr(), o.Verbose)
	storeOpts := func(so *webstorage.Options) { so.Logger = logger }

	s := &session{
		logger: logger,
		out:    &Printer{Format: o.Format, Writer: cmd.OutOrStdout()},
		close:  func() error { return nil },
	}

	switch {
	case o.DB == "":
		s.store = webstorage.New(webstorage.NewDocumentBackend(), storeOpts)
	case strings.HasSuffix(o.DB, ".json"):
		store, err := webstorage.Local(o.DB, storeOpts)
		if err != nil {
			return nil, err
		}
		s.store = store
	default:
		backend, err := sqlite.Open(o.DB)
		if err != nil {
			return nil, err
		}
		s.store = webstorage.New(backend, storeOpts)
		s.close = backend.Close
	}

	return s, nil
}

// newLogger writes warnings and errors to w, plus debug entries when verbose.
func newLogger(w io.Writer, verbose bool) logging.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
	})
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)

	return logging.NewZapAdapter(zap.New(core))
}
