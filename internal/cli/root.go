package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// RootOptions holds the flags of the mongo2sql command.
type RootOptions struct {
	InputFormat string // "auto" | "json" | "yaml"
	Format      string // "text" | "json"
	MaxDepth    int
	Strict      bool
	NegateNor   bool
	Verbose     bool
}

var (
	ValidInputFormats = []string{"auto", "json", "yaml"}
	ValidFormats      = []string{"text", "json"}
)

// NewRootCommand creates the mongo2sql command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mongo2sql [file]",
		Short: "Translate a MongoDB filter into a SQL predicate",
		Long: `Translate a MongoDB query filter document into a SQL boolean predicate.

The filter is read from the given file, or from stdin when no file (or "-")
is given. YAML input keeps its mapping order just like JSON.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !slices.Contains(ValidInputFormats, opts.InputFormat) {
				return fmt.Errorf("invalid input format %q: must be one of %v", opts.InputFormat, ValidInputFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runConvert(opts, path, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "auto", "input format (auto|json|yaml)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "maximum nesting of $and/$or/$nor groups (0 uses the default)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject operator objects holding more than one operator")
	cmd.Flags().BoolVar(&opts.NegateNor, "negate-nor", false, "render $nor as NOT (... OR ...)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging on stderr")

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    w != os.Stderr,
		}),
	)
}
