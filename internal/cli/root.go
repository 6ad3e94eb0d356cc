package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/querysamples/internal/config"
)

// RootOptions holds global flags and the resolved configuration for all
// commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	Dataset    string // dataset file; empty = embedded
	Backend    string // "memory" | "sql"

	// Logger receives structured logs. Nil means slog.Default().
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = config.ValidFormats

// NewRootCommand creates the root command for the qsamples CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "qsamples",
		Short: "qsamples - query expression samples",
		Long: `Run query-composition samples over a small Customers/Orders/Products dataset.

Each sample demonstrates one query pattern (filtering, projection, grouping,
ordering, aggregation) and prints its result as lines of text.

Settings come from flags, QSAMPLES_* environment variables and an optional
qsamples.toml, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: nearest qsamples.toml)")
	cmd.PersistentFlags().StringVar(&opts.Dataset, "dataset", "", "dataset YAML file (default: embedded)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolve merges defaults, the config file, the environment and the flags
// of the executing command into opts, then installs the logger.
func (opts *RootOptions) resolve(cmd *cobra.Command) error {
	v, err := config.New(opts.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeInvalidConfig+": cannot load configuration", err)
	}

	for _, key := range []string{config.KeyFormat, config.KeyVerbose, config.KeyDataset, config.KeyBackend} {
		if f := lookupFlag(cmd, key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return WrapExitError(ExitCommandError, "bind flag "+key, err)
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeInvalidConfig+": invalid configuration", err)
	}
	opts.Format = cfg.Format
	opts.Verbose = cfg.Verbose
	opts.Dataset = cfg.Dataset
	opts.Backend = cfg.Backend

	if opts.Logger == nil {
		opts.Logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
	}
	if used := config.UsedFile(v); used != "" {
		opts.logger().Debug("config loaded", "file", used)
	}
	return nil
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}

// newLogger returns a text logger on w: Info by default, Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (opts *RootOptions) logger() *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return slog.Default()
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
