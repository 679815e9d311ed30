package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/insertsym/cmd/insertsym/commands"
	"github.com/walteh/insertsym/cmd/insertsym/opts"
	"github.com/walteh/insertsym/pkg/config"
	"github.com/walteh/insertsym/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootFlags are the shared flags
type rootFlags struct {
	configFile string
	debug      bool
	database   string
	ephemeral  bool
	strict     bool
}

// newRootCmd builds the command tree. Shared options are filled in once
// flags are parsed, before any command runs.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	shared := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "insertsym",
		Short: "Manage and test live symbol replacement tables",
		Long: `insertsym manages the table of triggers (like :geq: or ->) that are
replaced with symbols (like ≥ or →) while typing, and lets you import,
export, document and try out that table from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opened, err := newRootOpts(cmd, flags, stderr)
			if err != nil {
				return err
			}
			opened.In = stdin
			opened.Out = stdout
			opened.ErrOut = stderr
			*shared = *opened
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return shared.Close()
		},
	}

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewListCmd(shared),
		commands.NewDefaultsCmd(shared),
		commands.NewImportCmd(shared),
		commands.NewExportCmd(shared),
		commands.NewResetCmd(shared),
		commands.NewWireCmd(shared),
		commands.NewExpandCmd(shared),
		commands.NewDocCmd(shared),
		commands.NewWatchCmd(shared),
	)

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd
}

// newRootOpts loads config, sets up logging and opens the symbol table
func newRootOpts(cmd *cobra.Command, flags *rootFlags, stderr io.Writer) (*opts.RootOpts, error) {
	ctx := cmd.Context()

	cfg, err := config.LoadOrDefault(ctx, flags.configFile, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	if flags.database != "" {
		cfg.Database = flags.database
	}
	if flags.ephemeral {
		cfg.Ephemeral = true
	}
	if flags.strict {
		cfg.StrictSubstrings = true
	}

	level := cfg.Level()
	if flags.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	console := log.NewWithZerolog(cmd.OutOrStdout(), logger)
	user := log.NewUserLoggerTo(ctx, stderr)

	o, err := opts.Open(ctx, cfg, console, user)
	if err != nil {
		return nil, errors.Errorf("opening symbol table: %w", err)
	}
	return o, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", config.RCFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.database, "db", "", "symbol database path (overrides config)")
	cmd.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "keep the table in memory only")
	cmd.PersistentFlags().BoolVar(&flags.strict, "strict", false, "reject triggers contained in other triggers")
}
