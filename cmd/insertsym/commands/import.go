package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/insertsym/cmd/insertsym/opts"
	"github.com/walteh/insertsym/pkg/symbol"
	"github.com/walteh/insertsym/pkg/tabular"
	"gitlab.com/tozd/go/errors"
)

// NewImportCmd creates a new import command
func NewImportCmd(opts *opts.RootOpts) *cobra.Command {
	var format string
	var merge bool
	cmd := &cobra.Command{
		Use:   "import [file|glob]...",
		Short: "Replace the symbol table with mappings read from files",
		Long: `Import reads '<key> <value>' pairs from every matching file and
commits them as the new symbol table. Files ending in .csv are read as CSV,
everything else is split on whitespace. Globs support '**'.

Blank lines are ignored. Any malformed line or duplicate key aborts the whole
import and nothing is changed. With no arguments the patterns from the
config file are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if len(patterns) == 0 {
				patterns = opts.Config.Import.Patterns
			}
			if len(patterns) == 0 {
				return errors.Errorf("no files to import")
			}

			f := opts.Config.ImportFormat()
			if format != "" {
				parsed, err := tabular.ParseFormat(format)
				if err != nil {
					return err
				}
				f = parsed
			}

			return importFiles(cmd, opts, patterns, f, merge)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "auto, csv or whitespace")
	cmd.Flags().BoolVar(&merge, "merge", false, "add to the current table instead of replacing it")
	return cmd
}

func importFiles(cmd *cobra.Command, opts *opts.RootOpts, patterns []string, f tabular.Format, merge bool) error {
	mappings, res, err := tabular.ImportFiles(cmd.Context(), patterns, f, opts.ValidateOptions())
	if err != nil {
		return errors.Errorf("importing: %w", err)
	}
	if !res.OK() {
		opts.UserLogger.LogCommit("import", res, 0, tabular.FormatMessage("Unable to import", res, "Line"))
		return ErrRejected
	}

	if merge {
		mappings = mergeMappings(opts.Table.WorkingCopy(), mappings)
	}
	return commit(cmd, opts, "import", "Unable to import", mappings)
}

// mergeMappings overlays imported onto the working copy, replacing values of
// existing triggers.
func mergeMappings(wc *symbol.WorkingCopy, imported []symbol.Mapping) []symbol.Mapping {
	for _, m := range imported {
		if found, i := wc.Find(m.Trigger); found {
			_ = wc.Replace(i, m.Replacement)
			continue
		}
		_, _ = wc.Add(m.Trigger, m.Replacement)
	}
	return wc.Mappings()
}

// NewExportCmd creates a new export command
func NewExportCmd(opts *opts.RootOpts) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the symbol table to a file ('-' for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := tabular.ParseFormat(format)
			if err != nil {
				return err
			}
			mappings := opts.Table.All()

			if args[0] == "-" {
				if f == tabular.FormatAuto {
					f = tabular.FormatCSV
				}
				return tabular.Write(opts.Out, mappings, f)
			}
			if err := tabular.WriteFile(args[0], mappings, f); err != nil {
				return err
			}
			opts.UserLogger.LogFileWritten(args[0], len(mappings))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "auto, csv or whitespace")
	return cmd
}
