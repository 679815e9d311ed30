package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/insertsym/cmd/insertsym/opts"
	"github.com/walteh/insertsym/pkg/log"
	"github.com/walteh/insertsym/pkg/symbol"
	"github.com/walteh/insertsym/pkg/tabular"
	"gitlab.com/tozd/go/errors"
)

// ErrRejected is returned when a commit fails validation or persistence. The
// details have already been shown to the user.
var ErrRejected = errors.Base("changes rejected")

// NewListCmd creates a new list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	var raw bool
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the current symbol table",
		RunE: func(cmd *cobra.Command, args []string) error {
			mappings := opts.Table.All()
			if kind != "" {
				filtered, err := filterKind(mappings, kind, opts.Config.SpecialTokens)
				if err != nil {
					return err
				}
				mappings = filtered
			}
			return printMappings(cmd, opts, "symbol table", mappings, raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print one '<key> <value>' pair per line")
	cmd.Flags().StringVar(&kind, "kind", "", "only show delimited, immediate or block triggers")
	return cmd
}

// NewDefaultsCmd creates a new defaults command
func NewDefaultsCmd(opts *opts.RootOpts) *cobra.Command {
	var raw, byCategory bool
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in symbol set",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !byCategory {
				return printMappings(cmd, opts, "default symbols", opts.Table.Defaults(), raw)
			}
			for _, c := range symbol.Categories() {
				if err := printMappings(cmd, opts, c.Title, c.Mappings, raw); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print one '<key> <value>' pair per line")
	cmd.Flags().BoolVar(&byCategory, "categories", false, "group symbols by category")
	return cmd
}

// NewResetCmd creates a new reset command
func NewResetCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the symbol table with the built-in defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			return commit(cmd, opts, "reset", "Unable to reset", opts.Table.Defaults())
		},
	}
	return cmd
}

func printMappings(cmd *cobra.Command, opts *opts.RootOpts, title string, mappings []symbol.Mapping, raw bool) error {
	if raw {
		return tabular.Write(opts.Out, mappings, tabular.FormatWhitespace)
	}
	opts.Logger.Header(title)
	opts.Logger.LogMappings(cmd.Context(), mappings, opts.Config.SpecialTokens)
	return nil
}

func filterKind(mappings []symbol.Mapping, kind string, specialTokens []string) ([]symbol.Mapping, error) {
	want := -1
	for _, k := range []symbol.Kind{symbol.Delimited, symbol.Immediate, symbol.Block} {
		if k.String() == kind {
			want = int(k)
		}
	}
	if want < 0 {
		return nil, errors.Errorf("unknown kind %q", kind)
	}
	var out []symbol.Mapping
	for _, m := range mappings {
		if int(symbol.Classify(m.Trigger, specialTokens)) == want {
			out = append(out, m)
		}
	}
	return out, nil
}

// commit validates and saves mappings, reporting the diff and outcome.
func commit(cmd *cobra.Command, opts *opts.RootOpts, op, failure string, mappings []symbol.Mapping) error {
	ctx := cmd.Context()
	before := opts.Table.All()

	res := opts.Table.Commit(ctx, mappings)
	if !res.OK() {
		opts.UserLogger.LogCommit(op, res, 0, tabular.FormatMessage(failure, res, "Row"))
		return ErrRejected
	}

	opts.Logger.StartTableOperation(ctx, log.TableOperation{Name: op, Source: opts.Config.String(), Count: len(mappings)})
	changed := opts.Logger.LogDiff(ctx, before, opts.Table.All(), opts.Config.SpecialTokens)
	opts.Logger.EndTableOperation(ctx)
	opts.Logger.LogChangeSummary(ctx, op, changed)
	opts.UserLogger.LogCommit(op, res, len(mappings), "")
	return nil
}
