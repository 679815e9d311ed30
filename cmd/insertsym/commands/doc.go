package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/insertsym/cmd/insertsym/opts"
	"github.com/walteh/insertsym/pkg/symbol"
	"gitlab.com/tozd/go/errors"
)

// NewDocCmd creates a new doc command
func NewDocCmd(opts *opts.RootOpts) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Generate the Markdown list of built-in symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" || out == "-" {
				return symbol.WriteMarkdown(opts.Out, symbol.Categories())
			}

			fh, err := os.Create(out)
			if err != nil {
				return errors.Errorf("creating %s: %w", out, err)
			}
			if err := symbol.WriteMarkdown(fh, symbol.Categories()); err != nil {
				fh.Close()
				return err
			}
			if err := fh.Close(); err != nil {
				return errors.Errorf("closing %s: %w", out, err)
			}
			opts.UserLogger.LogFileWritten(out, len(symbol.Defaults()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
