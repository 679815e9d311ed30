package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/insertsym/cmd/insertsym/opts"
	"github.com/walteh/insertsym/pkg/symbol"
	"gitlab.com/tozd/go/errors"
)

// NewWireCmd creates a new wire command
func NewWireCmd(opts *opts.RootOpts) *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "wire",
		Short: "Print the match list in the string form text surfaces receive",
		Long: `Wire prints the match list as a JSON array of {"key","val","f"}
objects, encoded a second time as a JSON string. With --decode it reads such
a string from stdin and prints one entry per line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !decode {
				wire, err := opts.Table.WireFormat()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(opts.Out, wire)
				return err
			}

			data, err := io.ReadAll(opts.In)
			if err != nil {
				return errors.Errorf("reading stdin: %w", err)
			}
			entries, err := symbol.DecodeWireFormat(strings.TrimSpace(string(data)))
			if err != nil {
				return err
			}
			for _, e := range entries {
				if _, err := fmt.Fprintf(opts.Out, "%s\t%s\t%s\n", e.Trigger, e.Replacement, e.Kind); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&decode, "decode", false, "decode a wire string from stdin")
	return cmd
}
