package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/insertsym/cmd/insertsym/opts"
	"github.com/walteh/insertsym/pkg/engine"
	"github.com/walteh/insertsym/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewExpandCmd creates a new expand command
func NewExpandCmd(opts *opts.RootOpts) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "expand [text]",
		Short: "Type text through a simulated editor and print the result",
		Long: `Expand feeds its argument, or stdin, one character at a time into a
text surface, applying replacements as a user typing would see them. The end
of input counts as a commit, so a trailing delimited trigger is expanded too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			} else {
				data, err := io.ReadAll(opts.In)
				if err != nil {
					return errors.Errorf("reading stdin: %w", err)
				}
				input = string(data)
			}

			surface := opts.Hub.Register("expand")
			defer opts.Hub.Unregister(surface.ID)

			var onMatch func(engine.Result)
			if verbose {
				console := log.NewWithZerolog(opts.ErrOut, *zerolog.Ctx(cmd.Context()))
				onMatch = func(res engine.Result) {
					console.LogReplacement(cmd.Context(), surface.Name, res)
				}
			}
			out := Expand(surface, input, onMatch)
			_, err := fmt.Fprint(opts.Out, out)
			return err
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every replacement")
	return cmd
}

// Expand types input into surface rune by rune and finishes with a commit
// event. onMatch, if set, sees every applied replacement.
func Expand(surface *engine.Surface, input string, onMatch func(engine.Result)) string {
	text, caret := "", 0
	for _, r := range input {
		var res engine.Result
		text, caret, res = surface.Type(text, caret, r)
		if res.Matched && onMatch != nil {
			onMatch(res)
		}
	}

	text, _, res := surface.Finish(text, caret)
	if res.Matched && onMatch != nil {
		onMatch(res)
	}
	return text
}
