package tabular

import (
	"fmt"
	"strings"

	"github.com/walteh/insertsym/pkg/symbol"
)

// FormatMessage renders a failed validation for a person. op describes the
// attempted operation ("Unable to import") and entryType labels each format
// error ("Line" for files, "Row" for tables). Ok results render as "".
func FormatMessage(op string, res symbol.ValidationResult, entryType string) string {
	var b strings.Builder
	switch res.Code {
	case symbol.FormatErrors:
		fmt.Fprintf(&b, "Error: %s due to incorrect format in the following lines (expecting <key> <value>).\n\n", op)
		for _, e := range res.Format {
			if e.Location != "" {
				fmt.Fprintf(&b, "%s %s: %s\n", entryType, e.Location, e.Raw)
				continue
			}
			fmt.Fprintf(&b, "%s %d: %s\n", entryType, e.Index, e.Raw)
		}
	case symbol.DuplicateKeys:
		fmt.Fprintf(&b, "Error: %s as the following duplicate keys were detected: \n\n", op)
		for _, k := range res.Duplicates {
			b.WriteString(k + "\n")
		}
	case symbol.SubstringConflicts:
		b.WriteString("Error: The following key conflicts were detected. Changes will not be saved.\n\n")
		for _, c := range res.Conflicts {
			fmt.Fprintf(&b, "'%s' and '%s'\n", c.Trigger, c.Other)
		}
	case symbol.PersistFailed:
		fmt.Fprintf(&b, "Error: %s as the symbol list could not be saved: %v\n", op, res.Err)
	}
	return b.String()
}
