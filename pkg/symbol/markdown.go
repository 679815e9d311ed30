package symbol

import (
	"fmt"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// WriteMarkdown renders categories as a Markdown symbol list: a numbered
// table of contents followed by one | Symbol | Key | table per category.
func WriteMarkdown(w io.Writer, categories []Category) error {
	var b strings.Builder
	b.WriteString("<!--- Auto-generated by insertsym doc -->\n\n")
	b.WriteString("### Sections\n")
	for i, c := range categories {
		fmt.Fprintf(&b, "%d. [%s](#%s)\n", i+1, c.Title, anchor(c.Title))
	}
	b.WriteString("\n")

	for _, c := range categories {
		fmt.Fprintf(&b, "### %s\n\n| Symbol | Key |\n| --- | --- |\n", c.Title)
		for _, m := range c.Mappings {
			fmt.Fprintf(&b, "| %s | `%s` |\n", m.Replacement, m.Trigger)
		}
		b.WriteString("\n[Back to Top](#sections)\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Errorf("writing markdown: %w", err)
	}
	return nil
}

func anchor(title string) string {
	r := strings.NewReplacer(" ", "-", "(", "", ")", "")
	return strings.ToLower(r.Replace(title))
}
