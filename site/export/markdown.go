// ABOUTME: Exports a page Document as a plain Markdown document, the text-only rendition of the page.
// ABOUTME: Headings follow section order; links keep their in-page fragment targets.
package export

import (
	"fmt"
	"strings"

	"github.com/2389-research/brightpath/site"
)

// ExportMarkdown renders the document as Markdown with deterministic ordering.
func ExportMarkdown(doc site.Document) string {
	var out strings.Builder

	for i, s := range doc.Sections {
		if i > 0 {
			fmt.Fprintln(&out)
		}

		switch s.Kind {
		case site.KindHeader:
			fmt.Fprintf(&out, "# %s\n", s.Title)
			if len(s.Links) > 0 {
				fmt.Fprintln(&out)
				for _, l := range s.Links {
					fmt.Fprintf(&out, "- [%s](%s)\n", l.Label, l.Href())
				}
			}
		case site.KindFeatures:
			for j, c := range s.Cards {
				if j > 0 {
					fmt.Fprintln(&out)
				}
				fmt.Fprintf(&out, "### %s\n\n%s\n", c.Title, c.Description)
			}
		default:
			if s.Title != "" {
				fmt.Fprintf(&out, "## %s\n", s.Title)
			}
			if s.Body != "" {
				if s.Title != "" {
					fmt.Fprintln(&out)
				}
				fmt.Fprintln(&out, s.Body)
			}
			for _, l := range s.Links {
				if s.Title != "" || s.Body != "" {
					fmt.Fprintln(&out)
				}
				fmt.Fprintf(&out, "[%s](%s)\n", l.Label, l.Href())
			}
		}
	}

	return out.String()
}
