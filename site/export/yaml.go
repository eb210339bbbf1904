// ABOUTME: Exports a page Document as a structured YAML outline.
// ABOUTME: Uses gopkg.in/yaml.v3 for serialization; sections keep document order.
package export

import (
	"fmt"

	"github.com/2389-research/brightpath/site"
	"gopkg.in/yaml.v3"
)

// YamlLink is a serializable YAML representation of a navigation link.
type YamlLink struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

// YamlCard is a serializable YAML representation of a feature card.
type YamlCard struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// YamlSection is a serializable YAML representation of a page section.
type YamlSection struct {
	Kind   string     `yaml:"kind"`
	Anchor string     `yaml:"anchor,omitempty"`
	Title  string     `yaml:"title,omitempty"`
	Body   string     `yaml:"body,omitempty"`
	Links  []YamlLink `yaml:"links,omitempty"`
	Cards  []YamlCard `yaml:"cards,omitempty"`
}

// YamlPage is the top-level serializable YAML representation of the page.
type YamlPage struct {
	Title     string        `yaml:"title"`
	Lang      string        `yaml:"lang"`
	Framework string        `yaml:"framework,omitempty"`
	Sections  []YamlSection `yaml:"sections"`
}

// ExportYAML exports the document as a YAML outline. Style hints are left
// out; the outline describes content and structure only.
func ExportYAML(doc site.Document) (string, error) {
	page := YamlPage{
		Title:     doc.Title,
		Lang:      doc.Lang,
		Framework: doc.Framework.URL,
		Sections:  make([]YamlSection, 0, len(doc.Sections)),
	}

	for _, s := range doc.Sections {
		ys := YamlSection{
			Kind:   string(s.Kind),
			Anchor: s.Anchor,
			Title:  s.Title,
			Body:   s.Body,
		}
		for _, l := range s.Links {
			ys.Links = append(ys.Links, YamlLink{Label: l.Label, Target: l.Href()})
		}
		for _, c := range s.Cards {
			ys.Cards = append(ys.Cards, YamlCard{Title: c.Title, Description: c.Description})
		}
		page.Sections = append(page.Sections, ys)
	}

	out, err := yaml.Marshal(&page)
	if err != nil {
		return "", fmt.Errorf("marshaling page outline: %w", err)
	}
	return string(out), nil
}
