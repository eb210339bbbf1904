// ABOUTME: Parses rendered page markup back into an Outline of sections, cards, anchors, and links.
// ABOUTME: CheckOutline verifies the structure a browser would see, independent of styling.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/2389-research/brightpath/site"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// OutlineCard is a feature card as found in the markup.
type OutlineCard struct {
	Title       string
	Description string
}

// OutlineSection is an element carrying a data-section attribute.
type OutlineSection struct {
	Kind   string
	Tag    string
	Anchor string
	Title  string
	Text   string
	Cards  []OutlineCard
}

// OutlineLink is an <a href> element.
type OutlineLink struct {
	Text    string
	Href    string
	Section string
}

// Anchor returns the fragment target of an in-page link, or "" for other links.
func (l OutlineLink) Anchor() string {
	if !strings.HasPrefix(l.Href, "#") {
		return ""
	}
	return strings.TrimPrefix(l.Href, "#")
}

// Outline is the structure recovered from rendered markup.
type Outline struct {
	Title       string
	Sections    []OutlineSection
	Links       []OutlineLink
	Anchors     []string
	Scripts     []string
	Stylesheets []string
}

// Inspect parses HTML from r and returns its outline.
func Inspect(r io.Reader) (*Outline, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	o := &Outline{}
	walkOutline(doc, o, "")
	return o, nil
}

func walkOutline(n *html.Node, o *Outline, section string) {
	if n.Type == html.ElementNode {
		if id := attr(n, "id"); id != "" {
			o.Anchors = append(o.Anchors, id)
		}

		switch n.DataAtom {
		case atom.Title:
			o.Title = collectText(n)
		case atom.Script:
			if src := attr(n, "src"); src != "" {
				o.Scripts = append(o.Scripts, src)
			}
		case atom.Link:
			if strings.EqualFold(attr(n, "rel"), "stylesheet") {
				o.Stylesheets = append(o.Stylesheets, attr(n, "href"))
			}
		case atom.A:
			if href, ok := lookupAttr(n, "href"); ok {
				o.Links = append(o.Links, OutlineLink{
					Text:    collectText(n),
					Href:    href,
					Section: section,
				})
			}
		}

		if kind := attr(n, "data-section"); kind != "" {
			o.Sections = append(o.Sections, outlineSection(n, kind))
			section = kind
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkOutline(c, o, section)
	}
}

func outlineSection(n *html.Node, kind string) OutlineSection {
	s := OutlineSection{
		Kind:   kind,
		Tag:    n.Data,
		Anchor: attr(n, "id"),
		Text:   collectText(n),
	}
	if h := findFirst(n, atom.H1, atom.H2); h != nil {
		s.Title = collectText(h)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if _, ok := lookupAttr(c, "data-card"); !ok {
			continue
		}
		card := OutlineCard{}
		if h := findFirst(c, atom.H3); h != nil {
			card.Title = collectText(h)
		}
		if p := findFirst(c, atom.P); p != nil {
			card.Description = collectText(p)
		}
		s.Cards = append(s.Cards, card)
	}
	return s
}

// Section returns the first section of the given kind, or nil.
func (o *Outline) Section(kind site.SectionKind) *OutlineSection {
	for i := range o.Sections {
		if o.Sections[i].Kind == string(kind) {
			return &o.Sections[i]
		}
	}
	return nil
}

// HasAnchor reports whether some element in the markup carries the id.
func (o *Outline) HasAnchor(anchor string) bool {
	for _, a := range o.Anchors {
		if a == anchor {
			return true
		}
	}
	return false
}

// DanglingLinks returns in-page links whose target id is not defined.
func (o *Outline) DanglingLinks() []OutlineLink {
	var dangling []OutlineLink
	for _, l := range o.Links {
		if !strings.HasPrefix(l.Href, "#") {
			continue
		}
		if !o.HasAnchor(l.Anchor()) {
			dangling = append(dangling, l)
		}
	}
	return dangling
}

// CheckOutline verifies the rendered structure: one of each section in
// order, the expected card count, and no dangling in-page links.
func CheckOutline(o *Outline, cardCount int) []site.Diagnostic {
	var diags []site.Diagnostic

	if len(o.Sections) != len(site.SectionOrder) {
		diags = append(diags, site.Diagnostic{
			Severity: "error",
			Message:  fmt.Sprintf("markup has %d sections, expected %d", len(o.Sections), len(site.SectionOrder)),
			Rule:     "section_count",
		})
	}
	for i, kind := range site.SectionOrder {
		if i >= len(o.Sections) {
			break
		}
		if o.Sections[i].Kind != string(kind) {
			diags = append(diags, site.Diagnostic{
				Severity: "error",
				Message:  fmt.Sprintf("markup section %d is %q, expected %q", i+1, o.Sections[i].Kind, kind),
				Section:  kind,
				Rule:     "section_order",
			})
		}
	}

	if features := o.Section(site.KindFeatures); features != nil && len(features.Cards) != cardCount {
		diags = append(diags, site.Diagnostic{
			Severity: "error",
			Message:  fmt.Sprintf("markup has %d feature cards, expected %d", len(features.Cards), cardCount),
			Section:  site.KindFeatures,
			Rule:     "feature_count",
		})
	}

	for _, l := range o.DanglingLinks() {
		diags = append(diags, site.Diagnostic{
			Severity: "error",
			Message:  fmt.Sprintf("link %q targets undefined anchor %q", l.Text, l.Anchor()),
			Section:  site.SectionKind(l.Section),
			Rule:     "anchor_target",
		})
	}

	if len(o.Scripts) == 0 && len(o.Stylesheets) == 0 {
		diags = append(diags, site.Diagnostic{
			Severity: "warning",
			Message:  "markup references no styling framework; page renders unstyled",
			Rule:     "framework_reference",
		})
	}

	return diags
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// findFirst returns the first descendant element matching any of the atoms.
func findFirst(n *html.Node, atoms ...atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			for _, a := range atoms {
				if c.DataAtom == a {
					return c
				}
			}
		}
		if found := findFirst(c, atoms...); found != nil {
			return found
		}
	}
	return nil
}

// collectText concatenates the text content of n with whitespace collapsed.
func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
