// ABOUTME: Defines Document, PageSection, NavLink, FeatureCard, and Diagnostic types for the school page.
// ABOUTME: Provides lookup helpers for sections, anchors, and in-page links used by the renderer and validator.
package site

// SectionKind names one of the fixed content blocks of the page.
type SectionKind string

const (
	KindHeader       SectionKind = "header"
	KindHero         SectionKind = "hero"
	KindFeatures     SectionKind = "features"
	KindCallToAction SectionKind = "call-to-action"
	KindFooter       SectionKind = "footer"
)

// SectionOrder is the order in which sections appear in the document.
var SectionOrder = []SectionKind{
	KindHeader,
	KindHero,
	KindFeatures,
	KindCallToAction,
	KindFooter,
}

// Style carries the utility class tokens handed to the styling framework.
// Class applies to the element itself, Title and Body to its heading and text.
type Style struct {
	Class string
	Title string
	Body  string
}

// NavLink is an in-page link to a named anchor.
type NavLink struct {
	Label  string
	Anchor string
	Style  Style
}

// Href returns the fragment reference for the link target.
func (l NavLink) Href() string {
	return "#" + l.Anchor
}

// FeatureCard is a title and description pair shown in the features grid.
type FeatureCard struct {
	Title       string
	Description string
	Style       Style
}

// PageSection is a named block of fixed content.
type PageSection struct {
	Kind   SectionKind
	Anchor string
	Title  string
	Body   string // markdown, paragraphs separated by blank lines
	Links  []NavLink
	Cards  []FeatureCard
	Style  Style
}

// ExternalResource is a remote sub-resource the browser fetches at load time.
type ExternalResource struct {
	Kind string // "script" or "stylesheet"
	URL  string
}

// Document is the full page tree.
type Document struct {
	Lang      string
	Title     string
	Framework ExternalResource
	BodyStyle Style
	Sections  []PageSection
}

// Diagnostic represents a validation finding associated with a section.
type Diagnostic struct {
	Severity string // "error", "warning", "info"
	Message  string
	Section  SectionKind
	Rule     string
}

// Section returns the first section of the given kind, or nil if absent.
func (d *Document) Section(kind SectionKind) *PageSection {
	for i := range d.Sections {
		if d.Sections[i].Kind == kind {
			return &d.Sections[i]
		}
	}
	return nil
}

// Anchors returns every anchor defined on a section, in document order.
func (d *Document) Anchors() []string {
	var anchors []string
	for _, s := range d.Sections {
		if s.Anchor != "" {
			anchors = append(anchors, s.Anchor)
		}
	}
	return anchors
}

// HasAnchor reports whether some section defines the anchor. Matching is case-sensitive.
func (d *Document) HasAnchor(anchor string) bool {
	for _, s := range d.Sections {
		if s.Anchor == anchor {
			return true
		}
	}
	return false
}

// Links returns every link in the document, in document order.
func (d *Document) Links() []NavLink {
	var links []NavLink
	for _, s := range d.Sections {
		links = append(links, s.Links...)
	}
	return links
}
