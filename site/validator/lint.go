// ABOUTME: Lint rules for the page Document covering section order, counts, card shape, and anchors.
// ABOUTME: Provides a single Lint(doc) function that runs all checks, returning diagnostics.
package validator

import (
	"fmt"
	"strings"

	"github.com/2389-research/brightpath/site"
)

// FeatureCardCount is the number of cards the features section must carry.
const FeatureCardCount = 3

// Lint runs all lint rules on the document and returns any diagnostics found.
func Lint(doc site.Document) []site.Diagnostic {
	var diags []site.Diagnostic

	diags = append(diags, checkSectionCount(doc)...)
	diags = append(diags, checkSectionOrder(doc)...)
	diags = append(diags, checkFeatureCount(doc)...)
	diags = append(diags, checkCardStructure(doc)...)
	diags = append(diags, checkDuplicateAnchors(doc)...)
	diags = append(diags, checkAnchorTargets(doc)...)
	diags = append(diags, checkEmptyText(doc)...)
	diags = append(diags, checkFramework(doc)...)

	return diags
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []site.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == "error" {
			return true
		}
	}
	return false
}

// checkSectionCount requires exactly one section of each kind.
func checkSectionCount(doc site.Document) []site.Diagnostic {
	var diags []site.Diagnostic
	counts := make(map[site.SectionKind]int)
	for _, s := range doc.Sections {
		counts[s.Kind]++
	}
	for _, kind := range site.SectionOrder {
		if n := counts[kind]; n != 1 {
			diags = append(diags, site.Diagnostic{
				Severity: "error",
				Message:  fmt.Sprintf("expected exactly one %s section, found %d", kind, n),
				Section:  kind,
				Rule:     "section_count",
			})
		}
	}
	reported := make(map[site.SectionKind]bool)
	for _, s := range doc.Sections {
		kind := s.Kind
		if !isKnownKind(kind) && !reported[kind] {
			reported[kind] = true
			diags = append(diags, site.Diagnostic{
				Severity: "error",
				Message:  fmt.Sprintf("unknown section kind %q", kind),
				Section:  kind,
				Rule:     "section_count",
			})
		}
	}
	return diags
}

// checkSectionOrder flags sections that appear out of the fixed order.
func checkSectionOrder(doc site.Document) []site.Diagnostic {
	var diags []site.Diagnostic
	last := -1
	for _, s := range doc.Sections {
		idx := kindIndex(s.Kind)
		if idx < 0 {
			continue
		}
		if idx < last {
			diags = append(diags, site.Diagnostic{
				Severity: "error",
				Message:  fmt.Sprintf("%s section appears after %s", s.Kind, site.SectionOrder[last]),
				Section:  s.Kind,
				Rule:     "section_order",
			})
			continue
		}
		last = idx
	}
	return diags
}

func checkFeatureCount(doc site.Document) []site.Diagnostic {
	features := doc.Section(site.KindFeatures)
	if features == nil {
		return nil
	}
	if len(features.Cards) != FeatureCardCount {
		return []site.Diagnostic{{
			Severity: "error",
			Message:  fmt.Sprintf("features section has %d cards, expected %d", len(features.Cards), FeatureCardCount),
			Section:  site.KindFeatures,
			Rule:     "feature_count",
		}}
	}
	return nil
}

// checkCardStructure requires every card to carry a title and a description
// styled the same way as its siblings.
func checkCardStructure(doc site.Document) []site.Diagnostic {
	var diags []site.Diagnostic
	for _, s := range doc.Sections {
		for i, c := range s.Cards {
			if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Description) == "" {
				diags = append(diags, site.Diagnostic{
					Severity: "error",
					Message:  fmt.Sprintf("card %d must have both a title and a description", i+1),
					Section:  s.Kind,
					Rule:     "card_structure",
				})
			}
			if i > 0 && c.Style != s.Cards[0].Style {
				diags = append(diags, site.Diagnostic{
					Severity: "warning",
					Message:  fmt.Sprintf("card %q is styled differently from card %q", c.Title, s.Cards[0].Title),
					Section:  s.Kind,
					Rule:     "card_structure",
				})
			}
		}
	}
	return diags
}

func checkDuplicateAnchors(doc site.Document) []site.Diagnostic {
	var diags []site.Diagnostic
	seen := make(map[string]site.SectionKind)
	for _, s := range doc.Sections {
		if s.Anchor == "" {
			continue
		}
		if prev, ok := seen[s.Anchor]; ok {
			diags = append(diags, site.Diagnostic{
				Severity: "error",
				Message:  fmt.Sprintf("anchor %q defined on both %s and %s", s.Anchor, prev, s.Kind),
				Section:  s.Kind,
				Rule:     "duplicate_anchor",
			})
			continue
		}
		seen[s.Anchor] = s.Kind
	}
	return diags
}

// checkAnchorTargets flags links whose target is not defined on any section.
// A dangling link degrades to a no-op scroll in the browser.
func checkAnchorTargets(doc site.Document) []site.Diagnostic {
	var diags []site.Diagnostic
	for _, s := range doc.Sections {
		for _, l := range s.Links {
			if l.Anchor == "" {
				diags = append(diags, site.Diagnostic{
					Severity: "error",
					Message:  fmt.Sprintf("link %q has no target anchor", l.Label),
					Section:  s.Kind,
					Rule:     "anchor_target",
				})
				continue
			}
			if !doc.HasAnchor(l.Anchor) {
				diags = append(diags, site.Diagnostic{
					Severity: "error",
					Message:  fmt.Sprintf("link %q targets undefined anchor %q", l.Label, l.Anchor),
					Section:  s.Kind,
					Rule:     "anchor_target",
				})
			}
		}
	}
	return diags
}

func checkEmptyText(doc site.Document) []site.Diagnostic {
	var diags []site.Diagnostic
	for _, s := range doc.Sections {
		if s.Title == "" && s.Body == "" && len(s.Cards) == 0 && len(s.Links) == 0 {
			diags = append(diags, site.Diagnostic{
				Severity: "error",
				Message:  fmt.Sprintf("%s section has no content", s.Kind),
				Section:  s.Kind,
				Rule:     "empty_text",
			})
		}
		for _, l := range s.Links {
			if strings.TrimSpace(l.Label) == "" {
				diags = append(diags, site.Diagnostic{
					Severity: "error",
					Message:  fmt.Sprintf("link to %q has no label", l.Anchor),
					Section:  s.Kind,
					Rule:     "empty_text",
				})
			}
		}
	}
	if doc.Title == "" {
		diags = append(diags, site.Diagnostic{
			Severity: "warning",
			Message:  "document has no title",
			Rule:     "empty_text",
		})
	}
	return diags
}

// checkFramework warns when no styling collaborator is declared. The page
// still renders, only unstyled.
func checkFramework(doc site.Document) []site.Diagnostic {
	if doc.Framework.URL == "" {
		return []site.Diagnostic{{
			Severity: "warning",
			Message:  "no styling framework declared; page renders unstyled",
			Rule:     "framework_reference",
		}}
	}
	switch doc.Framework.Kind {
	case "script", "stylesheet":
		return nil
	default:
		return []site.Diagnostic{{
			Severity: "error",
			Message:  fmt.Sprintf("unknown framework resource kind %q", doc.Framework.Kind),
			Rule:     "framework_reference",
		}}
	}
}

func kindIndex(kind site.SectionKind) int {
	for i, k := range site.SectionOrder {
		if k == kind {
			return i
		}
	}
	return -1
}

func isKnownKind(kind site.SectionKind) bool {
	return kindIndex(kind) >= 0
}
