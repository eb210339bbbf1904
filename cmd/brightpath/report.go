// ABOUTME: Validation mode: lints the document and the rendered markup, then prints a styled report.
// ABOUTME: Colors come from lipgloss and drop out automatically when the output is not a terminal.
package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/2389-research/brightpath/render"
	"github.com/2389-research/brightpath/site"
	"github.com/2389-research/brightpath/site/validator"
	"github.com/charmbracelet/lipgloss"
)

// reportStyles holds the lipgloss styles bound to one output writer.
type reportStyles struct {
	title   lipgloss.Style
	error   lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	ok      lipgloss.Style
	dim     lipgloss.Style
}

func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)
	return reportStyles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("170")),
		error:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		info:    r.NewStyle().Foreground(lipgloss.Color("245")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("42")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// runValidate lints the document, renders it, and checks the markup a
// browser would receive. Exits 1 when any error is found.
func runValidate(cfg config, stdout, stderr io.Writer) int {
	r, err := render.New(renderOptions(cfg)...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	doc := r.Document(site.Render())
	docDiags := validator.Lint(doc)

	page, err := r.Bytes(doc)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	outline, err := render.Inspect(bytes.NewReader(page))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	markupDiags := render.CheckOutline(outline, validator.FeatureCardCount)

	printReport(stdout, doc, docDiags, markupDiags)

	if validator.HasErrors(docDiags) || validator.HasErrors(markupDiags) {
		return 1
	}
	return 0
}

// printReport writes the two diagnostic groups and a summary line.
func printReport(w io.Writer, doc site.Document, docDiags, markupDiags []site.Diagnostic) {
	st := newReportStyles(w)

	fmt.Fprintln(w, st.title.Render(doc.Title))
	fmt.Fprintln(w, st.dim.Render(fmt.Sprintf("%d sections, %d anchors, %d links", len(doc.Sections), len(doc.Anchors()), len(doc.Links()))))
	fmt.Fprintln(w)

	printGroup(w, st, "document", docDiags)
	printGroup(w, st, "markup", markupDiags)

	errs, warns := 0, 0
	for _, d := range append(append([]site.Diagnostic{}, docDiags...), markupDiags...) {
		switch d.Severity {
		case "error":
			errs++
		case "warning":
			warns++
		}
	}
	fmt.Fprintln(w)
	summary := fmt.Sprintf("%d error(s), %d warning(s)", errs, warns)
	if errs > 0 {
		fmt.Fprintln(w, st.error.Render(summary))
	} else {
		fmt.Fprintln(w, st.ok.Render(summary))
	}
}

func printGroup(w io.Writer, st reportStyles, name string, diags []site.Diagnostic) {
	if len(diags) == 0 {
		fmt.Fprintf(w, "%s %s\n", st.ok.Render("ok"), name)
		return
	}
	for _, d := range diags {
		label := st.info.Render(d.Severity)
		switch d.Severity {
		case "error":
			label = st.error.Render(d.Severity)
		case "warning":
			label = st.warning.Render(d.Severity)
		}
		where := name
		if d.Section != "" {
			where = name + "/" + string(d.Section)
		}
		fmt.Fprintf(w, "%s %s %s %s\n", label, where, st.dim.Render("["+d.Rule+"]"), d.Message)
	}
}
