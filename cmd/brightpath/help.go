// ABOUTME: Help display for the brightpath CLI with grouped flags, examples, and environment status.
// ABOUTME: Provides printHelp for usage output and envStatus for reporting configured settings.
package main

import (
	"fmt"
	"io"
	"os"
)

const schoolASCII = `
          _|_
         /___\
        /_____\      Bright Path
       |  []   |     Primary School
    ___|_[__]__|___
`

// printHelp writes a formatted help message to w, including usage patterns,
// grouped flags, examples, and the state of BRIGHTPATH_* settings.
func printHelp(w io.Writer, ver string) {
	fmt.Fprint(w, schoolASCII)
	fmt.Fprintf(w, "brightpath %s: landing page renderer for Bright Path Primary School\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  brightpath                          Print the page HTML to stdout")
	fmt.Fprintln(w, "  brightpath -format yaml             Print the page outline as YAML")
	fmt.Fprintln(w, "  brightpath -export <dir>            Write <dir>/index.html")
	fmt.Fprintln(w, "  brightpath -validate                Check page structure and exit")
	fmt.Fprintln(w, "  brightpath -server [-port 2389]     Serve the page over HTTP")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Output Flags:")
	fmt.Fprintln(w, "  -format <format>      html, yaml, markdown (default: html)")
	fmt.Fprintln(w, "  -framework-url <url>  Styling framework script URL (default: https://cdn.tailwindcss.com)")
	fmt.Fprintln(w, "  -unstyled             Omit the styling framework reference")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Server Flags:")
	fmt.Fprintln(w, "  -server               Start HTTP server mode")
	fmt.Fprintln(w, "  -port <port>          Server port (default: 2389)")
	fmt.Fprintln(w, "  -cache-ttl <duration> Render cache lifetime (default: 0, never expires)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -validate             Validate page structure without writing output")
	fmt.Fprintln(w, "  -verbose              Verbose output")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  brightpath > index.html")
	fmt.Fprintln(w, "  brightpath -export public")
	fmt.Fprintln(w, "  brightpath -format markdown")
	fmt.Fprintln(w, "  brightpath -unstyled -validate")
	fmt.Fprintln(w, "  brightpath -server -port 8080")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  BRIGHTPATH_PORT           %s\n", envStatus("BRIGHTPATH_PORT"))
	fmt.Fprintf(w, "  BRIGHTPATH_FRAMEWORK_URL  %s\n", envStatus("BRIGHTPATH_FRAMEWORK_URL"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Both are optional and may also come from a .env file.")
}

// envStatus returns "[set]" if the named environment variable is non-empty,
// or "[not set]" otherwise.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "[set]"
	}
	return "[not set]"
}
