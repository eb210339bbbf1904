// ABOUTME: CLI entrypoint for the Bright Path page with print, export, validate, and server modes.
// ABOUTME: Wires together the page renderer, validator, HTTP server, and signal handling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/2389-research/brightpath/render"
	"github.com/2389-research/brightpath/site"
	"github.com/2389-research/brightpath/web"
)

var version = "dev"

const defaultPort = 2389

// config holds all CLI configuration parsed from flags and the environment.
type config struct {
	serverMode   bool
	port         int
	exportDir    string
	format       string
	validateOnly bool
	frameworkURL string
	unstyled     bool
	cacheTTL     time.Duration
	verbose      bool
	showVersion  bool
}

func main() {
	loadDotEnvAuto()

	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if cfg.showVersion {
		fmt.Printf("brightpath %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg, os.Stdout, os.Stderr))
}

// parseFlags parses command-line flags and returns a populated config.
// BRIGHTPATH_PORT and BRIGHTPATH_FRAMEWORK_URL supply defaults that flags override.
func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config

	port := defaultPort
	if v := os.Getenv("BRIGHTPATH_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			port = p
		} else {
			fmt.Fprintf(stderr, "warning: ignoring invalid BRIGHTPATH_PORT %q\n", v)
		}
	}

	fs := flag.NewFlagSet("brightpath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.serverMode, "server", false, "Serve the page over HTTP")
	fs.IntVar(&cfg.port, "port", port, "Server port")
	fs.StringVar(&cfg.exportDir, "export", "", "Write index.html into this directory")
	fs.StringVar(&cfg.format, "format", "html", "Output format for stdout: html, yaml, markdown")
	fs.BoolVar(&cfg.validateOnly, "validate", false, "Validate the page structure and exit")
	fs.StringVar(&cfg.frameworkURL, "framework-url", os.Getenv("BRIGHTPATH_FRAMEWORK_URL"), "Override the styling framework script URL")
	fs.BoolVar(&cfg.unstyled, "unstyled", false, "Omit the styling framework reference")
	fs.DurationVar(&cfg.cacheTTL, "cache-ttl", 0, "Server render cache TTL (0 keeps renders for the process lifetime)")
	fs.BoolVar(&cfg.verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		printHelp(stderr, version)
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected argument %q\n", fs.Arg(0))
		return cfg, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	return cfg, nil
}

// run dispatches to the appropriate mode based on the config.
// Returns an exit code: 0 for success, 1 for failure.
func run(cfg config, stdout, stderr io.Writer) int {
	switch {
	case cfg.validateOnly:
		return runValidate(cfg, stdout, stderr)
	case cfg.exportDir != "":
		return runExport(cfg, stdout, stderr)
	case cfg.serverMode:
		return runServer(cfg, stderr)
	default:
		return runPrint(cfg, stdout, stderr)
	}
}

// renderOptions maps styling flags onto renderer options.
func renderOptions(cfg config) []render.Option {
	switch {
	case cfg.unstyled:
		return []render.Option{render.WithFrameworkURL("")}
	case cfg.frameworkURL != "":
		return []render.Option{render.WithFrameworkURL(cfg.frameworkURL)}
	default:
		return nil
	}
}

// runPrint writes the page in the requested format to stdout.
func runPrint(cfg config, stdout, stderr io.Writer) int {
	format, err := render.ParseFormat(cfg.format)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	r, err := render.New(renderOptions(cfg)...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	out, err := r.RenderFormat(context.Background(), site.Render(), format)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if _, err := stdout.Write(out); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runExport writes the rendered page to <exportDir>/index.html.
func runExport(cfg config, stdout, stderr io.Writer) int {
	r, err := render.New(renderOptions(cfg)...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	doc := site.Render()
	path, err := exportPage(r, doc, cfg.exportDir)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, path)
	if cfg.verbose {
		if info, err := os.Stat(path); err == nil {
			fmt.Fprintf(stderr, "%d bytes, %d sections, %d links\n", info.Size(), len(doc.Sections), len(doc.Links()))
		}
	}
	return 0
}

// runServer serves the page until SIGINT or SIGTERM.
func runServer(cfg config, stderr io.Writer) int {
	server, err := web.NewServer(web.ServerConfig{
		Addr:          fmt.Sprintf("127.0.0.1:%d", cfg.port),
		RenderOptions: renderOptions(cfg),
		CacheTTL:      cfg.cacheTTL,
		ShowErrors:    cfg.verbose,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	// Set up context with signal handling for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(stderr, "listening on http://%s\n", server.Addr())
	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stderr, "shut down")
	return 0
}
