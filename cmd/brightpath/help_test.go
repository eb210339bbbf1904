// ABOUTME: Tests for the brightpath CLI help display covering content, flags, and env detection.
// ABOUTME: Help is printed by -help and by flag errors, so its flag list must stay complete.
package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintHelpContainsProjectName(t *testing.T) {
	var buf bytes.Buffer
	printHelp(&buf, "1.2.3")
	out := buf.String()

	if !strings.Contains(out, "brightpath 1.2.3") {
		t.Error("expected help output to contain name and version")
	}
	if !strings.Contains(out, "Primary School") {
		t.Error("expected help output to name the school")
	}
}

func TestPrintHelpContainsAllFlags(t *testing.T) {
	var buf bytes.Buffer
	printHelp(&buf, "dev")
	out := buf.String()

	flags := []string{
		"-format",
		"-framework-url",
		"-unstyled",
		"-server",
		"-port",
		"-cache-ttl",
		"-export",
		"-validate",
		"-verbose",
		"-version",
		"-help",
	}
	for _, f := range flags {
		if !strings.Contains(out, f) {
			t.Errorf("expected help to contain flag %q", f)
		}
	}
}

func TestPrintHelpEnvStatus(t *testing.T) {
	t.Setenv("BRIGHTPATH_PORT", "8080")
	t.Setenv("BRIGHTPATH_FRAMEWORK_URL", "")

	var buf bytes.Buffer
	printHelp(&buf, "dev")
	out := buf.String()

	if !strings.Contains(out, "BRIGHTPATH_PORT           [set]") {
		t.Error("expected BRIGHTPATH_PORT to show [set]")
	}
	if !strings.Contains(out, "BRIGHTPATH_FRAMEWORK_URL  [not set]") {
		t.Error("expected BRIGHTPATH_FRAMEWORK_URL to show [not set]")
	}
}

func TestEnvStatus(t *testing.T) {
	t.Setenv("TEST_BP_STATUS", "x")
	if got := envStatus("TEST_BP_STATUS"); got != "[set]" {
		t.Errorf("expected [set], got %q", got)
	}
	t.Setenv("TEST_BP_STATUS", "")
	if got := envStatus("TEST_BP_STATUS"); got != "[not set]" {
		t.Errorf("expected [not set], got %q", got)
	}
}

func TestPrintHelpHasNoExternalLinks(t *testing.T) {
	var buf bytes.Buffer
	printHelp(&buf, "dev")
	if strings.Contains(buf.String(), "github.com") {
		t.Error("expected help output without repository links")
	}
}
