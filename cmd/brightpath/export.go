// ABOUTME: Writes the rendered page into an output directory as index.html.
// ABOUTME: The file is written to a temp name first and renamed so readers never see a partial page.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/2389-research/brightpath/render"
	"github.com/2389-research/brightpath/site"
)

// exportPage renders doc and writes it to dir/index.html, creating dir if needed.
// Returns the path of the written file.
func exportPage(r *render.Renderer, doc site.Document, dir string) (string, error) {
	data, err := r.Bytes(doc)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, "index.html")
	tmp, err := os.CreateTemp(dir, ".index-*.html")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("renaming into %s: %w", path, err)
	}

	return path, nil
}
