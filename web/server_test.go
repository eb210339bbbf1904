// ABOUTME: Tests for the page HTTP server and chi router.
// ABOUTME: Covers health, page and outline routes, ETag revalidation, HEAD, 404/405 pages, and shutdown.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/2389-research/brightpath/render"
	"github.com/2389-research/brightpath/site"
)

func newTestServer(t *testing.T, opts ...render.Option) *Server {
	t.Helper()
	srv, err := NewServer(ServerConfig{RenderOptions: opts})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func serve(srv http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestServerHealth(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/health", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status %q, got %q", "ok", body["status"])
	}
}

func TestServerPage(t *testing.T) {
	srv := newTestServer(t)
	rec := serve(srv, http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("expected ETag header")
	}

	r, err := render.New()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	want, err := r.Bytes(site.Render())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.Equal(rec.Body.Bytes(), want) {
		t.Error("expected served bytes to match the renderer output")
	}

	again := serve(srv, http.MethodGet, "/index.html", nil)
	if !bytes.Equal(again.Body.Bytes(), want) {
		t.Error("expected /index.html to serve the same page")
	}
	if again.Header().Get("ETag") != rec.Header().Get("ETag") {
		t.Error("expected stable ETag across requests")
	}
}

func TestServerPageStructure(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/", nil)

	o, err := render.Inspect(rec.Body)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if diags := render.CheckOutline(o, 3); len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %+v", diags)
	}
}

func TestServerConditionalRequest(t *testing.T) {
	srv := newTestServer(t)
	first := serve(srv, http.MethodGet, "/", nil)
	etag := first.Header().Get("ETag")

	tests := []struct {
		name        string
		ifNoneMatch string
		wantStatus  int
	}{
		{name: "matching etag", ifNoneMatch: etag, wantStatus: http.StatusNotModified},
		{name: "weak matching etag", ifNoneMatch: "W/" + etag, wantStatus: http.StatusNotModified},
		{name: "etag in list", ifNoneMatch: `"stale", ` + etag, wantStatus: http.StatusNotModified},
		{name: "wildcard", ifNoneMatch: "*", wantStatus: http.StatusNotModified},
		{name: "stale etag", ifNoneMatch: `"stale"`, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(srv, http.MethodGet, "/", http.Header{"If-None-Match": {tt.ifNoneMatch}})
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusNotModified && rec.Body.Len() != 0 {
				t.Error("expected empty body on 304")
			}
		})
	}
}

func TestServerOutlines(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{path: "/outline.yaml", contentType: "application/yaml; charset=utf-8", contains: "title: Vibrant Student Life"},
		{path: "/outline.md", contentType: "text/markdown; charset=utf-8", contains: "[Apply Now](#admissions)"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(srv, http.MethodGet, tt.path, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.contentType {
				t.Errorf("expected content type %q, got %q", tt.contentType, ct)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("expected body to contain %q, got %q", tt.contains, rec.Body.String())
			}
		})
	}
}

func TestServerHead(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodHead, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("expected ETag on HEAD")
	}
}

func TestServerNotFound(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodGet, "/admissions", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "404 Not Found") {
		t.Errorf("expected 404 page, got %q", body)
	}
	if !strings.Contains(body, `href="/"`) {
		t.Error("expected link back to the page")
	}
}

func TestServerMethodNotAllowed(t *testing.T) {
	rec := serve(newTestServer(t), http.MethodPost, "/", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Errorf("expected Allow header, got %q", allow)
	}
}

func TestServerUnstyled(t *testing.T) {
	rec := serve(newTestServer(t, render.WithFrameworkURL("")), http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "cdn.tailwindcss.com") {
		t.Error("expected no framework reference")
	}
	for _, want := range []string{"Academic Excellence", "Caring Faculty", "Vibrant Student Life", "Apply Now"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected unstyled page to contain %q", want)
		}
	}
}

func TestServerImplementsHandler(t *testing.T) {
	var _ http.Handler = newTestServer(t)
}

func TestServerDefaultAddr(t *testing.T) {
	if addr := newTestServer(t).Addr(); addr != "127.0.0.1:2389" {
		t.Errorf("expected default addr, got %q", addr)
	}
}

func TestServerListenAndServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	srv, err := NewServer(ServerConfig{Addr: addr})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("server never came up: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
