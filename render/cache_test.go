// ABOUTME: Tests for the render cache covering TTL-based expiry, cache hits, and concurrent access.
// ABOUTME: Validates RenderCache wraps a RenderFunc with sha256-keyed in-memory caching.
package render

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/2389-research/brightpath/site"
)

// fakeRenderer is a test double that counts invocations and returns fixed output.
type fakeRenderer struct {
	callCount atomic.Int64
	output    []byte
	err       error
}

func (f *fakeRenderer) render(ctx context.Context, doc site.Document, format Format) ([]byte, error) {
	f.callCount.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

func TestRenderCacheReturnsCachedResult(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("<html>test</html>")}
	cache := NewRenderCache(renderer.render, 5*time.Minute)

	doc := site.Render()
	ctx := context.Background()

	data1, err := cache.Render(ctx, doc, FormatHTML)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if string(data1) != "<html>test</html>" {
		t.Errorf("expected <html>test</html>, got %s", string(data1))
	}

	data2, err := cache.Render(ctx, doc, FormatHTML)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if string(data2) != string(data1) {
		t.Errorf("expected cached result, got %s", string(data2))
	}
	if renderer.callCount.Load() != 1 {
		t.Errorf("expected 1 renderer call (cached), got %d", renderer.callCount.Load())
	}
}

func TestRenderCacheDifferentFormatsDifferentEntries(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("output")}
	cache := NewRenderCache(renderer.render, 5*time.Minute)

	doc := site.Render()
	ctx := context.Background()

	cache.Render(ctx, doc, FormatHTML)
	cache.Render(ctx, doc, FormatYAML)

	if renderer.callCount.Load() != 2 {
		t.Errorf("expected 2 renderer calls for different formats, got %d", renderer.callCount.Load())
	}
	if cache.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", cache.Len())
	}
}

func TestRenderCacheDifferentDocumentsDifferentEntries(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("output")}
	cache := NewRenderCache(renderer.render, 5*time.Minute)
	ctx := context.Background()

	styled := site.Render()
	unstyled := site.Render()
	unstyled.Framework.URL = ""

	cache.Render(ctx, styled, FormatHTML)
	cache.Render(ctx, unstyled, FormatHTML)

	if renderer.callCount.Load() != 2 {
		t.Errorf("expected 2 renderer calls for different documents, got %d", renderer.callCount.Load())
	}
}

func TestRenderCacheTTLExpiry(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("output")}
	cache := NewRenderCache(renderer.render, 50*time.Millisecond)

	doc := site.Render()
	ctx := context.Background()

	cache.Render(ctx, doc, FormatHTML)
	if renderer.callCount.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", renderer.callCount.Load())
	}

	time.Sleep(100 * time.Millisecond)

	cache.Render(ctx, doc, FormatHTML)
	if renderer.callCount.Load() != 2 {
		t.Errorf("expected 2 calls after TTL expiry, got %d", renderer.callCount.Load())
	}
}

func TestRenderCacheZeroTTLNeverExpires(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("output")}
	cache := NewRenderCache(renderer.render, 0)

	doc := site.Render()
	ctx := context.Background()

	cache.Render(ctx, doc, FormatHTML)
	time.Sleep(10 * time.Millisecond)
	cache.Render(ctx, doc, FormatHTML)

	if renderer.callCount.Load() != 1 {
		t.Errorf("expected 1 call with zero TTL, got %d", renderer.callCount.Load())
	}
}

func TestRenderCacheDoesNotCacheErrors(t *testing.T) {
	renderer := &fakeRenderer{err: fmt.Errorf("render failed")}
	cache := NewRenderCache(renderer.render, 5*time.Minute)

	doc := site.Render()
	ctx := context.Background()

	if _, err := cache.Render(ctx, doc, FormatHTML); err == nil {
		t.Fatal("expected error, got nil")
	}
	if cache.Len() != 0 {
		t.Errorf("expected no entries after error, got %d", cache.Len())
	}

	renderer.err = nil
	renderer.output = []byte("fixed output")

	data, err := cache.Render(ctx, doc, FormatHTML)
	if err != nil {
		t.Fatalf("expected success after fix, got: %v", err)
	}
	if string(data) != "fixed output" {
		t.Errorf("expected 'fixed output', got %s", string(data))
	}
}

func TestRenderCacheConcurrentAccess(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("concurrent output")}
	cache := NewRenderCache(renderer.render, 5*time.Minute)

	doc := site.Render()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := cache.Render(ctx, doc, FormatHTML)
			if err != nil {
				t.Errorf("concurrent call failed: %v", err)
				return
			}
			if string(data) != "concurrent output" {
				t.Errorf("expected 'concurrent output', got %s", string(data))
			}
		}()
	}
	wg.Wait()

	if renderer.callCount.Load() != 1 {
		t.Errorf("expected a single render for concurrent misses, got %d", renderer.callCount.Load())
	}
}

func TestRenderCacheClear(t *testing.T) {
	renderer := &fakeRenderer{output: []byte("output")}
	cache := NewRenderCache(renderer.render, 5*time.Minute)
	ctx := context.Background()

	cache.Render(ctx, site.Render(), FormatHTML)
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", cache.Len())
	}

	cache.Render(ctx, site.Render(), FormatHTML)
	if renderer.callCount.Load() != 2 {
		t.Errorf("expected re-render after Clear, got %d calls", renderer.callCount.Load())
	}
}

func TestRenderCacheKeyIncludesFormatAndContent(t *testing.T) {
	doc := site.Render()
	expected := fmt.Sprintf("%x:%s", sha256.Sum256([]byte(fmt.Sprintf("%#v", doc))), FormatHTML)

	if key := cacheKey(doc, FormatHTML); key != expected {
		t.Errorf("expected cache key %q, got %q", expected, key)
	}
	if cacheKey(site.Render(), FormatHTML) != cacheKey(site.Render(), FormatHTML) {
		t.Error("expected stable key for identical documents")
	}
}
