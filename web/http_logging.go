// ABOUTME: Access log middleware for the page server, one log.Printf key=value line per request.
// ABOUTME: Page handlers annotate the line with the served format and ETag through the request context.
package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/2389-research/brightpath/render"
	"github.com/go-chi/chi/v5/middleware"
)

// pageLogEntry collects what a page handler served. Non-page routes leave it empty.
type pageLogEntry struct {
	format render.Format
	etag   string
}

type pageLogEntryKey struct{}

// annotatePageLog records the served format and ETag on the request's log entry.
func annotatePageLog(ctx context.Context, format render.Format, etag string) {
	if e, ok := ctx.Value(pageLogEntryKey{}).(*pageLogEntry); ok {
		e.format = format
		e.etag = etag
	}
}

func pageRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		entry := &pageLogEntry{}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), pageLogEntryKey{}, entry)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		format, etag := string(entry.format), entry.etag
		if format == "" {
			format, etag = "-", "-"
		}
		log.Printf("page request method=%s path=%s status=%d bytes=%d format=%s etag=%s revalidated=%t duration=%s remote=%s",
			r.Method,
			r.URL.Path,
			status,
			ww.BytesWritten(),
			format,
			etag,
			status == http.StatusNotModified,
			time.Since(start).Round(time.Microsecond),
			r.RemoteAddr,
		)
	})
}
