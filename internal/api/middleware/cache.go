package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedResponse is a successful response body with its content type
type cachedResponse struct {
	contentType string
	body        []byte
}

// ResponseCache serves repeated GETs from memory for a fixed duration,
// keyed by the full request URL. Only 200 responses are cached.
type ResponseCache struct {
	entries *expirable.LRU[string, cachedResponse]
	logger  *slog.Logger
}

// NewResponseCache creates a cache holding up to size responses for ttl
func NewResponseCache(size int, ttl time.Duration, logger *slog.Logger) *ResponseCache {
	return &ResponseCache{
		entries: expirable.NewLRU[string, cachedResponse](size, nil, ttl),
		logger:  logger.With(slog.String("component", "response-cache")),
	}
}

// capturingWriter tees the response body so it can be cached
type capturingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *capturingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware returns the caching middleware
func (c *ResponseCache) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := r.URL.String()
			if cached, ok := c.entries.Get(key); ok {
				c.logger.Debug("serving cached response", slog.String("key", key))
				w.Header().Set("Content-Type", cached.contentType)
				w.Header().Set("X-Cache", "HIT")
				_, _ = w.Write(cached.body)
				return
			}

			w.Header().Set("X-Cache", "MISS")
			cw := &capturingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.status == http.StatusOK {
				c.entries.Add(key, cachedResponse{
					contentType: w.Header().Get("Content-Type"),
					body:        bytes.Clone(cw.body.Bytes()),
				})
			}
		})
	}
}

// Len returns the number of cached responses
func (c *ResponseCache) Len() int {
	return c.entries.Len()
}
