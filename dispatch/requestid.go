package dispatch

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// DefaultRequestIDHeader carries the request ID when none is configured.
const DefaultRequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the request ID assigned by the Dispatcher,
// or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// RequestIDConfig configures request ID assignment.
type RequestIDConfig struct {
	// HeaderName defaults to DefaultRequestIDHeader.
	HeaderName string

	// GenerateFunc returns a new ID. Defaults to GenerateUUIDv4.
	GenerateFunc func(r *http.Request) string

	// TrustIncoming reuses an ID supplied by the client.
	TrustIncoming bool
}

func (c RequestIDConfig) header() string {
	if c.HeaderName == "" {
		return DefaultRequestIDHeader
	}
	return c.HeaderName
}

// assign sets the request ID on the request, the response and the request
// context.
func (c RequestIDConfig) assign(w http.ResponseWriter, r *http.Request) *http.Request {
	header := c.header()

	id := ""
	if c.TrustIncoming {
		id = r.Header.Get(header)
	}

	if id == "" {
		generate := c.GenerateFunc
		if generate == nil {
			generate = GenerateUUIDv4
		}
		id = generate(r)
	}

	if id == "" {
		return r
	}

	r.Header.Set(header, id)
	w.Header().Set(header, id)

	return r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
}

// GenerateUUIDv4 returns a new random UUID string.
func GenerateUUIDv4(_ *http.Request) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new time-ordered UUID string.
func GenerateUUIDv7(_ *http.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
