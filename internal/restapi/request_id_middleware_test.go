package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddlewarePreservesValidID(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/live/trains", nil)
	req.Header.Set("X-Request-ID", "my-request.1:a")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "my-request.1:a", seen)
	assert.Equal(t, "my-request.1:a", rr.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, header := range []string{"", "has spaces", "bad!chars"} {
		req := httptest.NewRequest(http.MethodGet, "/live/trains", nil)
		if header != "" {
			req.Header.Set("X-Request-ID", header)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		generated := rr.Header().Get("X-Request-ID")
		require.NotEmpty(t, generated)
		assert.NotEqual(t, header, generated)
	}
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetRequestID(req.Context()))
}
