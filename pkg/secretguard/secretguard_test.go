package secretguard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velais/sprintgate/pkg/secretguard"
)

func guarded(secret string) http.Handler {
	return secretguard.Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func request(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/internal/refresh", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("unconfigured secret disables the endpoint", func(t *testing.T) {
		t.Parallel()

		rec := request(guarded(""), "Bearer anything")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"error":"Endpoint not configured"}`, rec.Body.String())
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		t.Parallel()

		rec := request(guarded("s3cret"), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret is unauthorized", func(t *testing.T) {
		t.Parallel()

		rec := request(guarded("s3cret"), "Bearer wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-bearer scheme is unauthorized", func(t *testing.T) {
		t.Parallel()

		rec := request(guarded("s3cret"), "s3cret")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("matching secret is admitted", func(t *testing.T) {
		t.Parallel()

		rec := request(guarded("s3cret"), "Bearer s3cret")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
