package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	t.Run("records explicit status and size", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		wrapped := newStatusRecorder(rec)

		wrapped.WriteHeader(http.StatusNotFound)
		_, _ = wrapped.Write([]byte("not found"))

		assert.Equal(t, http.StatusNotFound, wrapped.statusCode)
		assert.Equal(t, 9, wrapped.bytesWritten)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("implicit 200 on write", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		wrapped := newStatusRecorder(rec)

		_, _ = wrapped.Write([]byte("ok"))

		assert.Equal(t, http.StatusOK, wrapped.statusCode)
		assert.True(t, wrapped.headerWritten)
	})

	t.Run("second WriteHeader ignored", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		wrapped := newStatusRecorder(rec)

		wrapped.WriteHeader(http.StatusOK)
		wrapped.WriteHeader(http.StatusNotFound)

		assert.Equal(t, http.StatusOK, wrapped.statusCode)
	})
}

func TestLogging_PassesThrough(t *testing.T) {
	t.Parallel()

	handler := Logging(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/blog?page=2", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestRecover_CatchesPanic(t *testing.T) {
	t.Parallel()

	handler := Recover(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestLimitRequestBody(t *testing.T) {
	t.Parallel()

	handler := LimitRequestBody(10)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("small body allowed", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("oversized body rejected", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 100)))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/blog/annual-report-2025", "/blog/:slug"},
		{"/document/bylaws", "/document/:slug"},
		{"/pages/about", "/pages/:slug"},
		{"/attachments/bylaws/1-bylaws.pdf", "/attachments/:slug"},
		{"/blog", "/blog"},
		{"/blog/", "/blog/"},
		{"/healthz", "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizePath(tt.path))
		})
	}
}
