package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/parsenplate/scraper/internal/errors"
)

const testUA = "Mozilla/5.0 (test)"

func TestFetchSuccess(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><h1>Crème brûlée</h1></body></html>"))
	}))
	defer srv.Close()

	f := NewPageFetcher("fallback", testUA, 2*time.Second)
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, testUA, gotUA)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, page.HTML, "Crème brûlée")
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("blocked"))
	}))
	defer srv.Close()

	f := NewPageFetcher("fallback", testUA, 2*time.Second)
	page, err := f.Fetch(context.Background(), srv.URL)

	assert.Nil(t, page)
	require.Error(t, err)
	assert.Equal(t, "HTTP Error 403: Forbidden", err.Error())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeFetch))
}

func TestFetchInvalidUTF8(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0x3c, 0x68, 0x31, 0x3e, 0xff, 0xfe, 0xfd})
	}))
	defer srv.Close()

	f := NewPageFetcher("fallback", testUA, 2*time.Second)
	_, err := f.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDecode))
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	f := NewPageFetcher("fallback", testUA, 50*time.Millisecond)
	_, err := f.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTimeout), "got %v", err)
}

func TestFetchInvalidURL(t *testing.T) {
	f := NewPageFetcher("fallback", testUA, time.Second)
	_, err := f.Fetch(context.Background(), "://not a url")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeFetch))
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "HTTP Error 404: Not Found", StatusMessage(404))
	assert.Equal(t, "HTTP Error 500: Internal Server Error", StatusMessage(500))
}

func TestIsTimeout(t *testing.T) {
	assert.False(t, IsTimeout(nil))
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.False(t, IsTimeout(context.Canceled))
}
