package sheets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylist/backend/internal/domain"
)

func newTestClient(baseURL string) *Client {
	client := NewClient(baseURL, 5*time.Second)
	client.backoff = func(int) time.Duration { return 0 }
	return client
}

func TestNewClient(t *testing.T) {
	client := NewClient("", 0)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.NotNil(t, client.backoff)
}

func TestExportURL(t *testing.T) {
	client := NewClient("https://docs.google.com/", 0)

	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/abc123/export?format=csv&gid=42",
		client.ExportURL("abc123", "42"))
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestExport_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spreadsheets/d/sheet-1/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		assert.Equal(t, "7", r.URL.Query().Get("gid"))

		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("name,brand\nAlign Tank Top,Lululemon\n"))
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).Export(context.Background(), "sheet-1", "7")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Lululemon", products[0].Brand())
}

func TestExport_DefaultGID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("gid"))
		w.Write([]byte("name\nTee\n"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Export(context.Background(), "sheet-1", "")
	assert.NoError(t, err)
}

func TestExport_MissingSheetID(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:1").Export(context.Background(), "", "0")
	assert.ErrorIs(t, err, domain.ErrImportFailed)
}

func TestExport_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Export(context.Background(), "private", "0")

	assert.ErrorIs(t, err, domain.ErrImportFailed)
	assert.Equal(t, int32(1), calls.Load())
}

func TestExport_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("name\nTee\n"))
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).Export(context.Background(), "sheet-1", "0")

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestExport_AllRetriesFail(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Export(context.Background(), "sheet-1", "0")

	assert.ErrorIs(t, err, domain.ErrImportFailed)
	assert.Equal(t, int32(maxAttempts), calls.Load())
}

func TestExport_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).Export(context.Background(), "sheet-1", "0")
	assert.ErrorIs(t, err, domain.ErrImportFailed)
}
