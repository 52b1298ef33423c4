package fetcher

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-rod/rod/lib/launcher"

	"github.com/IshaanNene/sitebrief/internal/config"
	"github.com/IshaanNene/sitebrief/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const testPage = `<html><body><h1>Acme Rockets</h1><p>We build rockets.</p></body></html>`

func newRequest(t *testing.T, url string) *types.Request {
	t.Helper()
	req, err := types.NewRequest(url)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return req
}

func TestNewSelectsFetcher(t *testing.T) {
	for _, typ := range []string{"browser", "chromedp", "http"} {
		cfg := config.DefaultConfig()
		cfg.Fetcher.Type = typ
		f, err := New(cfg, testLogger)
		if err != nil {
			t.Fatalf("New(%s): %v", typ, err)
		}
		if f.Type() != typ {
			t.Errorf("expected type %q, got %q", typ, f.Type())
		}
		_ = f.Close()
	}

	cfg := config.DefaultConfig()
	cfg.Fetcher.Type = "curl"
	if _, err := New(cfg, testLogger); !errors.Is(err, types.ErrUnsupportedFetcher) {
		t.Errorf("expected ErrUnsupportedFetcher, got %v", err)
	}
}

func TestHTTPFetcherPlain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "sitebrief/") {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	f := NewHTTPFetcher(&cfg.Fetcher, testLogger)
	defer f.Close()

	resp, err := f.Fetch(context.Background(), newRequest(t, srv.URL))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != testPage {
		t.Errorf("unexpected body %q", resp.Body)
	}
}

func TestHTTPFetcherBrotli(t *testing.T) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	_, _ = bw.Write([]byte(testPage))
	_ = bw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	f := NewHTTPFetcher(&cfg.Fetcher, testLogger)
	defer f.Close()

	resp, err := f.Fetch(context.Background(), newRequest(t, srv.URL))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(resp.Body) != testPage {
		t.Errorf("brotli body not decoded: %q", resp.Body)
	}
}

func TestHTTPFetcherErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	f := NewHTTPFetcher(&cfg.Fetcher, testLogger)
	defer f.Close()

	_, err := f.Fetch(context.Background(), newRequest(t, srv.URL))
	var fe *types.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", fe.StatusCode)
	}
}

func TestHTTPFetcherBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Fetcher.MaxBodySize = 10
	f := NewHTTPFetcher(&cfg.Fetcher, testLogger)
	defer f.Close()

	resp, err := f.Fetch(context.Background(), newRequest(t, srv.URL))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(resp.Body) != 10 {
		t.Errorf("expected body capped at 10 bytes, got %d", len(resp.Body))
	}
}

// skipWithoutBrowser skips browser tests in -short mode or when no
// Chromium is installed.
func skipWithoutBrowser(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test")
	}
	if _, ok := launcher.LookPath(); !ok {
		t.Skip("no chromium found")
	}
}

func TestBrowserFetchers(t *testing.T) {
	skipWithoutBrowser(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Fetcher.ReadyTimeout = 15 * time.Second

	fetchers := []Fetcher{
		NewBrowserFetcher(&cfg.Fetcher, testLogger),
		NewChromedpFetcher(&cfg.Fetcher, testLogger),
	}
	for _, f := range fetchers {
		t.Run(f.Type(), func(t *testing.T) {
			resp, err := f.Fetch(context.Background(), newRequest(t, srv.URL))
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			if !strings.Contains(string(resp.Body), "We build rockets.") {
				t.Errorf("rendered HTML missing content: %s", resp.Body)
			}
		})
	}
}

func TestBrowserFetcherUnreachable(t *testing.T) {
	skipWithoutBrowser(t)

	cfg := config.DefaultConfig()
	cfg.Fetcher.ReadyTimeout = 5 * time.Second
	f := NewBrowserFetcher(&cfg.Fetcher, testLogger)

	_, err := f.Fetch(context.Background(), newRequest(t, "http://127.0.0.1:1"))
	var fe *types.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}
