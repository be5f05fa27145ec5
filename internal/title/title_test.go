
package title

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sectxt-go-scanner/pkg/logger"
)

func TestFetchTitle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><head><title> Report a Vulnerability </title></head><body></body></html>"))
	}))
	defer ts.Close()

	f := New(5*time.Second, 1<<20, logger.New())
	if got := f.Fetch(context.Background(), ts.URL); got != "Report a Vulnerability" {
		t.Fatalf("want Report a Vulnerability, got %q", got)
	}
}

func TestFetchTitleAbsent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>nothing up top</p></body></html>"))
	}))
	defer ts.Close()

	f := New(5*time.Second, 1<<20, logger.New())
	if got := f.Fetch(context.Background(), ts.URL); got != "" {
		t.Fatalf("want empty title, got %q", got)
	}
}

func TestFetchTitleCharset(t *testing.T) {
	// "Sécurité" in latin-1
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<html><head><title>S\xe9curit\xe9</title></head></html>"))
	}))
	defer ts.Close()

	f := New(5*time.Second, 1<<20, logger.New())
	if got := f.Fetch(context.Background(), ts.URL); got != "Sécurité" {
		t.Fatalf("want Sécurité, got %q", got)
	}
}

func TestFetchTitleTruncatedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>Early</title></head><body>" + strings.Repeat("x", 4096)))
	}))
	defer ts.Close()

	f := New(5*time.Second, 512, logger.New())
	if got := f.Fetch(context.Background(), ts.URL); got != "Early" {
		t.Fatalf("want Early from truncated page, got %q", got)
	}
}

func TestFetchTitleDeadServer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	f := New(2*time.Second, 1<<20, logger.New())
	if got := f.Fetch(context.Background(), ts.URL); got != "" {
		t.Fatalf("want empty title on dead server, got %q", got)
	}
}
