package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewStatic_Defaults(t *testing.T) {
	f := NewStatic(StaticConfig{})
	if f.config.UserAgent != defaultUserAgent {
		t.Errorf("UserAgent = %q", f.config.UserAgent)
	}
	if f.config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", f.config.Timeout)
	}
	if f.config.MaxBodySize != 0 {
		t.Errorf("MaxBodySize = %d, want 0 (unlimited)", f.config.MaxBodySize)
	}
	if DefaultStaticConfig().MaxBodySize != 10_000_000 {
		t.Errorf("default MaxBodySize = %d, want 10 MB", DefaultStaticConfig().MaxBodySize)
	}
	if f.Type() != "static" {
		t.Errorf("Type() = %q", f.Type())
	}
}

func TestStaticFetcher_Fetch(t *testing.T) {
	var gotUA, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		gotHeader = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><span itemprop="streetAddress">12 Test St</span></body></html>`))
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{UserAgent: "rightscrape-test"})
	content, err := f.Fetch(context.Background(), srv.URL+"/properties/123", Options{
		Headers: map[string]string{"Accept-Language": "en-GB"},
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if content.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", content.StatusCode)
	}
	if !strings.Contains(content.Body, "12 Test St") {
		t.Errorf("Body = %q", content.Body)
	}
	if !strings.HasPrefix(content.ContentType, "text/html") {
		t.Errorf("ContentType = %q", content.ContentType)
	}
	if gotUA != "rightscrape-test" {
		t.Errorf("server saw User-Agent %q", gotUA)
	}
	if gotHeader != "en-GB" {
		t.Errorf("server saw Accept-Language %q", gotHeader)
	}
}

func TestStaticFetcher_OptionsOverrideUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{UserAgent: "config-agent"})
	if _, err := f.Fetch(context.Background(), srv.URL, Options{UserAgent: "option-agent"}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotUA != "option-agent" {
		t.Errorf("User-Agent = %q, want option-agent", gotUA)
	}
}

func TestStaticFetcher_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewStatic(StaticConfig{}).Fetch(context.Background(), srv.URL, Options{})
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("error = %v, want ErrFetch", err)
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
}

func TestStaticFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewStatic(StaticConfig{Timeout: 2 * time.Second}).Fetch(context.Background(), url, Options{})
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("error = %v, want ErrFetch", err)
	}
}

func TestStaticFetcher_InvalidURL(t *testing.T) {
	_, err := NewStatic(StaticConfig{}).Fetch(context.Background(), "not a url", Options{})
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("error = %v, want ErrFetch", err)
	}
}

func TestStaticFetcher_BodyLimit(t *testing.T) {
	body := "<html><body>" + strings.Repeat("x", 2000) + "</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		limit   int
		wantErr bool
	}{
		{"over limit", 1000, true},
		{"under limit", 4096, false},
		{"unlimited", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewStatic(StaticConfig{MaxBodySize: tt.limit})
			content, err := f.Fetch(context.Background(), srv.URL, Options{})

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Fetch() error = %v", err)
				}
				if content.Body != body {
					t.Errorf("Body length = %d, want %d", len(content.Body), len(body))
				}
				return
			}
			if !errors.Is(err, ErrBodyTooLarge) {
				t.Fatalf("error = %v, want ErrBodyTooLarge", err)
			}
			if !errors.Is(err, ErrFetch) {
				t.Errorf("error = %v, want ErrFetch", err)
			}
			var fe *FetchError
			if !errors.As(err, &fe) || fe.StatusCode != http.StatusOK {
				t.Errorf("expected *FetchError with status 200, got %v", err)
			}
		})
	}
}

func TestFetchError_Message(t *testing.T) {
	err := &FetchError{URL: "http://example/1", StatusCode: 500, Err: errors.New("Internal Server Error")}
	if err.Error() != "fetch http://example/1: HTTP 500: Internal Server Error" {
		t.Errorf("Error() = %q", err.Error())
	}
}
