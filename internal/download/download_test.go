// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "unistylus/test" {
			http.Error(w, "missing user agent", http.StatusBadRequest)
			return
		}
		switch r.URL.Path {
		case "/core.scss":
			_, _ = w.Write([]byte(":root { --primary: blue; }"))
		case "/big.scss":
			_, _ = w.Write([]byte(strings.Repeat("a", 11)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(WithHTTPClient(srv.Client()), WithUserAgent("unistylus/test"))

	got, err := client.FetchText(context.Background(), srv.URL+"/core.scss")
	if err != nil {
		t.Fatalf("FetchText() error = %v", err)
	}
	if got != ":root { --primary: blue; }" {
		t.Errorf("FetchText() = %q", got)
	}

	_, err = client.FetchText(context.Background(), srv.URL+"/missing.scss")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("FetchText(missing) error = %v, want 404 StatusError", err)
	}

	small := NewClient(WithHTTPClient(srv.Client()), WithUserAgent("unistylus/test"), WithMaxBytes(10))
	if _, err := small.FetchText(context.Background(), srv.URL+"/big.scss"); !errors.Is(err, ErrTooLarge) {
		t.Errorf("FetchText(big) error = %v, want ErrTooLarge", err)
	}
}

func TestFetchText_BadURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"ftp://example.com/x", "::", "file:///etc/passwd"} {
		if _, err := NewClient().FetchText(context.Background(), raw); err == nil {
			t.Errorf("FetchText(%q) should fail", raw)
		}
	}
}

func TestFetchText_Canceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient(WithHTTPClient(srv.Client())).FetchText(ctx, srv.URL); !errors.Is(err, context.Canceled) {
		t.Errorf("FetchText() error = %v, want context.Canceled", err)
	}
}
