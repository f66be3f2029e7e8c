package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yungbote/titanhub-backend/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(logger.NewNop(), srv.URL, "sheet123")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestFetchTab_ReturnsCSVBody(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte("Date,Member\n2025-01-06,John\n"))
	}))

	body, err := c.FetchTab(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchTab: %v", err)
	}
	if body != "Date,Member\n2025-01-06,John\n" {
		t.Fatalf("body: %q", body)
	}
	if gotPath != "/spreadsheets/d/sheet123/gviz/tq" {
		t.Fatalf("path: %q", gotPath)
	}
	if gotQuery != "tqx=out:csv&gid=7" {
		t.Fatalf("query: %q", gotQuery)
	}
}

func TestFetchTab_RetriesServerErrors(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("Date\n2025-01-06\n"))
	}))

	body, err := c.FetchTab(context.Background(), 0)
	if err != nil {
		t.Fatalf("FetchTab: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts: %d", attempts)
	}
	if body == "" {
		t.Fatalf("expected body")
	}
}

func TestFetchTab_SignInPageIsPrivate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<!DOCTYPE html><html><body class="google-signin">Sign in</body></html>`))
	}))

	_, err := c.FetchTab(context.Background(), 0)
	var tabErr *TabError
	if !errors.As(err, &tabErr) {
		t.Fatalf("expected TabError, got %v", err)
	}
	if tabErr.Kind != KindPrivate {
		t.Fatalf("kind: %q", tabErr.Kind)
	}
}

func TestFetchTab_HTMLBodyIsMalformed(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>redirecting</body></html>"))
	}))

	_, err := c.FetchTab(context.Background(), 3)
	var tabErr *TabError
	if !errors.As(err, &tabErr) {
		t.Fatalf("expected TabError, got %v", err)
	}
	if tabErr.Kind != KindMalformed {
		t.Fatalf("kind: %q", tabErr.Kind)
	}
	if tabErr.GID != 3 {
		t.Fatalf("gid: %d", tabErr.GID)
	}
}

func TestFetchTab_NonRetryableStatusFailsFast(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.FetchTab(context.Background(), 0)
	if err == nil {
		t.Fatalf("expected error")
	}
	if attempts != 1 {
		t.Fatalf("attempts: %d", attempts)
	}
	var tabErr *TabError
	if !errors.As(err, &tabErr) || tabErr.Kind != KindUnreachable || tabErr.Status != http.StatusNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewClient_RequiresSheetID(t *testing.T) {
	if _, err := NewClient(logger.NewNop(), "", " "); err == nil {
		t.Fatalf("expected error")
	}
}
