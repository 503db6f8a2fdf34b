package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestResolveName_CacheHitShortCircuits(t *testing.T) {
	t.Parallel()
	var lookups int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&lookups, 1)
		_ = json.NewEncoder(w).Encode(User{ID: "u2", Name: "Ravi"})
	}))
	defer srv.Close()

	ic := newIdentityCache(New(srv.URL, ""))
	if got := ic.ResolveName(context.Background(), "u2"); got != "Ravi" {
		t.Fatalf("ResolveName = %q", got)
	}
	if got := ic.ResolveName(context.Background(), "u2"); got != "Ravi" {
		t.Fatalf("second ResolveName = %q", got)
	}
	if n := atomic.LoadInt32(&lookups); n != 1 {
		t.Fatalf("cache hit still hit the network: %d lookups", n)
	}
}

func TestResolveName_FailureFallsBackAndIsNotCached(t *testing.T) {
	t.Parallel()
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(User{ID: "u9", Name: "Meena"})
	}))
	defer srv.Close()

	ic := newIdentityCache(New(srv.URL, "", WithMaxRetries(0)))

	// Forced failure: raw id comes back and nothing is cached.
	if got := ic.ResolveName(context.Background(), "u9"); got != "u9" {
		t.Fatalf("fallback = %q, want raw id", got)
	}
	if _, ok := ic.Lookup("u9"); ok {
		t.Fatal("failed lookup was cached")
	}

	// Backend recovers: the retry succeeds and refines the cache.
	healthy.Store(true)
	if got := ic.ResolveName(context.Background(), "u9"); got != "Meena" {
		t.Fatalf("post-recovery ResolveName = %q", got)
	}
	if id, ok := ic.Lookup("u9"); !ok || id.Name != "Meena" {
		t.Fatalf("cache entry after recovery: %+v %v", id, ok)
	}
}

func TestResolveName_AuthenticatedRejectionFallsBackToPublic(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/u2", func(w http.ResponseWriter, r *http.Request) {
		// The backend only answers the authenticated lookup for self.
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("GET /api/users/u2/public", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Fatal("public lookup carried credentials")
		}
		_ = json.NewEncoder(w).Encode(User{ID: "u2", Name: "Ravi"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ic := newIdentityCache(New(srv.URL, "tok", WithMaxRetries(0)))
	if got := ic.ResolveName(context.Background(), "u2"); got != "Ravi" {
		t.Fatalf("ResolveName = %q", got)
	}
}

func TestResolveName_EmptyNameNotCached(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(User{ID: "u3"})
	}))
	defer srv.Close()

	ic := newIdentityCache(New(srv.URL, ""))
	if got := ic.ResolveName(context.Background(), "u3"); got != "u3" {
		t.Fatalf("ResolveName = %q, want raw id", got)
	}
	if _, ok := ic.Lookup("u3"); ok {
		t.Fatal("placeholder entry cached")
	}
}

func TestResolveName_EmptyID(t *testing.T) {
	t.Parallel()
	ic := newIdentityCache(New("http://example.invalid", ""))
	if got := ic.ResolveName(context.Background(), ""); got != "" {
		t.Fatalf("ResolveName(\"\") = %q", got)
	}
}

func TestIdentityCache_SuccessOverwritesStalePlaceholder(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(User{ID: "u4", Name: "Lata", Email: "lata@example.com"})
	}))
	defer srv.Close()

	ic := newIdentityCache(New(srv.URL, ""))
	ic.put("u4", Identity{Name: ""}) // stale placeholder

	if got := ic.ResolveName(context.Background(), "u4"); got != "Lata" {
		t.Fatalf("ResolveName = %q", got)
	}
	if id, _ := ic.Lookup("u4"); id.Email != "lata@example.com" {
		t.Fatalf("entry not refined: %+v", id)
	}
}
