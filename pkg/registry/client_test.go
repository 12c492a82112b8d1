package registry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/loomui/loom/pkg/cache"
)

// newTestServer serves the given components over the registry protocol and
// counts requests to the by-id endpoint.
func newTestServer(t *testing.T, comps map[string]Component, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/registry/components/", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		id := r.URL.Path[len("/registry/components/"):]
		comp, ok := comps[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(comp)
	})
	mux.HandleFunc("/registry/components", func(w http.ResponseWriter, r *http.Request) {
		all := make([]Component, 0, len(comps))
		for _, c := range comps {
			all = append(all, c)
		}
		_ = json.NewEncoder(w).Encode(all)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientComponent(t *testing.T) {
	srv := newTestServer(t, map[string]Component{
		"button": validComponent(),
	}, nil)

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	comp, err := c.Component(context.Background(), "button", false)
	if err != nil {
		t.Fatalf("Component() error: %v", err)
	}
	if comp.ID != "button" {
		t.Errorf("ID = %q, want %q", comp.ID, "button")
	}
	if len(comp.Files) != 2 {
		t.Errorf("len(Files) = %d, want 2", len(comp.Files))
	}
}

func TestClientComponentNotFound(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	_, err := c.Component(context.Background(), "ghost", false)
	if err == nil {
		t.Fatal("expected error for unknown component")
	}
	if !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("error should wrap ErrNotFound, got %v", err)
	}
}

func TestClientComponentInvalidDescriptor(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/registry/components/bad", func(w http.ResponseWriter, r *http.Request) {
		// Descriptor with no id: must be a hard validation failure.
		_, _ = w.Write([]byte(`{"name":"Bad"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	_, err := c.Component(context.Background(), "bad", false)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("error should wrap ErrInvalid, got %v", err)
	}
}

func TestClientDoesNotCacheInvalidDescriptor(t *testing.T) {
	// The registry serves a broken descriptor first, then a fixed one.
	var hits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/registry/components/button", func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			_, _ = w.Write([]byte(`{"name":"Button"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(validComponent())
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	c1 := NewClient(srv.URL, backend, time.Hour)
	if _, err := c1.Component(context.Background(), "button", false); !errors.Is(err, ErrInvalid) {
		t.Fatalf("error should wrap ErrInvalid, got %v", err)
	}

	// A registry-side fix must be picked up without --refresh: the broken
	// response must not have been persisted.
	c2 := NewClient(srv.URL, backend, time.Hour)
	comp, err := c2.Component(context.Background(), "button", false)
	if err != nil {
		t.Fatalf("Component() error after registry fix: %v", err)
	}
	if comp.ID != "button" {
		t.Errorf("ID = %q, want %q", comp.ID, "button")
	}
	if hits.Load() != 2 {
		t.Errorf("registry hit %d times, want 2 (invalid response must not be served from cache)", hits.Load())
	}
}

func TestClientMemoizesByID(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, map[string]Component{
		"button": validComponent(),
	}, &hits)

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	for range 3 {
		if _, err := c.Component(context.Background(), "button", false); err != nil {
			t.Fatalf("Component() error: %v", err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("registry hit %d times, want 1 (memoized per client instance)", hits.Load())
	}
}

func TestClientPersistentCache(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, map[string]Component{
		"button": validComponent(),
	}, &hits)

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	// First client populates the backend, second reads from it.
	c1 := NewClient(srv.URL, backend, time.Hour)
	if _, err := c1.Component(context.Background(), "button", false); err != nil {
		t.Fatalf("Component() error: %v", err)
	}
	c2 := NewClient(srv.URL, backend, time.Hour)
	if _, err := c2.Component(context.Background(), "button", false); err != nil {
		t.Fatalf("Component() error: %v", err)
	}

	if hits.Load() != 1 {
		t.Errorf("registry hit %d times, want 1 (second client should hit cache)", hits.Load())
	}
}

func TestClientRefreshBypassesCache(t *testing.T) {
	var hits atomic.Int64
	srv := newTestServer(t, map[string]Component{
		"button": validComponent(),
	}, &hits)

	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	c1 := NewClient(srv.URL, backend, time.Hour)
	if _, err := c1.Component(context.Background(), "button", false); err != nil {
		t.Fatalf("Component() error: %v", err)
	}
	c2 := NewClient(srv.URL, backend, time.Hour)
	if _, err := c2.Component(context.Background(), "button", true); err != nil {
		t.Fatalf("Component() error: %v", err)
	}

	if hits.Load() != 2 {
		t.Errorf("registry hit %d times, want 2 (refresh bypasses cache)", hits.Load())
	}
}

func TestClientComponentsByID(t *testing.T) {
	comps := map[string]Component{
		"button": validComponent(),
		"card":   {ID: "card", Name: "Card", RegistryDependencies: []string{"button"}},
		"dialog": {ID: "dialog", Name: "Dialog"},
	}
	srv := newTestServer(t, comps, nil)

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	got, err := c.ComponentsByID(context.Background(), []string{"dialog", "button", "card"}, false)
	if err != nil {
		t.Fatalf("ComponentsByID() error: %v", err)
	}
	want := []string{"dialog", "button", "card"}
	for i, comp := range got {
		if comp.ID != want[i] {
			t.Errorf("result[%d].ID = %q, want %q (input order preserved)", i, comp.ID, want[i])
		}
	}
}

func TestClientComponentsByIDFailsWholeBatch(t *testing.T) {
	srv := newTestServer(t, map[string]Component{
		"button": validComponent(),
	}, nil)

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	_, err := c.ComponentsByID(context.Background(), []string{"button", "ghost"}, false)
	if !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("batch with one unknown id should fail with ErrNotFound, got %v", err)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var hits atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/registry/components/button", func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(validComponent())
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	comp, err := c.Component(ctx, "button", false)
	if err != nil {
		t.Fatalf("Component() error after retry: %v", err)
	}
	if comp.ID != "button" {
		t.Errorf("ID = %q, want %q", comp.ID, "button")
	}
	if hits.Load() != 2 {
		t.Errorf("registry hit %d times, want 2 (one retry)", hits.Load())
	}
}
