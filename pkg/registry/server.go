package registry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves component descriptors over the registry protocol.
//
// Descriptors are loaded once from a directory of *.json files at
// construction time; each file holds one descriptor and must pass
// validation. The server is read-only and safe for concurrent use.
type Server struct {
	components map[string]*Component
	order      []string
}

// NewServerFromDir loads every *.json descriptor in dir.
// Returns an error if any file fails to parse or validate.
func NewServerFromDir(dir string) (*Server, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	s := &Server{components: make(map[string]*Component)}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var comp Component
		if err := json.Unmarshal(data, &comp); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if err := comp.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if _, dup := s.components[comp.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate component id %q", e.Name(), comp.ID)
		}
		s.components[comp.ID] = &comp
		s.order = append(s.order, comp.ID)
	}
	sort.Strings(s.order)
	return s, nil
}

// Count returns the number of loaded descriptors.
func (s *Server) Count() int { return len(s.components) }

// Handler returns the HTTP handler implementing the registry protocol.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/registry/components", s.handleList)
	r.Get("/registry/components/{id}", s.handleComponent)
	r.Get("/registry/search", s.handleSearch)

	return r
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	comps := make([]*Component, 0, len(s.order))
	for _, id := range s.order {
		comps = append(comps, s.components[id])
	}
	writeJSON(w, http.StatusOK, comps)
}

func (s *Server) handleComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	comp, ok := s.components[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown component: " + id})
		return
	}
	writeJSON(w, http.StatusOK, comp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	matches := make([]*Component, 0)
	for _, id := range s.order {
		comp := s.components[id]
		if q == "" || matchesQuery(comp, q) {
			matches = append(matches, comp)
		}
	}
	writeJSON(w, http.StatusOK, matches)
}

// matchesQuery reports whether the lowercased query appears in the
// component's id, name, description, or category.
func matchesQuery(c *Component, q string) bool {
	for _, field := range []string{c.ID, c.Name, c.Description, c.Category} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
