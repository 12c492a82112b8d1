package registry

import (
	"errors"
	"fmt"
)

// FileKind classifies a component file.
type FileKind string

// Known file kinds.
const (
	KindComponent FileKind = "component"
	KindStyle     FileKind = "style"
	KindUtility   FileKind = "utility"
	KindType      FileKind = "type"
)

// ErrInvalid is returned when a fetched descriptor does not match the
// expected shape. A descriptor failing validation is treated as a fetch
// failure for that identifier, never installed partially.
var ErrInvalid = errors.New("invalid component descriptor")

// File is one file belonging to a component. Path is relative to the
// component's install directory.
type File struct {
	Path    string   `json:"path"`
	Content string   `json:"content"`
	Kind    FileKind `json:"kind"`
}

// Component is the registry's canonical record for one installable unit.
// Treated as immutable once fetched.
type Component struct {
	// ID is the unique stable identifier, the key for resolution and caching.
	ID string `json:"id"`

	// Display metadata.
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`

	// Dependencies and DevDependencies are external package names to be
	// installed via the host's package manager. Duplicates across
	// components are expected and deduplicated at aggregation time.
	Dependencies    []string `json:"dependencies"`
	DevDependencies []string `json:"devDependencies"`

	// RegistryDependencies are ids of other components this one requires.
	RegistryDependencies []string `json:"registryDependencies"`

	// Files are written under <targetDir>/<id>/ in order.
	Files []File `json:"files"`
}

// validKind reports whether k is one of the known file kinds.
func validKind(k FileKind) bool {
	switch k {
	case KindComponent, KindStyle, KindUtility, KindType:
		return true
	}
	return false
}

// Validate checks the descriptor against the registry protocol shape.
// Any deviation is a hard failure, not a warning.
func (c *Component) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: %s: missing name", ErrInvalid, c.ID)
	}
	for i, f := range c.Files {
		if f.Path == "" {
			return fmt.Errorf("%w: %s: file %d has empty path", ErrInvalid, c.ID, i)
		}
		if !validKind(f.Kind) {
			return fmt.Errorf("%w: %s: file %s has unknown kind %q", ErrInvalid, c.ID, f.Path, f.Kind)
		}
	}
	for i, dep := range c.RegistryDependencies {
		if dep == "" {
			return fmt.Errorf("%w: %s: registry dependency %d is empty", ErrInvalid, c.ID, i)
		}
	}
	return nil
}
