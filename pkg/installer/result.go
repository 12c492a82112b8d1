package installer

import "fmt"

// InstallResult reports the outcome of installing one component. Results
// are produced in resolution order, one per resolved component, and never
// mutated after return.
type InstallResult struct {
	// Component is the descriptor's display name.
	Component string `json:"component"`

	Success bool `json:"success"`

	// Files lists the target paths written, or that would have been
	// written in dry-run mode. Empty on failure.
	Files []string `json:"files,omitempty"`

	// Dependencies are the flattened external package names this
	// component requires, duplicates removed.
	Dependencies []string `json:"dependencies,omitempty"`

	// Error describes the failure when Success is false.
	Error string `json:"error,omitempty"`
}

// FileExistsError is returned in a component's result when a target path
// already exists and the force flag is not set. Files written for that
// component before the conflict are not rolled back.
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("file already exists: %s (use --force to overwrite)", e.Path)
}
