package installer

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/loomui/loom/pkg/project"
	"github.com/loomui/loom/pkg/registry"
)

// Options configures an installation run.
type Options struct {
	// Force overwrites existing target files instead of failing the
	// component with a file-exists error.
	Force bool

	// DryRun computes and reports the same outcomes as a real run
	// without touching the filesystem or invoking the package manager.
	DryRun bool

	// Refresh bypasses the persistent registry cache on every fetch.
	Refresh bool

	// Runner executes the package-manager invocation.
	// Defaults to NewExecRunner("").
	Runner CommandRunner
}

// Installer orchestrates resolution, file placement, and external
// dependency aggregation for one run.
//
// The external-dependency set is instance state: it accumulates across
// InstallAll calls on the same Installer and resets only by constructing
// a new one. Installation is strictly sequential; nothing here needs
// locking.
type Installer struct {
	fetcher Fetcher
	config  *project.Config
	opts    Options
	runID   string
	deps    map[string]struct{}
}

// New creates an Installer for one run against the given project profile.
func New(fetcher Fetcher, cfg *project.Config, opts Options) *Installer {
	if opts.Runner == nil {
		opts.Runner = NewExecRunner("")
	}
	return &Installer{
		fetcher: fetcher,
		config:  cfg,
		opts:    opts,
		runID:   uuid.NewString(),
		deps:    make(map[string]struct{}),
	}
}

// RunID returns the unique identifier of this installation run.
func (ins *Installer) RunID() string { return ins.runID }

// InstallAll resolves the requested ids and installs every component in
// the closure under targetDir, returning one result per resolved
// component in resolution order.
//
// A resolution failure (unknown id) aborts the whole run before any
// filesystem mutation. A per-component installation failure does not:
// the component's result records the error and the remaining components
// still install.
func (ins *Installer) InstallAll(ctx context.Context, ids []string, targetDir string) ([]InstallResult, error) {
	comps, err := NewResolver(ins.fetcher, ins.opts.Refresh).Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]InstallResult, 0, len(comps))
	for _, comp := range comps {
		results = append(results, ins.install(comp, targetDir))
	}
	return results, nil
}

// install places one component's files and, on success, folds its
// external dependencies into the shared set.
func (ins *Installer) install(comp *registry.Component, targetDir string) InstallResult {
	res := InstallResult{Component: comp.Name}

	for _, f := range comp.Files {
		target := filepath.Join(targetDir, comp.ID, filepath.FromSlash(f.Path))

		// Check-then-write, not atomic-create: the FileExists message
		// names the first conflicting path and earlier writes stand.
		if !ins.opts.Force {
			if _, err := os.Stat(target); err == nil {
				res.Error = (&FileExistsError{Path: target}).Error()
				return res
			}
		}

		if !ins.opts.DryRun {
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				res.Error = err.Error()
				return res
			}
			content := Adapt(f.Content, ins.config)
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				res.Error = err.Error()
				return res
			}
		}
		res.Files = append(res.Files, target)
	}

	res.Success = true
	res.Dependencies = flatten(comp.Dependencies, comp.DevDependencies)
	for _, dep := range res.Dependencies {
		ins.deps[dep] = struct{}{}
	}
	return res
}

// Dependencies returns a sorted snapshot of every external package name
// aggregated so far.
func (ins *Installer) Dependencies() []string {
	names := make([]string, 0, len(ins.deps))
	for name := range ins.deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InstallDependencies invokes the host's package manager once with the
// full deduplicated dependency list. A no-op when the set is empty or in
// dry-run mode. A nonzero exit from the package manager is returned as a
// fatal error; installed files are unaffected at that point.
func (ins *Installer) InstallDependencies(ctx context.Context) error {
	names := ins.Dependencies()
	if len(names) == 0 || ins.opts.DryRun {
		return nil
	}

	pm := ins.config.PackageManager
	args := append(pm.InstallArgs(), names...)
	return ins.opts.Runner.Run(ctx, string(pm), args...)
}

// flatten merges dependency lists preserving first-seen order and
// dropping duplicates.
func flatten(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, name := range list {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
