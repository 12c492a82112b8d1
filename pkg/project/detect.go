package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// ErrNoFrameworkConfig is returned by Detect when no framework
// configuration file exists between the start directory and the
// filesystem root. Callers should treat it as "not a project", not as
// a crash.
var ErrNoFrameworkConfig = errors.New("no framework config found")

// frameworkConfigFiles are the candidate config filenames checked at each
// directory level during the find-up search, in order.
var frameworkConfigFiles = []string{
	"svelte.config.js",
	"svelte.config.mjs",
	"svelte.config.ts",
}

// tailwindConfigFiles are checked with the same find-up semantics.
var tailwindConfigFiles = []string{
	"tailwind.config.cjs",
	"tailwind.config.js",
	"tailwind.config.ts",
}

// lockfiles maps manager-specific lockfiles to their manager, checked in
// priority order: least common first so that a project carrying several
// lockfiles resolves to the most specific one.
var lockfiles = []struct {
	name    string
	manager PackageManager
}{
	{"bun.lockb", PackageManagerBun},
	{"pnpm-lock.yaml", PackageManagerPnpm},
	{"yarn.lock", PackageManagerYarn},
	{"package-lock.json", PackageManagerNpm},
}

// Detect inspects the project rooted at dir and returns its profile.
//
// The project is located with find-up semantics: walking upward from dir
// to the filesystem root, the nearest directory level containing any
// framework config candidate wins. Returns ErrNoFrameworkConfig if the
// search exhausts without a match.
//
// All heuristics are independent reads; no check depends on another's
// outcome.
func Detect(dir string) (*Config, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if _, ok := findUp(root, frameworkConfigFiles); !ok {
		return nil, ErrNoFrameworkConfig
	}

	return &Config{
		Framework:      detectFramework(root),
		TypeScript:     detectTypeScript(root),
		Styling:        detectStyling(root),
		PackageManager: detectPackageManager(root),
		Paths:          detectPaths(root),
	}, nil
}

// findUp walks from start upward through parent directories, checking the
// candidate filenames in order at each level. The nearest enclosing match
// wins. Returns the matched file path, or false if the filesystem root is
// reached without a match.
func findUp(start string, names []string) (string, bool) {
	dir := start
	for {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				return path, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// detectFramework distinguishes SvelteKit from plain Svelte by the root
// HTML shell or the routes directory under the source tree.
func detectFramework(root string) Framework {
	if fileExists(filepath.Join(root, "src", "app.html")) ||
		dirExists(filepath.Join(root, "src", "routes")) {
		return FrameworkKit
	}
	return FrameworkSvelte
}

func detectTypeScript(root string) bool {
	_, ok := findUp(root, []string{"tsconfig.json"})
	return ok
}

// detectStyling resolves the styling system by priority: a Tailwind
// config (find-up) wins, then a sass dependency in the manifest, then a
// global stylesheet, then none.
func detectStyling(root string) Styling {
	if _, ok := findUp(root, tailwindConfigFiles); ok {
		return StylingTailwind
	}
	if manifestDependsOn(root, "sass") {
		return StylingSCSS
	}
	if fileExists(filepath.Join(root, "src", "app.css")) {
		return StylingCSS
	}
	return StylingNone
}

// manifestDependsOn reports whether the project manifest declares the
// named package in dependencies or devDependencies. A missing or
// malformed manifest simply means "no".
func manifestDependsOn(root, name string) bool {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return false
	}
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return false
	}
	if _, ok := manifest.Dependencies[name]; ok {
		return true
	}
	_, ok := manifest.DevDependencies[name]
	return ok
}

func detectPackageManager(root string) PackageManager {
	for _, lf := range lockfiles {
		if fileExists(filepath.Join(root, lf.name)) {
			return lf.manager
		}
	}
	return PackageManagerNpm
}

// detectPaths resolves the layout. Src and Lib fall back toward the
// project root when absent; Components is always derived from Lib with no
// existence check because it is an install target.
func detectPaths(root string) Paths {
	src := "."
	if dirExists(filepath.Join(root, "src")) {
		src = "src"
	}
	lib := src
	if dirExists(filepath.Join(root, "src", "lib")) {
		lib = filepath.Join("src", "lib")
	}
	return Paths{
		Src:        src,
		Lib:        lib,
		Components: filepath.Join(lib, "components"),
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
