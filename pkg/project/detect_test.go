package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// scaffold creates a minimal Svelte project in a temp dir.
// Extra entries are created relative to the root; entries without an
// extension become directories.
func scaffold(t *testing.T, extra ...string) string {
	t.Helper()
	root := t.TempDir()
	touch(t, root, "svelte.config.js")
	for _, path := range extra {
		if filepath.Ext(path) == "" {
			if err := os.MkdirAll(filepath.Join(root, path), 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		touch(t, root, path)
	}
	return root
}

func touch(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectNoFrameworkConfig(t *testing.T) {
	_, err := Detect(t.TempDir())
	if !errors.Is(err, ErrNoFrameworkConfig) {
		t.Errorf("Detect() error = %v, want ErrNoFrameworkConfig", err)
	}
}

func TestDetectFindsConfigInParent(t *testing.T) {
	root := scaffold(t)
	nested := filepath.Join(root, "packages", "app")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Detect(nested)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Detect() returned nil config")
	}
}

func TestDetectFramework(t *testing.T) {
	tests := []struct {
		name  string
		extra []string
		want  Framework
	}{
		{"plain svelte", nil, FrameworkSvelte},
		{"kit via routes dir", []string{"src/routes"}, FrameworkKit},
		{"kit via app shell", []string{"src/app.html"}, FrameworkKit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Detect(scaffold(t, tt.extra...))
			if err != nil {
				t.Fatalf("Detect() error: %v", err)
			}
			if cfg.Framework != tt.want {
				t.Errorf("Framework = %q, want %q", cfg.Framework, tt.want)
			}
		})
	}
}

func TestDetectTypeScript(t *testing.T) {
	cfg, err := Detect(scaffold(t))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TypeScript {
		t.Error("TypeScript = true without tsconfig.json")
	}

	cfg, err = Detect(scaffold(t, "tsconfig.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.TypeScript {
		t.Error("TypeScript = false with tsconfig.json present")
	}
}

func TestDetectStyling(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Styling
	}{
		{
			"tailwind config wins",
			func(t *testing.T) string {
				root := scaffold(t, "tailwind.config.js", "src/app.css")
				writeManifest(t, root, `{"devDependencies":{"sass":"^1.0.0"}}`)
				return root
			},
			StylingTailwind,
		},
		{
			"sass dependency",
			func(t *testing.T) string {
				root := scaffold(t, "src/app.css")
				writeManifest(t, root, `{"devDependencies":{"sass":"^1.0.0"}}`)
				return root
			},
			StylingSCSS,
		},
		{
			"global stylesheet",
			func(t *testing.T) string { return scaffold(t, "src/app.css") },
			StylingCSS,
		},
		{
			"none",
			func(t *testing.T) string { return scaffold(t) },
			StylingNone,
		},
		{
			"malformed manifest ignored",
			func(t *testing.T) string {
				root := scaffold(t)
				writeManifest(t, root, `{not json`)
				return root
			},
			StylingNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Detect(tt.setup(t))
			if err != nil {
				t.Fatalf("Detect() error: %v", err)
			}
			if cfg.Styling != tt.want {
				t.Errorf("Styling = %q, want %q", cfg.Styling, tt.want)
			}
		})
	}
}

func writeManifest(t *testing.T, root, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectPackageManager(t *testing.T) {
	tests := []struct {
		name      string
		lockfiles []string
		want      PackageManager
	}{
		{"default npm", nil, PackageManagerNpm},
		{"pnpm", []string{"pnpm-lock.yaml"}, PackageManagerPnpm},
		{"yarn", []string{"yarn.lock"}, PackageManagerYarn},
		{"bun", []string{"bun.lockb"}, PackageManagerBun},
		{"npm lockfile", []string{"package-lock.json"}, PackageManagerNpm},
		{"priority order", []string{"package-lock.json", "yarn.lock", "pnpm-lock.yaml"}, PackageManagerPnpm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Detect(scaffold(t, tt.lockfiles...))
			if err != nil {
				t.Fatalf("Detect() error: %v", err)
			}
			if cfg.PackageManager != tt.want {
				t.Errorf("PackageManager = %q, want %q", cfg.PackageManager, tt.want)
			}
		})
	}
}

func TestDetectPaths(t *testing.T) {
	t.Run("full layout", func(t *testing.T) {
		cfg, err := Detect(scaffold(t, "src/lib"))
		if err != nil {
			t.Fatal(err)
		}
		want := Paths{Src: "src", Lib: filepath.Join("src", "lib"), Components: filepath.Join("src", "lib", "components")}
		if cfg.Paths != want {
			t.Errorf("Paths = %+v, want %+v", cfg.Paths, want)
		}
	})

	t.Run("src without lib", func(t *testing.T) {
		cfg, err := Detect(scaffold(t, "src/routes"))
		if err != nil {
			t.Fatal(err)
		}
		want := Paths{Src: "src", Lib: "src", Components: filepath.Join("src", "components")}
		if cfg.Paths != want {
			t.Errorf("Paths = %+v, want %+v", cfg.Paths, want)
		}
	})

	t.Run("flat project", func(t *testing.T) {
		cfg, err := Detect(scaffold(t))
		if err != nil {
			t.Fatal(err)
		}
		want := Paths{Src: ".", Lib: ".", Components: "components"}
		if cfg.Paths != want {
			t.Errorf("Paths = %+v, want %+v", cfg.Paths, want)
		}
	})
}

func TestInstallArgs(t *testing.T) {
	tests := []struct {
		pm   PackageManager
		want string
	}{
		{PackageManagerNpm, "install"},
		{PackageManagerPnpm, "add"},
		{PackageManagerYarn, "add"},
		{PackageManagerBun, "add"},
	}
	for _, tt := range tests {
		args := tt.pm.InstallArgs()
		if len(args) != 1 || args[0] != tt.want {
			t.Errorf("%s.InstallArgs() = %v, want [%s]", tt.pm, args, tt.want)
		}
	}
}
