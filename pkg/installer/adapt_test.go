package installer

import (
	"testing"

	"github.com/loomui/loom/pkg/project"
)

func tsConfig() *project.Config {
	return &project.Config{TypeScript: true}
}

func jsConfig() *project.Config {
	return &project.Config{TypeScript: false}
}

func TestAdaptRewritesComponentsAlias(t *testing.T) {
	in := `import Button from "$components/button/button.svelte";`
	want := `import Button from "$lib/components/button/button.svelte";`
	if got := Adapt(in, tsConfig()); got != want {
		t.Errorf("Adapt() = %q, want %q", got, want)
	}
}

func TestAdaptKeepsLibAlias(t *testing.T) {
	in := `import { cn } from "$lib/utils";`
	if got := Adapt(in, tsConfig()); got != in {
		t.Errorf("Adapt() = %q, want unchanged", got)
	}
}

func TestAdaptRewritesExtensionsWithoutTypeScript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"double quotes",
			`import { cn } from "$lib/utils.ts";`,
			`import { cn } from "$lib/utils.js";`,
		},
		{
			"single quotes",
			`import { cn } from '$lib/utils.ts';`,
			`import { cn } from '$lib/utils.js';`,
		},
		{
			"unquoted untouched",
			`// see utils.ts for details`,
			`// see utils.ts for details`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Adapt(tt.in, jsConfig()); got != tt.want {
				t.Errorf("Adapt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAdaptKeepsExtensionsWithTypeScript(t *testing.T) {
	in := `import { cn } from "$lib/utils.ts";`
	if got := Adapt(in, tsConfig()); got != in {
		t.Errorf("Adapt() = %q, want unchanged with TypeScript", got)
	}
}

func TestAdaptIdempotent(t *testing.T) {
	inputs := []string{
		`import Button from "$components/button/button.svelte";`,
		`import { cn } from "$lib/utils.ts";`,
		`import x from '$components/x.ts'; import y from "$lib/y.ts";`,
		``,
		`plain text with no tokens`,
	}
	configs := []*project.Config{tsConfig(), jsConfig()}

	for _, cfg := range configs {
		for _, in := range inputs {
			once := Adapt(in, cfg)
			twice := Adapt(once, cfg)
			if once != twice {
				t.Errorf("Adapt not idempotent for %q (typescript=%v): %q != %q",
					in, cfg.TypeScript, once, twice)
			}
		}
	}
}
