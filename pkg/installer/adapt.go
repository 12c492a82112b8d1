package installer

import (
	"strings"

	"github.com/loomui/loom/pkg/project"
)

// aliasRules rewrite import alias tokens to the canonical library layout.
// Applied in order as global substitutions. Every rule must stay
// idempotent under re-application: adaptation may be re-run on already
// adapted content.
var aliasRules = []struct{ from, to string }{
	// Normalization slot for the library alias. Currently the canonical
	// form, kept so a future alias move only needs this table edited.
	{"$lib", "$lib"},
	{"$components", "$lib/components"},
}

// Adapt rewrites raw component file content to match the host project.
// It is pure and total: any input produces an output, never an error,
// and Adapt(Adapt(s, cfg), cfg) == Adapt(s, cfg).
func Adapt(content string, cfg *project.Config) string {
	for _, rule := range aliasRules {
		content = strings.ReplaceAll(content, rule.from, rule.to)
	}
	if !cfg.TypeScript {
		content = strings.ReplaceAll(content, `.ts"`, `.js"`)
		content = strings.ReplaceAll(content, `.ts'`, `.js'`)
	}
	return content
}
