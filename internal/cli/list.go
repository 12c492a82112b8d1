package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/registry"
)

// listCommand creates the list command for browsing the registry.
func (c *CLI) listCommand() *cobra.Command {
	var (
		refresh     bool
		noCache     bool
		registryURL string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all components in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workingDir("")
			if err != nil {
				return err
			}
			settings, root, err := loadSettings(dir)
			if err != nil {
				return err
			}

			client, closeCache, err := c.newClient(registryURL, settings, noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			comps, err := client.Components(cmd.Context(), refresh)
			if err != nil {
				return err
			}

			printComponentList(comps, installedSet(settings, root))
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the HTTP cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&registryURL, "registry", "", "registry URL (overrides config)")

	return cmd
}

// installedSet returns the ids of components already present in the project's
// component directory, or nil when no loom.json is in scope.
func installedSet(settings *Settings, root string) map[string]bool {
	if settings == nil || settings.ComponentPath == "" {
		return nil
	}
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(settings.ComponentPath)))
	if err != nil {
		return nil
	}
	installed := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			installed[e.Name()] = true
		}
	}
	return installed
}

// printComponentList prints components grouped by category, marking the ones
// already installed in the current project.
func printComponentList(comps []registry.Component, installed map[string]bool) {
	if len(comps) == 0 {
		printInfo("The registry has no components")
		return
	}

	groups := make(map[string][]registry.Component)
	for _, c := range comps {
		cat := c.Category
		if cat == "" {
			cat = "other"
		}
		groups[cat] = append(groups[cat], c)
	}

	categories := make([]string, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		fmt.Println(StyleTitle.Render(cat))
		group := groups[cat]
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		for _, comp := range group {
			marker := "  "
			if installed[comp.ID] {
				marker = StyleSuccess.Render(iconSuccess) + " "
			}
			line := marker + StyleValue.Render(comp.ID)
			if comp.Description != "" {
				line += "  " + StyleDim.Render(comp.Description)
			}
			fmt.Println("  " + line)
		}
		printNewline()
	}
	printDetail("%d components", len(comps))
}
