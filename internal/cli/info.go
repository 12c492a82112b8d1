package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/registry"
)

// infoCommand creates the info command for inspecting component descriptors.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		refresh     bool
		noCache     bool
		registryURL string
	)

	cmd := &cobra.Command{
		Use:   "info <component...>",
		Short: "Show component metadata, files and dependencies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workingDir("")
			if err != nil {
				return err
			}
			settings, _, err := loadSettings(dir)
			if err != nil {
				return err
			}

			client, closeCache, err := c.newClient(registryURL, settings, noCache)
			if err != nil {
				return err
			}
			defer closeCache()

			// All descriptors are fetched concurrently; one unknown id
			// fails the whole lookup.
			comps, err := client.ComponentsByID(cmd.Context(), args, refresh)
			if err != nil {
				return err
			}

			for i, comp := range comps {
				if i > 0 {
					printNewline()
				}
				printComponentInfo(comp)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the HTTP cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&registryURL, "registry", "", "registry URL (overrides config)")

	return cmd
}

func printComponentInfo(comp *registry.Component) {
	fmt.Println(StyleTitle.Render(comp.Name) + " " + StyleDim.Render("("+comp.ID+")"))
	if comp.Description != "" {
		printDetail("%s", comp.Description)
	}
	if comp.Category != "" {
		printKeyValue("category", comp.Category)
	}
	if len(comp.Dependencies) > 0 {
		printKeyValue("dependencies", strings.Join(comp.Dependencies, ", "))
	}
	if len(comp.DevDependencies) > 0 {
		printKeyValue("dev dependencies", strings.Join(comp.DevDependencies, ", "))
	}
	if len(comp.RegistryDependencies) > 0 {
		printKeyValue("requires", strings.Join(comp.RegistryDependencies, ", "))
	}
	if len(comp.Files) > 0 {
		printKeyValue("files", fmt.Sprintf("%d", len(comp.Files)))
		for _, f := range comp.Files {
			printFile(fmt.Sprintf("%s (%s)", f.Path, f.Kind))
		}
	}
}
