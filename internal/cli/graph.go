package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/graph"
	"github.com/loomui/loom/pkg/installer"
)

// graphCommand creates the graph command for rendering component
// dependency graphs.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output      string
		refresh     bool
		noCache     bool
		registryURL string
	)

	cmd := &cobra.Command{
		Use:   "graph <component...>",
		Short: "Render the registry-dependency graph of components",
		Long: `Render the registry-dependency graph of components.

Resolves the transitive closure of the given components and renders it with
Graphviz. The output format follows the file extension: .svg, .png or .dot.
Without --output the DOT source is written to stdout.`,
		Args: cobra.MinimumNArgs(1),
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

			comps, err := installer.NewResolver(client, refresh).Resolve(cmd.Context(), args)
			if err != nil {
				return err
			}
			dot := graph.ToDOT(comps)

			if output == "" {
				fmt.Print(dot)
				return nil
			}

			var data []byte
			switch strings.ToLower(filepath.Ext(output)) {
			case ".dot":
				data = []byte(dot)
			case ".svg":
				data, err = graph.RenderSVG(dot)
			case ".png":
				data, err = graph.RenderPNG(dot)
			default:
				return fmt.Errorf("unsupported output extension %q (expected .svg, .png or .dot)", filepath.Ext(output))
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered %d components", len(comps))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg, .png or .dot; stdout DOT if empty)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the HTTP cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&registryURL, "registry", "", "registry URL (overrides config)")

	return cmd
}
