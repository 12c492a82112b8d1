package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/project"
)

// initCommand creates the init command for writing the project config file.
func (c *CLI) initCommand() *cobra.Command {
	var (
		force       bool
		registryURL string
		cwd         string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Detect project conventions and write loom.json",
		Long: `Detect project conventions and write loom.json.

Inspects the project for its framework variant, TypeScript usage, styling
system, package manager and directory layout, then records the component
directory and styling choice in a loom.json file at the project root.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workingDir(cwd)
			if err != nil {
				return err
			}

			cfg, err := project.Detect(dir)
			if err != nil {
				if errors.Is(err, project.ErrNoFrameworkConfig) {
					printError("No Svelte project found in %s or any parent directory", dir)
				}
				return err
			}

			path := filepath.Join(dir, settingsFile)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			settings := &Settings{
				Styling:       string(cfg.Styling),
				ComponentPath: cfg.Paths.Components,
				Registry:      registryURL,
			}
			if err := settings.save(dir); err != nil {
				return fmt.Errorf("write %s: %w", settingsFile, err)
			}

			fmt.Println(StyleTitle.Render("Detected project"))
			printKeyValue("framework", string(cfg.Framework))
			printKeyValue("typescript", fmt.Sprintf("%v", cfg.TypeScript))
			printKeyValue("styling", string(cfg.Styling))
			printKeyValue("package manager", string(cfg.PackageManager))
			printKeyValue("components", cfg.Paths.Components)
			printNewline()
			printSuccess("Wrote %s", path)
			printNextStep("Install your first component", "loom add button")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing loom.json")
	cmd.Flags().StringVar(&registryURL, "registry", "", "registry URL to record in loom.json")
	cmd.Flags().StringVarP(&cwd, "cwd", "C", "", "project directory (default: current)")

	return cmd
}
