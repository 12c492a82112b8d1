package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/installer"
	"github.com/loomui/loom/pkg/project"
)

// addOpts holds the command-line flags for the add command.
type addOpts struct {
	force       bool   // overwrite existing component files
	dryRun      bool   // report without writing
	refresh     bool   // bypass the HTTP cache
	noCache     bool   // disable the cache backend entirely
	skipInstall bool   // skip the package-manager invocation
	registry    string // registry URL override
	cwd         string // project directory override
}

// addCommand creates the add command for installing components.
func (c *CLI) addCommand() *cobra.Command {
	opts := addOpts{}

	cmd := &cobra.Command{
		Use:   "add [component...]",
		Short: "Install components from the registry into your project",
		Long: `Install components from the registry into your project.

Each component's source files are written under the project's component
directory and adapted to the project's conventions (import aliases,
TypeScript vs JavaScript). Registry dependencies are resolved transitively
and installed alongside. External npm dependencies are collected across all
installed components and installed with the project's package manager.

With no arguments, an interactive picker lists the registry's components.

Examples:
  loom add button                 # single component
  loom add dialog card            # several at once
  loom add button --dry-run       # show what would be written
  loom add button --force         # overwrite existing files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdd(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite existing component files")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show what would be installed without writing")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the HTTP cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.skipInstall, "skip-install", false, "do not run the package manager")
	cmd.Flags().StringVar(&opts.registry, "registry", "", "registry URL (overrides config)")
	cmd.Flags().StringVarP(&opts.cwd, "cwd", "C", "", "project directory (default: current)")

	return cmd
}

func (c *CLI) runAdd(cmd *cobra.Command, args []string, opts addOpts) error {
	ctx := cmd.Context()

	dir, err := workingDir(opts.cwd)
	if err != nil {
		return err
	}

	cfg, err := project.Detect(dir)
	if err != nil {
		if errors.Is(err, project.ErrNoFrameworkConfig) {
			printError("No Svelte project found in %s or any parent directory", dir)
			printDetail("Run loom inside a project with a svelte.config.js")
		}
		return err
	}

	settings, root, err := loadSettings(dir)
	if err != nil {
		return err
	}
	if root == "" {
		root = dir
	}

	componentPath := cfg.Paths.Components
	if settings != nil && settings.ComponentPath != "" {
		componentPath = settings.ComponentPath
	}
	targetDir := filepath.Join(root, filepath.FromSlash(componentPath))

	client, closeCache, err := c.newClient(opts.registry, settings, opts.noCache)
	if err != nil {
		return err
	}
	defer closeCache()

	if len(args) == 0 {
		args, err = c.pickComponents(ctx, client, opts.refresh)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			printInfo("No components selected")
			return nil
		}
	}

	ins := installer.New(client, cfg, installer.Options{
		Force:   opts.force,
		DryRun:  opts.dryRun,
		Refresh: opts.refresh,
		Runner:  installer.NewExecRunner(root),
	})
	c.Logger.Debugf("install run %s into %s", ins.RunID(), targetDir)

	spin := newSpinner(ctx, "Resolving components")
	spin.Start()
	results, err := ins.InstallAll(ctx, args, targetDir)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Resolution failed: %v", err))
		return err
	}
	spin.Stop()

	failed := 0
	for _, res := range results {
		if res.Success {
			printSuccess("%s", res.Component)
			for _, f := range res.Files {
				printFile(f)
			}
			continue
		}
		failed++
		printError("%s: %s", res.Component, res.Error)
	}

	deps := ins.Dependencies()
	if opts.dryRun {
		printNewline()
		printInfo("Dry run, nothing was written")
		if len(deps) > 0 {
			printDetail("Would install: %v", deps)
		}
		return nil
	}

	if len(deps) > 0 {
		if opts.skipInstall {
			printNewline()
			printWarning("Skipped installing %d npm dependencies", len(deps))
			install := append(cfg.PackageManager.InstallArgs(), deps...)
			printNextStep("Install them with", string(cfg.PackageManager)+" "+strings.Join(install, " "))
		} else {
			spin = newSpinner(ctx, "Installing npm dependencies")
			spin.Start()
			if err := ins.InstallDependencies(ctx); err != nil {
				spin.StopWithError(fmt.Sprintf("Dependency install failed: %v", err))
				return err
			}
			spin.StopWithSuccess(fmt.Sprintf("Installed %d npm dependencies with %s", len(deps), cfg.PackageManager))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d components failed", failed, len(results))
	}
	return nil
}
