// Package cli implements the loom command-line interface.
//
// This package provides commands for installing registry components into a
// Svelte project, browsing the registry, rendering dependency graphs, and
// managing the HTTP response cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/buildinfo"
	"github.com/loomui/loom/pkg/cache"
	"github.com/loomui/loom/pkg/registry"
)

// appName is the application name used for directories and display.
const appName = "loom"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "loom",
		Short:        "Loom installs UI components from a registry into your project",
		Long:         `Loom is a CLI tool for installing shared UI components from a component registry directly into a Svelte project, adapting the source to the project's conventions.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.addCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newClient builds a registry client from the user config, the project
// settings, and the --registry flag (highest precedence). The returned
// cleanup function closes the cache backend.
func (c *CLI) newClient(registryFlag string, settings *Settings, noCache bool) (*registry.Client, func(), error) {
	cfg, err := loadUserConfig()
	if err != nil {
		return nil, nil, err
	}

	url := cfg.Registry
	if settings != nil && settings.Registry != "" {
		url = settings.Registry
	}
	if registryFlag != "" {
		url = registryFlag
	}

	backend, err := newCache(cfg, noCache)
	if err != nil {
		c.Logger.Warnf("Cache unavailable, continuing without: %v", err)
		backend = cache.NewNullCache()
	}

	client := registry.NewClient(url, backend, cfg.cacheTTL())
	return client, func() { _ = backend.Close() }, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/loom/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/loom/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// workingDir resolves the directory commands operate in.
func workingDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}
