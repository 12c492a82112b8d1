package cli

import (
	"github.com/spf13/cobra"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		noCache     bool
		registryURL string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the registry by name, description or category",
		Args:  cobra.ExactArgs(1),
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

			comps, err := client.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(comps) == 0 {
				printInfo("No components match %q", args[0])
				return nil
			}

			printComponentList(comps, installedSet(settings, root))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&registryURL, "registry", "", "registry URL (overrides config)")

	return cmd
}
