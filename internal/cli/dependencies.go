package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/konductor-labs/konductor/internal/config"
)

var dependenciesProvider string

var dependenciesCmd = &cobra.Command{
	Use:   "dependencies",
	Short: "Show the packages a provider's generated code requires",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := dependenciesProvider
		if name == "" {
			name = config.Get(config.KeyProvider)
		}

		backend, err := newProviderRegistry().Get(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Dependencies for provider %q:\n", name)
		for _, dep := range backend.RequiredDependencies() {
			if err := dep.Check(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", dep)
		}
		return nil
	},
}

func init() {
	dependenciesCmd.Flags().StringVarP(&dependenciesProvider, "provider", "p", "",
		"Provider to show dependencies for (default from config: "+config.DefaultProvider+")")
	rootCmd.AddCommand(dependenciesCmd)
}
