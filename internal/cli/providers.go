package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listProvidersCmd = &cobra.Command{
	Use:   "list-providers",
	Short: "List available code generation providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Available providers:")
		for _, name := range newProviderRegistry().Names() {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listProvidersCmd)
}
