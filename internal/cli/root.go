package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/konductor-labs/konductor/internal/config"
	"github.com/konductor-labs/konductor/internal/provider"
	"github.com/konductor-labs/konductor/internal/provider/googleadk"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "konductor",
	Short: "Generate agent code from Konductor YAML manifests",
	Long: `Konductor compiles declarative multi-document YAML manifests describing
an AI-agent pipeline (tools, models, and agent compositions) into source
files for a target agent-execution framework.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// newProviderRegistry builds the provider registry used by every command.
// Backends are registered here, once, at process start.
func newProviderRegistry() *provider.Registry {
	r := provider.NewRegistry()
	r.Register(googleadk.New())
	return r
}

// Execute runs the root command with build info injected via ldflags. Any
// failure is printed as a single "Error: ..." line on stderr.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
