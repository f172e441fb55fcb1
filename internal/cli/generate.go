package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/konductor-labs/konductor/internal/config"
	"github.com/konductor-labs/konductor/internal/generator"
	"github.com/konductor-labs/konductor/internal/manifest"
)

var (
	generateProvider  string
	generateOutputDir string
)

var generateCmd = &cobra.Command{
	Use:   "generate <manifest>",
	Short: "Generate agent code from a manifest",
	Long: `Parse, validate, and compile a YAML manifest into source files for the
selected provider's agent framework.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateProvider, "provider", "p", "",
		"Provider to use for code generation (default from config: "+config.DefaultProvider+")")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "o", "",
		"Directory to save generated code (default from config: "+config.DefaultOutputDir+")")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]
	if _, err := os.Stat(manifestPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("manifest file not found at %q", manifestPath)
		}
		return fmt.Errorf("checking manifest %s: %w", manifestPath, err)
	}

	providerName := generateProvider
	if providerName == "" {
		providerName = config.Get(config.KeyProvider)
	}
	outputDir := generateOutputDir
	if outputDir == "" {
		outputDir = config.Get(config.KeyOutputDir)
	}

	parser := manifest.NewParser()
	parser.Warn = cmd.ErrOrStderr()
	gen := generator.New(parser, newProviderRegistry(), cmd.OutOrStdout())

	_, err := gen.GenerateFromManifest(manifestPath, providerName, outputDir)
	return err
}
