package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/konductor-labs/konductor/internal/manifest"
	"github.com/konductor-labs/konductor/internal/provider"
	"github.com/konductor-labs/konductor/internal/resolver"
)

// ValidationError aggregates every violation found by one validation stage
// so a user can fix all of them in a single pass.
type ValidationError struct {
	Stage    string // "manifest" or "provider"
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed:\n%s", e.Stage, strings.Join(e.Problems, "\n"))
}

// Generator sequences one compilation: parse, validate, resolve, generate,
// persist. Any stage failure aborts the remaining stages.
type Generator struct {
	parser    *manifest.Parser
	providers *provider.Registry
	out       io.Writer
}

// New returns an orchestrator over the given parser and provider registry.
// Progress messages go to out.
func New(parser *manifest.Parser, providers *provider.Registry, out io.Writer) *Generator {
	return &Generator{parser: parser, providers: providers, out: out}
}

// GenerateFromManifest compiles the manifest at manifestPath with the named
// provider and writes the generated files under outputDir. It returns the
// path-to-content map of everything written.
func (g *Generator) GenerateFromManifest(manifestPath, providerName, outputDir string) (map[string]string, error) {
	backend, err := g.providers.Get(providerName)
	if err != nil {
		return nil, err
	}

	m, err := g.parser.ParseFile(manifestPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(g.out, m.Summary())

	if problems := manifest.ValidateReferences(m); len(problems) > 0 {
		return nil, &ValidationError{Stage: "manifest", Problems: problems}
	}
	if problems := backend.ValidateManifest(m); len(problems) > 0 {
		return nil, &ValidationError{Stage: "provider", Problems: problems}
	}

	sorted, err := resolver.Sort(m)
	if err != nil {
		return nil, err
	}
	roots, err := resolver.RootAgents(m)
	if err != nil {
		return nil, err
	}
	root := roots[0]
	if len(roots) > 1 {
		fmt.Fprintf(g.out, "Warning: multiple root agents found (%s); using %q.\n",
			strings.Join(roots, ", "), root)
	}
	fmt.Fprintf(g.out, "Identified %q as the root agent.\n", root)

	fmt.Fprintf(g.out, "Generating code using provider: %s\n", providerName)
	files, err := backend.Generate(m, sorted, root, outputDir)
	if err != nil {
		return nil, err
	}

	if err := g.writeFiles(outputDir, files); err != nil {
		return nil, err
	}
	fmt.Fprintf(g.out, "Code generation complete. Files are in %q.\n", outputDir)

	return files, nil
}

// writeFiles persists the generated file map under outputDir, creating the
// directory if needed. Paths in the map are relative to outputDir.
func (g *Generator) writeFiles(outputDir string, files map[string]string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	for _, name := range sortedKeys(files) {
		target := filepath.Join(outputDir, name)
		if dir := filepath.Dir(target); dir != outputDir {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(target, []byte(files[name]), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", target, err)
		}
		fmt.Fprintf(g.out, "Generated %s\n", target)
	}
	return nil
}

// sortedKeys returns map keys in sorted order for stable write and log order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
