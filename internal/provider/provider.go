package provider

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/konductor-labs/konductor/internal/manifest"
	"github.com/konductor-labs/konductor/internal/resolver"
)

// Dependency is a package a backend's generated code requires at runtime,
// pinned by a semver range.
type Dependency struct {
	Name       string
	Constraint string // e.g. ">=1.10.0"
}

// String renders the dependency as a requirement line, e.g. "google-adk>=1.10.0".
func (d Dependency) String() string {
	return d.Name + d.Constraint
}

// Check verifies that the declared constraint is a well-formed semver range.
func (d Dependency) Check() error {
	if d.Constraint == "" {
		return nil
	}
	if _, err := semver.NewConstraint(d.Constraint); err != nil {
		return fmt.Errorf("dependency %s has invalid constraint %q: %w", d.Name, d.Constraint, err)
	}
	return nil
}

// CodeGenerator is the contract every backend implements.
type CodeGenerator interface {
	// Name returns the provider name used for registry lookup.
	Name() string

	// ValidateManifest runs backend-specific semantic checks and returns all
	// violations found; an empty result means the manifest is acceptable.
	ValidateManifest(m *manifest.ParsedManifest) []string

	// Generate produces the backend's output files as a map from path
	// (relative to outputDir) to file content. It must not write to disk;
	// persisting the map is the orchestrator's job.
	Generate(m *manifest.ParsedManifest, sorted *resolver.Sorted, rootAgent, outputDir string) (map[string]string, error)

	// RequiredDependencies lists the packages generated code depends on.
	RequiredDependencies() []Dependency
}

// UnknownProviderError reports a registry lookup miss.
type UnknownProviderError struct {
	Name      string
	Available []string
}

func (e *UnknownProviderError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown provider %q (no providers registered)", e.Name)
	}
	return fmt.Sprintf("unknown provider %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Registry maps provider names to backends. It is populated once at process
// start and only read afterwards.
type Registry struct {
	generators map[string]CodeGenerator
}

// NewRegistry returns an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]CodeGenerator)}
}

// Register adds a backend under its own name.
func (r *Registry) Register(g CodeGenerator) {
	r.generators[g.Name()] = g
}

// Get returns the backend registered under name.
func (r *Registry) Get(name string) (CodeGenerator, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, &UnknownProviderError{Name: name, Available: r.Names()}
	}
	return g, nil
}

// Names returns the registered provider names, sorted for stable output.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
