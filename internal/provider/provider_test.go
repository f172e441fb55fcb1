package provider

import (
	"errors"
	"testing"

	"github.com/konductor-labs/konductor/internal/manifest"
	"github.com/konductor-labs/konductor/internal/resolver"
)

// fakeBackend is a minimal CodeGenerator for registry tests.
type fakeBackend struct {
	name string
}

func (f *fakeBackend) Name() string { return f.name }
func (f *fakeBackend) ValidateManifest(m *manifest.ParsedManifest) []string { return nil }
func (f *fakeBackend) RequiredDependencies() []Dependency { return nil }
func (f *fakeBackend) Generate(m *manifest.ParsedManifest, sorted *resolver.Sorted, rootAgent, outputDir string) (map[string]string, error) {
	return map[string]string{}, nil
}

func TestRegistry_GetRegistered(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeBackend{name: "fake"})

	g, err := r.Get("fake")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if g.Name() != "fake" {
		t.Errorf("Name = %q, want %q", g.Name(), "fake")
	}
}

func TestRegistry_UnknownProvider(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeBackend{name: "fake"})

	_, err := r.Get("nope")
	var unknownErr *UnknownProviderError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error type = %T, want *UnknownProviderError", err)
	}
	if unknownErr.Name != "nope" {
		t.Errorf("UnknownProviderError.Name = %q, want %q", unknownErr.Name, "nope")
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeBackend{name: "zeta"})
	r.Register(&fakeBackend{name: "alpha"})

	got := r.Names()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("Names = %v, want [alpha zeta]", got)
	}
}

func TestDependency_String(t *testing.T) {
	d := Dependency{Name: "google-adk", Constraint: ">=1.10.0"}
	if got := d.String(); got != "google-adk>=1.10.0" {
		t.Errorf("String = %q, want %q", got, "google-adk>=1.10.0")
	}
}

func TestDependency_Check(t *testing.T) {
	tests := []struct {
		name    string
		dep     Dependency
		wantErr bool
	}{
		{"valid range", Dependency{Name: "google-adk", Constraint: ">=1.10.0"}, false},
		{"empty constraint", Dependency{Name: "google-adk"}, false},
		{"garbage", Dependency{Name: "google-adk", Constraint: "not-a-range"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dep.Check()
			if (err != nil) != tt.wantErr {
				t.Errorf("Check error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
