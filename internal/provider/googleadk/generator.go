// Package googleadk generates Google ADK Python source from a validated,
// topologically ordered manifest. It is the reference backend for the
// provider registry.
package googleadk

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/konductor-labs/konductor/internal/manifest"
	"github.com/konductor-labs/konductor/internal/provider"
	"github.com/konductor-labs/konductor/internal/resolver"
)

// ProviderName is the registry name of this backend.
const ProviderName = "google_adk"

//go:embed templates/*.tmpl
var templatesFS embed.FS

// googleModelPrefixes are the model-ID families Google ADK can run.
var googleModelPrefixes = []string{"gemini", "text", "chat"}

// Generator emits the four-file Google ADK layout: tools.py, agent.py,
// main.py, and an __init__.py stub.
type Generator struct {
	templates *template.Template
}

// New returns a Generator with its embedded templates parsed.
func New() *Generator {
	tmpl := template.New("googleadk").Funcs(template.FuncMap{
		"pymodule": pyModule,
		"pyident":  pyIdent,
		"pystr":    pyString,
		"pyargs":   pyKwargs,
	})
	return &Generator{templates: template.Must(tmpl.ParseFS(templatesFS, "templates/*.tmpl"))}
}

func (g *Generator) Name() string { return ProviderName }

// RequiredDependencies lists the packages the generated code imports.
func (g *Generator) RequiredDependencies() []provider.Dependency {
	return []provider.Dependency{
		{Name: "google-adk", Constraint: ">=1.10.0"},
	}
}

// ValidateManifest checks that every model targets the google provider and
// looks like a Google model ID.
func (g *Generator) ValidateManifest(m *manifest.ParsedManifest) []string {
	var errs []string
	for _, model := range m.Models {
		if model.Spec.Provider != "google" {
			errs = append(errs, fmt.Sprintf(
				"Model %q uses provider %q, but Google ADK only supports the 'google' provider",
				model.Name(), model.Spec.Provider))
		}
	}
	for _, model := range m.Models {
		if !hasGooglePrefix(model.Spec.ModelID) {
			errs = append(errs, fmt.Sprintf(
				"Model %q has modelId %q which doesn't appear to be a Google model",
				model.Name(), model.Spec.ModelID))
		}
	}
	return errs
}

func hasGooglePrefix(modelID string) bool {
	for _, prefix := range googleModelPrefixes {
		if strings.HasPrefix(modelID, prefix) {
			return true
		}
	}
	return false
}

// agentView is the flattened, kind-tagged form an agent takes in templates.
type agentView struct {
	Kind          string
	Name          string
	Instruction   string
	ModelRef      string
	OutputKey     string
	Tools         []string
	SubAgents     []string
	MaxIterations int
}

// Generate renders the output files. Agents are emitted in the sorted order
// so that every sub-agent is defined before the agent that references it.
func (g *Generator) Generate(m *manifest.ParsedManifest, sorted *resolver.Sorted, rootAgent, outputDir string) (map[string]string, error) {
	views := make([]agentView, 0, len(sorted.Agents))
	for _, agent := range sorted.Agents {
		switch a := agent.(type) {
		case *manifest.LlmAgent:
			views = append(views, agentView{
				Kind:        manifest.KindLlmAgent,
				Name:        a.Name(),
				Instruction: a.Spec.Instruction,
				ModelRef:    a.Spec.ModelRef,
				OutputKey:   a.Spec.OutputKey,
				Tools:       a.Spec.Tools,
			})
		case *manifest.SequentialAgent:
			views = append(views, agentView{
				Kind:      manifest.KindSequentialAgent,
				Name:      a.Name(),
				SubAgents: a.Spec.SubAgents,
			})
		case *manifest.LoopAgent:
			view := agentView{
				Kind:      manifest.KindLoopAgent,
				Name:      a.Name(),
				SubAgents: a.Spec.SubAgents,
			}
			if a.Spec.MaxIterations != nil {
				view.MaxIterations = *a.Spec.MaxIterations
			}
			views = append(views, view)
		case *manifest.ParallelAgent:
			views = append(views, agentView{
				Kind:      manifest.KindParallelAgent,
				Name:      a.Name(),
				SubAgents: a.Spec.SubAgents,
			})
		default:
			return nil, fmt.Errorf("unsupported agent kind %q", agent.Header().Kind)
		}
	}

	data := struct {
		Tools     []*manifest.Tool
		Models    []*manifest.Model
		Agents    []agentView
		RootAgent string
	}{
		Tools:     m.Tools,
		Models:    m.Models,
		Agents:    views,
		RootAgent: rootAgent,
	}

	files := make(map[string]string, 4)
	for name, tmplName := range map[string]string{
		"tools.py": "tools.py.tmpl",
		"agent.py": "agent.py.tmpl",
		"main.py":  "main.py.tmpl",
	} {
		var buf bytes.Buffer
		if err := g.templates.ExecuteTemplate(&buf, tmplName, data); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", name, err)
		}
		files[name] = buf.String()
	}
	files["__init__.py"] = "# Auto-generated __init__.py\n"

	return files, nil
}

// pyModule converts a tool source path into a Python module path:
// "tools/test.py" -> "tools.test".
func pyModule(file string) string {
	p := strings.TrimSuffix(path.Clean(strings.ReplaceAll(file, "\\", "/")), ".py")
	return strings.ReplaceAll(strings.TrimPrefix(p, "./"), "/", ".")
}

// pyIdent sanitizes a resource name into a Python identifier.
func pyIdent(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '-' || r == '.' || r == ' ' {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// pyString renders a Go string as a quoted Python string literal.
func pyString(s string) string {
	return strconv.Quote(s)
}

// pyKwargs renders a parameter map as Python keyword arguments with keys in
// sorted order, e.g. {"temperature": 0.7} -> `temperature=0.7`.
func pyKwargs(params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, pyValue(params[k])))
	}
	return strings.Join(parts, ", ")
}

// pyValue renders a YAML-decoded scalar or collection as a Python literal.
func pyValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return strconv.Quote(val)
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = pyValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, strconv.Quote(k)+": "+pyValue(val[k]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", val)
	}
}
