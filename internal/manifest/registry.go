package manifest

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// SchemaError reports a document whose fields do not satisfy its kind's
// required shape. It is fatal for the parse call that produced it.
type SchemaError struct {
	Kind   string
	Name   string // resource name, if one was present
	Doc    int    // 1-based document index within the input
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("document %d (%s %q): %s", e.Doc, e.Kind, e.Name, e.Reason)
	}
	return fmt.Sprintf("document %d (%s): %s", e.Doc, e.Kind, e.Reason)
}

// ConstructFunc builds a typed resource from a decoded YAML document node.
// Implementations must return a *SchemaError when required fields are absent
// or mistyped.
type ConstructFunc func(doc *yaml.Node) (Resource, error)

// Registry maps a kind discriminator to its resource constructor. Additional
// kinds can be registered at runtime without touching the built-in entries.
type Registry struct {
	constructors map[string]ConstructFunc
}

// NewRegistry returns a registry pre-populated with the built-in kinds.
func NewRegistry() *Registry {
	r := &Registry{constructors: make(map[string]ConstructFunc)}
	r.Register(KindTool, constructTool)
	r.Register(KindModel, constructModel)
	r.Register(KindLlmModel, constructModel)
	r.Register(KindLlmAgent, constructLlmAgent)
	r.Register(KindSequentialAgent, constructSequentialAgent)
	r.Register(KindLoopAgent, constructLoopAgent)
	r.Register(KindParallelAgent, constructParallelAgent)
	return r
}

// Register adds or replaces the constructor for a kind.
func (r *Registry) Register(kind string, fn ConstructFunc) {
	r.constructors[kind] = fn
}

// Lookup returns the constructor for a kind, if one is registered.
func (r *Registry) Lookup(kind string) (ConstructFunc, bool) {
	fn, ok := r.constructors[kind]
	return fn, ok
}

// Knows reports whether a kind is known to the registry.
func (r *Registry) Knows(kind string) bool {
	_, ok := r.constructors[kind]
	return ok
}

// decodeInto unmarshals a document node into the given resource struct.
func decodeInto(doc *yaml.Node, kind string, out interface{}) error {
	if err := doc.Decode(out); err != nil {
		return &SchemaError{Kind: kind, Reason: err.Error()}
	}
	return nil
}

func constructTool(doc *yaml.Node) (Resource, error) {
	var t Tool
	if err := decodeInto(doc, KindTool, &t); err != nil {
		return nil, err
	}
	if err := requireFields(KindTool, t.Name(),
		field{"metadata.name", t.Metadata.Name},
		field{"spec.description", t.Spec.Description},
		field{"spec.source.file", t.Spec.Source.File},
		field{"spec.source.functionName", t.Spec.Source.FunctionName},
	); err != nil {
		return nil, err
	}
	for _, p := range t.Spec.Parameters {
		if p.Name == "" || p.Type == "" {
			return nil, &SchemaError{Kind: KindTool, Name: t.Name(),
				Reason: "every spec.parameters entry needs a name and a type"}
		}
	}
	if t.Spec.Type == "" {
		t.Spec.Type = "pythonFunction"
	}
	return &t, nil
}

func constructModel(doc *yaml.Node) (Resource, error) {
	var m Model
	if err := decodeInto(doc, KindModel, &m); err != nil {
		return nil, err
	}
	if err := requireFields(KindModel, m.Name(),
		field{"metadata.name", m.Metadata.Name},
		field{"spec.provider", m.Spec.Provider},
		field{"spec.modelId", m.Spec.ModelID},
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func constructLlmAgent(doc *yaml.Node) (Resource, error) {
	var a LlmAgent
	if err := decodeInto(doc, KindLlmAgent, &a); err != nil {
		return nil, err
	}
	if err := requireFields(KindLlmAgent, a.Name(),
		field{"metadata.name", a.Metadata.Name},
		field{"spec.modelRef", a.Spec.ModelRef},
		field{"spec.instruction", a.Spec.Instruction},
	); err != nil {
		return nil, err
	}
	if a.Spec.Tools == nil {
		a.Spec.Tools = []string{}
	}
	return &a, nil
}

func constructSequentialAgent(doc *yaml.Node) (Resource, error) {
	var a SequentialAgent
	if err := decodeInto(doc, KindSequentialAgent, &a); err != nil {
		return nil, err
	}
	if a.Metadata.Name == "" {
		return nil, missingField(KindSequentialAgent, "", "metadata.name")
	}
	// An explicitly empty list is allowed; only an absent one is an error.
	if a.Spec.SubAgents == nil {
		return nil, missingField(KindSequentialAgent, a.Name(), "spec.subAgentRefs")
	}
	if a.Spec.Tools == nil {
		a.Spec.Tools = []string{}
	}
	return &a, nil
}

func constructLoopAgent(doc *yaml.Node) (Resource, error) {
	var a LoopAgent
	if err := decodeInto(doc, KindLoopAgent, &a); err != nil {
		return nil, err
	}
	if a.Metadata.Name == "" {
		return nil, missingField(KindLoopAgent, "", "metadata.name")
	}
	if a.Spec.SubAgents == nil {
		return nil, missingField(KindLoopAgent, a.Name(), "spec.subAgentRefs")
	}
	return &a, nil
}

func constructParallelAgent(doc *yaml.Node) (Resource, error) {
	var a ParallelAgent
	if err := decodeInto(doc, KindParallelAgent, &a); err != nil {
		return nil, err
	}
	if a.Metadata.Name == "" {
		return nil, missingField(KindParallelAgent, "", "metadata.name")
	}
	if a.Spec.SubAgents == nil {
		return nil, missingField(KindParallelAgent, a.Name(), "spec.subAgentRefs")
	}
	return &a, nil
}

// field pairs a manifest field path with its decoded value.
type field struct {
	path  string
	value string
}

// requireFields checks, in order, that every listed field has a non-empty
// value, reporting the first one missing.
func requireFields(kind, name string, fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return missingField(kind, name, f.path)
		}
	}
	return nil
}

func missingField(kind, name, field string) *SchemaError {
	return &SchemaError{Kind: kind, Name: name, Reason: fmt.Sprintf("missing required field %s", field)}
}
