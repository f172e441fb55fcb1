package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parser decodes a multi-document YAML stream into a ParsedManifest.
//
// Documents with an unregistered kind are skipped with a warning on Warn;
// documents that fail the shape check or their kind's constructor abort the
// parse with a SchemaError.
type Parser struct {
	registry *Registry

	// Warn receives one line per skipped unknown-kind document.
	Warn io.Writer
}

// NewParser returns a parser over the built-in kind registry.
func NewParser() *Parser {
	return NewParserWithRegistry(NewRegistry())
}

// NewParserWithRegistry returns a parser over a caller-supplied registry,
// allowing additional kinds to be registered before parsing.
func NewParserWithRegistry(reg *Registry) *Parser {
	return &Parser{registry: reg, Warn: os.Stderr}
}

// Registry returns the kind registry the parser dispatches on.
func (p *Parser) Registry() *Registry { return p.registry }

// ParseFile parses the manifest at the given path.
func (p *Parser) ParseFile(path string) (*ParsedManifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()

	m, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes every document in the stream, in order.
func (p *Parser) Parse(r io.Reader) (*ParsedManifest, error) {
	m := &ParsedManifest{}
	dec := yaml.NewDecoder(r)

	for docIndex := 1; ; docIndex++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding document %d: %w", docIndex, err)
		}

		doc := documentContent(&node)
		if doc == nil {
			continue // empty document
		}

		var hdr struct {
			Kind string `yaml:"kind"`
		}
		if err := doc.Decode(&hdr); err != nil {
			return nil, &SchemaError{Doc: docIndex, Reason: fmt.Sprintf("document is not a mapping: %v", err)}
		}

		fn, known := p.registry.Lookup(hdr.Kind)
		if !known {
			fmt.Fprintf(p.Warn, "Warning: unknown kind %q in document %d; skipping.\n", hdr.Kind, docIndex)
			continue
		}

		if err := p.checkDocumentShape(doc, hdr.Kind, docIndex); err != nil {
			return nil, err
		}

		res, err := fn(doc)
		if err != nil {
			var se *SchemaError
			if errors.As(err, &se) && se.Doc == 0 {
				se.Doc = docIndex
			}
			return nil, err
		}
		m.add(res)
	}

	return m, nil
}

// checkDocumentShape runs the embedded JSON schema over the raw document.
func (p *Parser) checkDocumentShape(doc *yaml.Node, kind string, docIndex int) error {
	var raw interface{}
	if err := doc.Decode(&raw); err != nil {
		return &SchemaError{Kind: kind, Doc: docIndex, Reason: err.Error()}
	}

	reason, err := checkShape(raw)
	if err != nil {
		return err
	}
	if reason != "" {
		return &SchemaError{Kind: kind, Doc: docIndex, Reason: reason}
	}
	return nil
}

// add appends a resource to the category list matching its dynamic type.
func (m *ParsedManifest) add(res Resource) {
	switch r := res.(type) {
	case *Tool:
		m.Tools = append(m.Tools, r)
	case *Model:
		m.Models = append(m.Models, r)
	case *LlmAgent:
		m.LlmAgents = append(m.LlmAgents, r)
	case *SequentialAgent:
		m.SequentialAgents = append(m.SequentialAgents, r)
	case *LoopAgent:
		m.LoopAgents = append(m.LoopAgents, r)
	case *ParallelAgent:
		m.ParallelAgents = append(m.ParallelAgents, r)
	default:
		m.Extras = append(m.Extras, r)
	}
}

// Summary renders the per-kind resource counts as a one-line report.
// Resources of runtime-registered kinds outside the built-in categories are
// reported in a trailing clause.
func (m *ParsedManifest) Summary() string {
	c := m.Counts()
	s := fmt.Sprintf("Parsed %d tool(s), %d model(s), %d LlmAgent(s), %d SequentialAgent(s), %d LoopAgent(s), %d ParallelAgent(s).",
		c[KindTool], c[KindModel], c[KindLlmAgent], c[KindSequentialAgent], c[KindLoopAgent], c[KindParallelAgent])
	if len(m.Extras) > 0 {
		s += fmt.Sprintf(" Plus %d resource(s) of other kinds.", len(m.Extras))
	}
	return s
}

// documentContent unwraps a decoded document node and returns its content
// mapping, or nil when the document is empty.
func documentContent(node *yaml.Node) *yaml.Node {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil
	}
	return node
}
