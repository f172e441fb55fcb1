package manifest

// Kind constants for the built-in resource kinds.
const (
	KindTool            = "Tool"
	KindModel           = "Model"
	KindLlmAgent        = "LlmAgent"
	KindSequentialAgent = "SequentialAgent"
	KindLoopAgent       = "LoopAgent"
	KindParallelAgent   = "ParallelAgent"

	// KindLlmModel is accepted as a legacy alias for Model.
	KindLlmModel = "LlmModel"
)

// Metadata holds the common identifying fields of a resource.
type Metadata struct {
	Name        string            `yaml:"name" json:"name"`
	Labels      map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// ResourceHeader contains the top-level fields shared by every manifest document.
type ResourceHeader struct {
	APIVersion string   `yaml:"apiVersion" json:"apiVersion"`
	Kind       string   `yaml:"kind" json:"kind"`
	Metadata   Metadata `yaml:"metadata" json:"metadata"`
}

// Header returns the shared resource fields. It makes every resource type
// satisfy the Resource interface.
func (h ResourceHeader) Header() ResourceHeader { return h }

// Name returns the resource name from its metadata.
func (h ResourceHeader) Name() string { return h.Metadata.Name }

// Resource is implemented by every typed manifest entity.
type Resource interface {
	Header() ResourceHeader
	Name() string
}

// Agent is implemented by the four agent resource kinds. Kinds without tool
// or sub-agent references return nil from the corresponding method.
type Agent interface {
	Resource
	ToolRefs() []string
	SubAgentRefs() []string
}

// ToolParameter describes one named parameter of a tool function.
type ToolParameter struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    *bool  `yaml:"required,omitempty" json:"required,omitempty"`
}

// IsRequired reports whether the parameter is required. Parameters are
// required unless the manifest explicitly says otherwise.
func (p ToolParameter) IsRequired() bool {
	return p.Required == nil || *p.Required
}

// ToolSource locates the implementation backing a tool.
type ToolSource struct {
	File         string `yaml:"file" json:"file"`
	FunctionName string `yaml:"functionName" json:"functionName"`
}

// ToolSpec is the spec block of a Tool resource.
type ToolSpec struct {
	Type        string          `yaml:"type,omitempty" json:"type,omitempty"`
	Description string          `yaml:"description" json:"description"`
	Source      ToolSource      `yaml:"source" json:"source"`
	Parameters  []ToolParameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Tool declares a callable function that agents may reference by name.
type Tool struct {
	ResourceHeader `yaml:",inline"`
	Spec           ToolSpec `yaml:"spec" json:"spec"`
}

// RetryOptions configures request retries for a model.
type RetryOptions struct {
	Attempts        *int     `yaml:"attempts,omitempty" json:"attempts,omitempty"`
	InitialDelay    *float64 `yaml:"initialDelay,omitempty" json:"initialDelay,omitempty"`
	MaxDelay        *float64 `yaml:"maxDelay,omitempty" json:"maxDelay,omitempty"`
	ExpBase         *float64 `yaml:"expBase,omitempty" json:"expBase,omitempty"`
	Jitter          *float64 `yaml:"jitter,omitempty" json:"jitter,omitempty"`
	HTTPStatusCodes []int    `yaml:"httpStatusCodes,omitempty" json:"httpStatusCodes,omitempty"`
}

// ModelSpec is the spec block of a Model resource.
type ModelSpec struct {
	Provider     string                 `yaml:"provider" json:"provider"`
	ModelID      string                 `yaml:"modelId" json:"modelId"`
	Parameters   map[string]interface{} `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RetryOptions *RetryOptions          `yaml:"retryOptions,omitempty" json:"retryOptions,omitempty"`
}

// Model declares an LLM configuration that agents may reference by name.
type Model struct {
	ResourceHeader `yaml:",inline"`
	Spec           ModelSpec `yaml:"spec" json:"spec"`
}

// LlmAgentSpec is the spec block of an LlmAgent resource.
type LlmAgentSpec struct {
	ModelRef    string   `yaml:"modelRef" json:"modelRef"`
	Instruction string   `yaml:"instruction" json:"instruction"`
	Tools       []string `yaml:"toolRefs,omitempty" json:"toolRefs,omitempty"`
	OutputKey   string   `yaml:"output_key,omitempty" json:"output_key,omitempty"`
}

// LlmAgent is a leaf agent backed by a model and an instruction.
type LlmAgent struct {
	ResourceHeader `yaml:",inline"`
	Spec           LlmAgentSpec `yaml:"spec" json:"spec"`
}

func (a *LlmAgent) ToolRefs() []string     { return a.Spec.Tools }
func (a *LlmAgent) SubAgentRefs() []string { return nil }

// SequentialAgentSpec is the spec block of a SequentialAgent resource.
type SequentialAgentSpec struct {
	SubAgents []string `yaml:"subAgentRefs" json:"subAgentRefs"`
	Tools     []string `yaml:"toolRefs,omitempty" json:"toolRefs,omitempty"`
}

// SequentialAgent runs its sub-agents one after another.
type SequentialAgent struct {
	ResourceHeader `yaml:",inline"`
	Spec           SequentialAgentSpec `yaml:"spec" json:"spec"`
}

func (a *SequentialAgent) ToolRefs() []string     { return a.Spec.Tools }
func (a *SequentialAgent) SubAgentRefs() []string { return a.Spec.SubAgents }

// LoopAgentSpec is the spec block of a LoopAgent resource.
type LoopAgentSpec struct {
	SubAgents     []string `yaml:"subAgentRefs" json:"subAgentRefs"`
	MaxIterations *int     `yaml:"maxIterations,omitempty" json:"maxIterations,omitempty"`
}

// LoopAgent repeats its sub-agents up to an optional iteration bound.
type LoopAgent struct {
	ResourceHeader `yaml:",inline"`
	Spec           LoopAgentSpec `yaml:"spec" json:"spec"`
}

func (a *LoopAgent) ToolRefs() []string     { return nil }
func (a *LoopAgent) SubAgentRefs() []string { return a.Spec.SubAgents }

// ParallelAgentSpec is the spec block of a ParallelAgent resource.
type ParallelAgentSpec struct {
	SubAgents []string `yaml:"subAgentRefs" json:"subAgentRefs"`
}

// ParallelAgent runs its sub-agents concurrently in the target framework.
type ParallelAgent struct {
	ResourceHeader `yaml:",inline"`
	Spec           ParallelAgentSpec `yaml:"spec" json:"spec"`
}

func (a *ParallelAgent) ToolRefs() []string     { return nil }
func (a *ParallelAgent) SubAgentRefs() []string { return a.Spec.SubAgents }

// ParsedManifest holds the resources of one manifest, partitioned by kind.
// Order within each slice preserves input document order.
type ParsedManifest struct {
	Tools            []*Tool
	Models           []*Model
	LlmAgents        []*LlmAgent
	SequentialAgents []*SequentialAgent
	LoopAgents       []*LoopAgent
	ParallelAgents   []*ParallelAgent

	// Extras holds resources of kinds registered at runtime that do not map
	// onto one of the built-in categories.
	Extras []Resource
}

// AllAgents returns every agent resource: LLM agents first, then sequential,
// loop, and parallel agents, each group in declaration order.
func (m *ParsedManifest) AllAgents() []Agent {
	agents := make([]Agent, 0, len(m.LlmAgents)+len(m.SequentialAgents)+len(m.LoopAgents)+len(m.ParallelAgents))
	for _, a := range m.LlmAgents {
		agents = append(agents, a)
	}
	for _, a := range m.SequentialAgents {
		agents = append(agents, a)
	}
	for _, a := range m.LoopAgents {
		agents = append(agents, a)
	}
	for _, a := range m.ParallelAgents {
		agents = append(agents, a)
	}
	return agents
}

// FindAgent returns the agent with the given name, if any.
func (m *ParsedManifest) FindAgent(name string) (Agent, bool) {
	for _, a := range m.AllAgents() {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Counts returns the number of parsed resources per built-in kind.
func (m *ParsedManifest) Counts() map[string]int {
	return map[string]int{
		KindTool:            len(m.Tools),
		KindModel:           len(m.Models),
		KindLlmAgent:        len(m.LlmAgents),
		KindSequentialAgent: len(m.SequentialAgents),
		KindLoopAgent:       len(m.LoopAgents),
		KindParallelAgent:   len(m.ParallelAgents),
	}
}
