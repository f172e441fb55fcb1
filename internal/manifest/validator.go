package manifest

import "fmt"

// ValidateReferences checks that every name reference in the manifest
// resolves to a declared resource of the right category. All violations are
// collected; an empty result means the manifest is internally consistent.
func ValidateReferences(m *ParsedManifest) []string {
	var errs []string

	modelNames := make(map[string]bool, len(m.Models))
	for _, model := range m.Models {
		modelNames[model.Name()] = true
	}
	toolNames := make(map[string]bool, len(m.Tools))
	for _, tool := range m.Tools {
		toolNames[tool.Name()] = true
	}
	agentNames := make(map[string]bool)
	for _, agent := range m.AllAgents() {
		agentNames[agent.Name()] = true
	}

	for _, agent := range m.LlmAgents {
		if !modelNames[agent.Spec.ModelRef] {
			errs = append(errs, fmt.Sprintf("LlmAgent %q references unknown model %q",
				agent.Name(), agent.Spec.ModelRef))
		}
	}

	for _, agent := range m.AllAgents() {
		kind := agent.Header().Kind
		for _, ref := range agent.ToolRefs() {
			if !toolNames[ref] {
				errs = append(errs, fmt.Sprintf("%s %q references unknown tool %q",
					kind, agent.Name(), ref))
			}
		}
		for _, ref := range agent.SubAgentRefs() {
			if !agentNames[ref] {
				errs = append(errs, fmt.Sprintf("%s %q references unknown sub-agent %q",
					kind, agent.Name(), ref))
			}
		}
	}

	return errs
}
