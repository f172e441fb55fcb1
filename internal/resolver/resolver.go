package resolver

import (
	"fmt"
	"strings"

	"github.com/konductor-labs/konductor/internal/manifest"
)

// Sorted holds the topologically ordered agents of a manifest: the full
// order, plus the same order partitioned back into the four agent kinds.
type Sorted struct {
	Agents []manifest.Agent

	LlmAgents        []*manifest.LlmAgent
	SequentialAgents []*manifest.SequentialAgent
	LoopAgents       []*manifest.LoopAgent
	ParallelAgents   []*manifest.ParallelAgent
}

// CycleError reports a reference cycle among agents. Remaining lists, in
// declaration order, the agents that could not be placed in the sort.
type CycleError struct {
	Remaining []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency detected in agent references (unresolved: %s)",
		strings.Join(e.Remaining, ", "))
}

// NoRootAgentError reports that every declared agent is referenced as a
// sub-agent, or that the manifest declares no agents at all.
type NoRootAgentError struct{}

func (e *NoRootAgentError) Error() string {
	return "could not determine a root agent; check for circular dependencies"
}

// Sort orders all agents so that every sub-agent precedes every agent that
// references it, using Kahn's algorithm. An agent's in-degree is the number
// of its own sub-agent references that resolve to a declared agent; nodes
// become ready in FIFO discovery order, seeded in declaration order.
func Sort(m *manifest.ParsedManifest) (*Sorted, error) {
	agents := m.AllAgents()

	byName := make(map[string]manifest.Agent, len(agents))
	for _, a := range agents {
		byName[a.Name()] = a
	}

	// dependents[s] lists the agents that reference s as a sub-agent.
	dependents := make(map[string][]string)
	inDegree := make(map[string]int, len(agents))
	for _, a := range agents {
		inDegree[a.Name()] = 0
	}
	for _, a := range agents {
		for _, ref := range a.SubAgentRefs() {
			if _, ok := byName[ref]; ok {
				dependents[ref] = append(dependents[ref], a.Name())
				inDegree[a.Name()]++
			}
		}
	}

	var queue []string
	for _, a := range agents {
		if inDegree[a.Name()] == 0 {
			queue = append(queue, a.Name())
		}
	}

	order := make([]string, 0, len(agents))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, dep := range dependents[current] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(agents) {
		var remaining []string
		for _, a := range agents {
			if inDegree[a.Name()] > 0 {
				remaining = append(remaining, a.Name())
			}
		}
		return nil, &CycleError{Remaining: remaining}
	}

	sorted := &Sorted{Agents: make([]manifest.Agent, 0, len(order))}
	for _, name := range order {
		agent := byName[name]
		sorted.Agents = append(sorted.Agents, agent)
		switch a := agent.(type) {
		case *manifest.LlmAgent:
			sorted.LlmAgents = append(sorted.LlmAgents, a)
		case *manifest.SequentialAgent:
			sorted.SequentialAgents = append(sorted.SequentialAgents, a)
		case *manifest.LoopAgent:
			sorted.LoopAgents = append(sorted.LoopAgents, a)
		case *manifest.ParallelAgent:
			sorted.ParallelAgents = append(sorted.ParallelAgents, a)
		}
	}
	return sorted, nil
}

// RootAgents returns the names of every agent that no composite agent
// references as a sub-agent, in declaration order. An empty root set is a
// NoRootAgentError, reported independently of cycle detection.
func RootAgents(m *manifest.ParsedManifest) ([]string, error) {
	referenced := make(map[string]bool)
	for _, a := range m.SequentialAgents {
		for _, ref := range a.SubAgentRefs() {
			referenced[ref] = true
		}
	}
	for _, a := range m.LoopAgents {
		for _, ref := range a.SubAgentRefs() {
			referenced[ref] = true
		}
	}
	for _, a := range m.ParallelAgents {
		for _, ref := range a.SubAgentRefs() {
			referenced[ref] = true
		}
	}

	var roots []string
	for _, a := range m.AllAgents() {
		if !referenced[a.Name()] {
			roots = append(roots, a.Name())
		}
	}
	if len(roots) == 0 {
		return nil, &NoRootAgentError{}
	}
	return roots, nil
}
