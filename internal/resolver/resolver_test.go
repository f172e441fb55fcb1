package resolver

import (
	"errors"
	"sort"
	"testing"

	"github.com/konductor-labs/konductor/internal/manifest"
)

func header(kind, name string) manifest.ResourceHeader {
	return manifest.ResourceHeader{
		APIVersion: "adk.google.com/v1alpha1",
		Kind:       kind,
		Metadata:   manifest.Metadata{Name: name},
	}
}

func llmAgent(name string) *manifest.LlmAgent {
	return &manifest.LlmAgent{
		ResourceHeader: header(manifest.KindLlmAgent, name),
		Spec:           manifest.LlmAgentSpec{ModelRef: "m1", Instruction: "instruction"},
	}
}

func sequentialAgent(name string, subAgents ...string) *manifest.SequentialAgent {
	return &manifest.SequentialAgent{
		ResourceHeader: header(manifest.KindSequentialAgent, name),
		Spec:           manifest.SequentialAgentSpec{SubAgents: subAgents},
	}
}

func loopAgent(name string, subAgents ...string) *manifest.LoopAgent {
	return &manifest.LoopAgent{
		ResourceHeader: header(manifest.KindLoopAgent, name),
		Spec:           manifest.LoopAgentSpec{SubAgents: subAgents},
	}
}

func parallelAgent(name string, subAgents ...string) *manifest.ParallelAgent {
	return &manifest.ParallelAgent{
		ResourceHeader: header(manifest.KindParallelAgent, name),
		Spec:           manifest.ParallelAgentSpec{SubAgents: subAgents},
	}
}

func names(agents []manifest.Agent) []string {
	out := make([]string, len(agents))
	for i, a := range agents {
		out[i] = a.Name()
	}
	return out
}

func TestSort_SingleAgent(t *testing.T) {
	m := &manifest.ParsedManifest{LlmAgents: []*manifest.LlmAgent{llmAgent("m1-agent")}}

	sorted, err := Sort(m)
	if err != nil {
		t.Fatalf("Sort error: %v", err)
	}
	if got := names(sorted.Agents); len(got) != 1 || got[0] != "m1-agent" {
		t.Errorf("order = %v, want [m1-agent]", got)
	}
}

func TestSort_SequentialPipeline(t *testing.T) {
	m := &manifest.ParsedManifest{
		LlmAgents:        []*manifest.LlmAgent{llmAgent("a"), llmAgent("b")},
		SequentialAgents: []*manifest.SequentialAgent{sequentialAgent("pipeline", "a", "b")},
	}

	sorted, err := Sort(m)
	if err != nil {
		t.Fatalf("Sort error: %v", err)
	}
	got := names(sorted.Agents)
	want := []string{"a", "b", "pipeline"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSort_DependenciesPrecedeDependents(t *testing.T) {
	// fanout -> refine-loop -> pipeline -> {drafter, reviewer}
	m := &manifest.ParsedManifest{
		LlmAgents:        []*manifest.LlmAgent{llmAgent("drafter"), llmAgent("reviewer")},
		SequentialAgents: []*manifest.SequentialAgent{sequentialAgent("pipeline", "drafter", "reviewer")},
		LoopAgents:       []*manifest.LoopAgent{loopAgent("refine-loop", "pipeline")},
		ParallelAgents:   []*manifest.ParallelAgent{parallelAgent("fanout", "refine-loop")},
	}

	sorted, err := Sort(m)
	if err != nil {
		t.Fatalf("Sort error: %v", err)
	}
	got := names(sorted.Agents)
	if len(got) != 5 {
		t.Fatalf("order len = %d, want 5: %v", len(got), got)
	}

	pos := make(map[string]int, len(got))
	for i, name := range got {
		pos[name] = i
	}
	for _, edge := range [][2]string{
		{"drafter", "pipeline"},
		{"reviewer", "pipeline"},
		{"pipeline", "refine-loop"},
		{"refine-loop", "fanout"},
	} {
		if pos[edge[0]] >= pos[edge[1]] {
			t.Errorf("%q should precede %q in %v", edge[0], edge[1], got)
		}
	}
}

func TestSort_PartitionPreservesOrder(t *testing.T) {
	m := &manifest.ParsedManifest{
		LlmAgents:        []*manifest.LlmAgent{llmAgent("a"), llmAgent("b")},
		SequentialAgents: []*manifest.SequentialAgent{sequentialAgent("inner", "a"), sequentialAgent("outer", "inner", "b")},
	}

	sorted, err := Sort(m)
	if err != nil {
		t.Fatalf("Sort error: %v", err)
	}
	if len(sorted.LlmAgents) != 2 {
		t.Fatalf("LlmAgents len = %d, want 2", len(sorted.LlmAgents))
	}
	if len(sorted.SequentialAgents) != 2 {
		t.Fatalf("SequentialAgents len = %d, want 2", len(sorted.SequentialAgents))
	}
	if sorted.SequentialAgents[0].Name() != "inner" || sorted.SequentialAgents[1].Name() != "outer" {
		t.Errorf("sequential partition = [%s, %s], want [inner, outer]",
			sorted.SequentialAgents[0].Name(), sorted.SequentialAgents[1].Name())
	}
}

func TestSort_CycleDetected(t *testing.T) {
	m := &manifest.ParsedManifest{
		SequentialAgents: []*manifest.SequentialAgent{
			sequentialAgent("A", "B"),
			sequentialAgent("B", "A"),
		},
	}

	sorted, err := Sort(m)
	if sorted != nil {
		t.Error("expected no ordering for a cyclic graph")
	}
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("error type = %T, want *CycleError", err)
	}
	if len(cycleErr.Remaining) != 2 {
		t.Errorf("Remaining = %v, want both cycle members", cycleErr.Remaining)
	}
}

func TestRootAgents_Single(t *testing.T) {
	m := &manifest.ParsedManifest{LlmAgents: []*manifest.LlmAgent{llmAgent("m1-agent")}}

	roots, err := RootAgents(m)
	if err != nil {
		t.Fatalf("RootAgents error: %v", err)
	}
	if len(roots) != 1 || roots[0] != "m1-agent" {
		t.Errorf("roots = %v, want [m1-agent]", roots)
	}
}

func TestRootAgents_Pipeline(t *testing.T) {
	m := &manifest.ParsedManifest{
		LlmAgents:        []*manifest.LlmAgent{llmAgent("a"), llmAgent("b")},
		SequentialAgents: []*manifest.SequentialAgent{sequentialAgent("pipeline", "a", "b")},
	}

	roots, err := RootAgents(m)
	if err != nil {
		t.Fatalf("RootAgents error: %v", err)
	}
	if len(roots) != 1 || roots[0] != "pipeline" {
		t.Errorf("roots = %v, want [pipeline]", roots)
	}
}

func TestRootAgents_MultipleIndependent(t *testing.T) {
	m := &manifest.ParsedManifest{
		LlmAgents: []*manifest.LlmAgent{llmAgent("solo-1"), llmAgent("solo-2")},
	}

	roots, err := RootAgents(m)
	if err != nil {
		t.Fatalf("RootAgents error: %v", err)
	}
	sort.Strings(roots)
	if len(roots) != 2 || roots[0] != "solo-1" || roots[1] != "solo-2" {
		t.Errorf("roots = %v, want [solo-1 solo-2]", roots)
	}
}

func TestRootAgents_NoneFound(t *testing.T) {
	tests := []struct {
		name string
		m    *manifest.ParsedManifest
	}{
		{"zero agents", &manifest.ParsedManifest{}},
		{"fully cyclic", &manifest.ParsedManifest{
			SequentialAgents: []*manifest.SequentialAgent{
				sequentialAgent("A", "B"),
				sequentialAgent("B", "A"),
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RootAgents(tt.m)
			var rootErr *NoRootAgentError
			if !errors.As(err, &rootErr) {
				t.Fatalf("error type = %T, want *NoRootAgentError", err)
			}
		})
	}
}

func TestRootAgents_ChainComplement(t *testing.T) {
	// roots = all agent names minus the union of subAgentRefs.
	m := &manifest.ParsedManifest{
		LlmAgents:        []*manifest.LlmAgent{llmAgent("leaf"), llmAgent("stray")},
		SequentialAgents: []*manifest.SequentialAgent{sequentialAgent("mid", "leaf")},
		LoopAgents:       []*manifest.LoopAgent{loopAgent("top", "mid")},
	}

	roots, err := RootAgents(m)
	if err != nil {
		t.Fatalf("RootAgents error: %v", err)
	}
	sort.Strings(roots)
	if len(roots) != 2 || roots[0] != "stray" || roots[1] != "top" {
		t.Errorf("roots = %v, want [stray top]", roots)
	}
}
