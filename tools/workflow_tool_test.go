package tools

import (
	"context"
	"testing"

	wf "github.com/agentic-ai/playground/workflow"
)

func TestWorkflowTool(t *testing.T) {
	// simple workflow: uppercases input string
	b := wf.New().Step("s1", func(ctx context.Context, in any) (any, error) { return map[string]any{"out": "ok"}, nil })
	w := b.Build()
	wt := &WorkflowTool{NameStr: "wf", Desc: "d", WF: w}
	if wt.Name() != "wf" || wt.Description() != "d" {
		t.Fatalf("bad meta")
	}
	out, err := wt.Execute(context.Background(), `{"a":1}`)
	if err != nil || out == "" {
		t.Fatalf("exec: %v %q", err, out)
	}
	if _, err := wt.Execute(context.Background(), ``); err != nil {
		t.Fatalf("empty input should still work: %v", err)
	}
	wt.WF = nil
	if _, err := wt.Execute(context.Background(), `{"a":1}`); err == nil {
		t.Fatalf("expected nil workflow error")
	}
}

func TestNewWorkflowToolSchemaOverride(t *testing.T) {
	w := wf.New().Step("s1", func(ctx context.Context, in any) (any, error) { return in, nil }).Build()

	generic := NewWorkflowTool("wf", "d", w, nil)
	props, ok := generic.Schema()["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("generic schema missing properties")
	}
	if _, ok := props["input"]; !ok {
		t.Fatalf("generic schema should expose the input field")
	}

	custom := map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"destination": map[string]interface{}{"type": "string"}},
		"required":   []string{"destination"},
	}
	specific := NewWorkflowTool("wf2", "d", w, custom)
	got := specific.Schema()
	gp, ok := got["properties"].(map[string]interface{})
	if !ok {
		t.Fatalf("custom schema missing properties")
	}
	if _, ok := gp["destination"]; !ok {
		t.Fatalf("custom schema not returned")
	}
}
