package tools

import (
	"context"
	"encoding/json"
	"fmt"

	wf "github.com/agentic-ai/playground/workflow"
)

// WorkflowTool runs a prebuilt workflow from a tool call. Input JSON can carry a payload.
type WorkflowTool struct {
	NameStr string
	Desc    string
	WF      *wf.Workflow
	// SchemaMap, when set, replaces the generic single-field input schema so
	// the model sees the workflow's real argument shape.
	SchemaMap map[string]interface{}
}

// NewWorkflowTool wraps a built workflow as an agent tool. Pass a nil schema
// to keep the generic JSON payload schema.
func NewWorkflowTool(name, desc string, w *wf.Workflow, schema map[string]interface{}) *WorkflowTool {
	return &WorkflowTool{NameStr: name, Desc: desc, WF: w, SchemaMap: schema}
}

func (w *WorkflowTool) Name() string        { return w.NameStr }
func (w *WorkflowTool) Description() string { return w.Desc }
func (w *WorkflowTool) Schema() map[string]interface{} {
	if w.SchemaMap != nil {
		return w.SchemaMap
	}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"input": map[string]interface{}{"type": "string", "description": "JSON payload for workflow input"},
		},
		"required": []string{"input"},
	}
}
func (w *WorkflowTool) Execute(ctx context.Context, input string) (string, error) {
	if w.WF == nil {
		return "", fmt.Errorf("nil workflow")
	}
	var payload interface{}
	if input != "" {
		var tmp any
		if err := json.Unmarshal([]byte(input), &tmp); err == nil {
			payload = tmp
		} else {
			payload = input
		}
	}
	out, err := w.WF.Run(ctx, payload)
	if err != nil {
		return "", err
	}
	b, _ := json.Marshal(out)
	return string(b), nil
}

var _ Tool = (*WorkflowTool)(nil)
