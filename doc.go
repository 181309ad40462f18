// Package playground provides top-level documentation for the Agentic AI
// Playground module. The module is organized as multiple subpackages: the
// agent runtime (`agent/core`, `agent/supervisor`, `llm`, `tools`, `memory`,
// `workflow`, `observability`, `server/http`) and the travel assistant built
// on it (`travel`, `booking`, `planner`, `tools/travel`, `cmd/playground`).
//
// Importers typically depend on the subpackages directly, for example:
//
//	import (
//	  "github.com/agentic-ai/playground/llm"
//	  "github.com/agentic-ai/playground/agent/core"
//	  "github.com/agentic-ai/playground/travel"
//	)
//
// The root package intentionally keeps a small surface area to avoid
// stuttering and to keep subpackages composable.
package playground
