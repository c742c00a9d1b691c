package tools

import (
	"dartagent/pkg/api"
	"dartagent/pkg/llm"
)

// Specs converts registered tools into the provider-neutral schema form
// that LLM clients attach to a chat request.
func Specs(tools []api.Tool) []llm.ToolSpec {
	if len(tools) == 0 {
		return nil
	}
	specs := make([]llm.ToolSpec, 0, len(tools))
	for _, t := range tools {
		specs = append(specs, llm.ToolSpec{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return specs
}
