package agent

import (
	"dartagent/pkg/config"
	"dartagent/pkg/dart"
	"dartagent/pkg/datastore"
	"dartagent/pkg/llm"
	"dartagent/pkg/monitor"
	"dartagent/pkg/prompts"
	"dartagent/pkg/tools"
	"dartagent/pkg/tools/collect"
)

// CollectorName is the planner-facing name of the data collection agent.
const CollectorName = "OpendartAgent"

// NewCollector builds the data collection agent: corp code resolution plus
// statement fetching, both writing through to the given session store.
func NewCollector(
	client llm.LLMClient,
	dartClient *dart.Client,
	registry *dart.CompanyRegistry,
	store *datastore.Store,
	loader *prompts.Loader,
	sysCfg *config.SystemConfig,
	actionLog *monitor.ActionLog,
) *Runner {
	toolRegistry := tools.NewToolRegistry()
	toolRegistry.Register(collect.NewCorpCodeTool(registry))
	toolRegistry.Register(collect.NewStatementsTool(dartClient, registry, store))

	return NewRunner(
		CollectorName,
		client,
		toolRegistry,
		loader.Get(prompts.CollectorSystem),
		sysCfg.CollectorMaxIterations,
		actionLog,
	)
}
