package agent

import (
	"dartagent/pkg/analysis"
	"dartagent/pkg/config"
	"dartagent/pkg/datastore"
	"dartagent/pkg/llm"
	"dartagent/pkg/monitor"
	"dartagent/pkg/prompts"
	"dartagent/pkg/tools"
	"dartagent/pkg/tools/analyze"
)

// AnalystName is the planner-facing name of the analysis agent.
const AnalystName = "AnalyzeAgent"

// NewAnalyst builds the analysis agent over the full session store:
// key listing, table inspection, metric extraction and expression execution.
func NewAnalyst(
	client llm.LLMClient,
	store *datastore.Store,
	loader *prompts.Loader,
	sysCfg *config.SystemConfig,
	actionLog *monitor.ActionLog,
) *Runner {
	toolRegistry := tools.NewToolRegistry()
	toolRegistry.Register(analyze.NewListTablesTool(store))
	toolRegistry.Register(analyze.NewTableInfoTool(store))
	toolRegistry.Register(analyze.NewMetricsTool(store))
	toolRegistry.Register(analyze.NewExecTool(analysis.NewEvaluator(store)))

	return NewRunner(
		AnalystName,
		client,
		toolRegistry,
		loader.Get(prompts.AnalystSystem),
		sysCfg.AnalystMaxIterations,
		actionLog,
	)
}
