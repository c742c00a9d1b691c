// Package planner implements the routing control loop: it decides, turn by
// turn, which sub-agent acts next, bounded by a configured step budget.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"dartagent/pkg/config"
	"dartagent/pkg/datastore"
	"dartagent/pkg/llm"
	"dartagent/pkg/prompts"
)

// Routing decisions. The classification is over exactly these three labels;
// anything else coming back from the model is coerced to DecisionEnd.
const (
	DecisionCollect = "OpendartAgent"
	DecisionAnalyze = "AnalyzeAgent"
	DecisionEnd     = "END"
)

// completionMarkers short-circuit the decision call: when the previous
// agent answer carries all three markers and the user message carries no
// follow-up keyword, the turn is already handled.
var completionMarkers = []string{"조회하여", "저장했습니다", "추가로 궁금한 사항"}

// followUpKeywords signal that the user still wants something from this
// message even after a completed collection.
var followUpKeywords = []string{"분석", "비교", "계산", "얼마", "조회"}

// Planner produces the next routing decision for a conversation.
type Planner struct {
	client llm.LLMClient
	store  *datastore.Store
	loader *prompts.Loader
	sysCfg *config.SystemConfig
}

// NewPlanner wires the decision maker to its LLM, the session store whose
// keys feed the prompt, and the prompt loader.
func NewPlanner(client llm.LLMClient, store *datastore.Store, loader *prompts.Loader, sysCfg *config.SystemConfig) *Planner {
	return &Planner{
		client: client,
		store:  store,
		loader: loader,
		sysCfg: sysCfg,
	}
}

// Decide returns the next routing decision and appends it to the
// conversation. The short-circuit path answers without an LLM call.
func (p *Planner) Decide(ctx context.Context, conv *Conversation) (string, error) {
	if p.shortCircuit(conv) {
		conv.AddDecision(DecisionEnd)
		return DecisionEnd, nil
	}

	keys := p.store.Keys()
	availableKeys := "No data available"
	if len(keys) > 0 {
		availableKeys = strings.Join(keys, ", ")
	}

	userPrompt := strings.NewReplacer(
		"{messages}", conv.Window(p.sysCfg.ContextWindowMessages, p.sysCfg.ContextSnippetRunes),
		"{available_data_keys}", availableKeys,
		"{input}", conv.LatestUserMessage(),
	).Replace(p.loader.Get(prompts.PlannerUser))

	messages := []llm.Message{
		llm.NewSystemMessage(p.loader.Get(prompts.PlannerSystem)),
		llm.NewUserMessage(userPrompt),
	}

	resp, err := p.client.Chat(ctx, messages, nil)
	if err != nil {
		return "", fmt.Errorf("플래너 LLM 호출 실패: %w", err)
	}

	decision := strings.TrimSpace(resp.Text())
	switch decision {
	case DecisionCollect, DecisionAnalyze, DecisionEnd:
	default:
		slog.Warn("Invalid planner decision, falling back to END", "decision", decision)
		decision = DecisionEnd
	}

	conv.AddDecision(decision)
	return decision, nil
}

// shortCircuit reports whether the previous agent answer already closed out
// the current user request.
func (p *Planner) shortCircuit(conv *Conversation) bool {
	lastAgent := conv.LastAgentMessage()
	latestUser := conv.LatestUserMessage()
	if lastAgent == "" || latestUser == "" {
		return false
	}

	for _, marker := range completionMarkers {
		if !strings.Contains(lastAgent, marker) {
			return false
		}
	}

	lowered := strings.ToLower(latestUser)
	for _, keyword := range followUpKeywords {
		if strings.Contains(lowered, keyword) {
			return false
		}
	}
	return true
}
