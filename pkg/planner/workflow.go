package planner

import (
	"context"
	"fmt"
	"log/slog"
)

// Agent is one dispatchable sub-agent. Both the collector and the analyst
// satisfy this.
type Agent interface {
	Name() string
	Run(ctx context.Context, input string) (string, error)
}

// Workflow is the bounded planning/dispatch loop for one session:
// PLANNING dispatches to a sub-agent or terminates, every dispatch returns
// to PLANNING, and a step budget aborts runaway loops.
type Workflow struct {
	planner   *Planner
	collector Agent
	analyst   Agent
	maxSteps  int
}

// NewWorkflow assembles the loop. maxSteps bounds routing decisions per
// user turn.
func NewWorkflow(p *Planner, collector, analyst Agent, maxSteps int) *Workflow {
	if maxSteps <= 0 {
		maxSteps = 1
	}
	return &Workflow{
		planner:   p,
		collector: collector,
		analyst:   analyst,
		maxSteps:  maxSteps,
	}
}

// RunTurn processes one user message to completion and returns the final
// answer for the user. Sub-agent answers accumulate in the conversation, so
// repeated dispatches within the turn see each other's results.
func (w *Workflow) RunTurn(ctx context.Context, conv *Conversation, input string) (string, error) {
	conv.AddUser(input)

	for step := 1; step <= w.maxSteps; step++ {
		decision, err := w.planner.Decide(ctx, conv)
		if err != nil {
			return "", err
		}

		var agent Agent
		switch decision {
		case DecisionCollect:
			agent = w.collector
		case DecisionAnalyze:
			agent = w.analyst
		default:
			return w.finalAnswer(conv), nil
		}

		slog.Info("Dispatching agent", "agent", agent.Name(), "step", step)

		answer, err := agent.Run(ctx, conv.LatestUserMessage())
		if err != nil {
			return "", fmt.Errorf("%s 실행 실패: %w", agent.Name(), err)
		}
		conv.AddAgent(agent.Name(), answer)
	}

	return "", fmt.Errorf("최대 플래닝 단계(%d)를 초과하여 요청 처리를 중단했습니다", w.maxSteps)
}

// finalAnswer picks the user-facing reply once the loop terminates.
func (w *Workflow) finalAnswer(conv *Conversation) string {
	if answer := conv.LastAgentMessage(); answer != "" {
		return answer
	}
	return "처리할 작업이 없습니다. 기업의 재무제표 조회나 저장된 데이터 분석을 요청해보세요."
}
