package planner

import (
	"context"
	"fmt"
	"testing"

	"dartagent/pkg/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedAgent struct {
	name    string
	answers []string
	err     error
	runs    int
}

func (a *scriptedAgent) Name() string { return a.name }

func (a *scriptedAgent) Run(ctx context.Context, input string) (string, error) {
	a.runs++
	if a.err != nil {
		return "", a.err
	}
	answer := a.answers[0]
	if len(a.answers) > 1 {
		a.answers = a.answers[1:]
	}
	return answer, nil
}

func TestRunTurnCollectThenShortCircuit(t *testing.T) {
	// One decision call routes to the collector; the completed collection
	// message then short-circuits the second planning step.
	client := llmtest.NewFakeClient(llmtest.TextResponse(DecisionCollect))
	collector := &scriptedAgent{name: DecisionCollect, answers: []string{completedCollection}}
	analyst := &scriptedAgent{name: DecisionAnalyze, answers: []string{"분석 결과"}}

	w := NewWorkflow(newTestPlanner(client, nil), collector, analyst, 50)

	answer, err := w.RunTurn(context.Background(), NewConversation(), "삼성전자 2023년 재무제표 찾아줘")
	require.NoError(t, err)
	assert.Equal(t, completedCollection, answer)
	assert.Equal(t, 1, collector.runs)
	assert.Equal(t, 0, analyst.runs)
	assert.Equal(t, 1, client.CallCount())
}

func TestRunTurnCollectThenAnalyze(t *testing.T) {
	client := llmtest.NewFakeClient(
		llmtest.TextResponse(DecisionCollect),
		llmtest.TextResponse(DecisionAnalyze),
		llmtest.TextResponse(DecisionEnd),
	)
	collector := &scriptedAgent{name: DecisionCollect, answers: []string{"데이터를 수집했습니다"}}
	analyst := &scriptedAgent{name: DecisionAnalyze, answers: []string{"매출액은 9,500억원입니다"}}

	w := NewWorkflow(newTestPlanner(client, nil), collector, analyst, 50)

	answer, err := w.RunTurn(context.Background(), NewConversation(), "삼성전자 매출액을 분석해줘")
	require.NoError(t, err)
	assert.Equal(t, "매출액은 9,500억원입니다", answer)
	assert.Equal(t, 1, collector.runs)
	assert.Equal(t, 1, analyst.runs)
}

func TestRunTurnImmediateEnd(t *testing.T) {
	client := llmtest.NewFakeClient(llmtest.TextResponse(DecisionEnd))
	w := NewWorkflow(newTestPlanner(client, nil), &scriptedAgent{name: DecisionCollect}, &scriptedAgent{name: DecisionAnalyze}, 50)

	answer, err := w.RunTurn(context.Background(), NewConversation(), "안녕")
	require.NoError(t, err)
	assert.Contains(t, answer, "처리할 작업이 없습니다")
}

func TestRunTurnStepBudget(t *testing.T) {
	client := llmtest.NewFakeClient(
		llmtest.TextResponse(DecisionAnalyze),
		llmtest.TextResponse(DecisionAnalyze),
		llmtest.TextResponse(DecisionAnalyze),
	)
	analyst := &scriptedAgent{name: DecisionAnalyze, answers: []string{"아직 분석 중입니다"}}

	w := NewWorkflow(newTestPlanner(client, nil), &scriptedAgent{name: DecisionCollect}, analyst, 3)

	_, err := w.RunTurn(context.Background(), NewConversation(), "끝나지 않는 분석을 계속해줘")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "최대 플래닝 단계")
	assert.Equal(t, 3, analyst.runs)
}

func TestRunTurnAgentFailure(t *testing.T) {
	client := llmtest.NewFakeClient(llmtest.TextResponse(DecisionCollect))
	collector := &scriptedAgent{name: DecisionCollect, err: fmt.Errorf("API 요청 중 오류 발생")}

	w := NewWorkflow(newTestPlanner(client, nil), collector, &scriptedAgent{name: DecisionAnalyze}, 50)

	_, err := w.RunTurn(context.Background(), NewConversation(), "삼성전자 재무제표 조회해줘")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpendartAgent 실행 실패")
}
