package planner

import (
	"context"
	"strings"
	"testing"

	"dartagent/pkg/config"
	"dartagent/pkg/datastore"
	"dartagent/pkg/llm/llmtest"
	"dartagent/pkg/prompts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlanner(client *llmtest.FakeClient, store *datastore.Store) *Planner {
	if store == nil {
		store = datastore.NewStore()
	}
	return NewPlanner(client, store, prompts.NewLoader(""), config.DefaultSystemConfig())
}

const completedCollection = "'삼성전자'의 2023년 연결 재무제표를 조회하여 '삼성전자_fs_2023_consolidated' 키로 저장했습니다. 추가로 궁금한 사항이 있으시면 말씀해주세요."

func TestDecideShortCircuitSkipsLLM(t *testing.T) {
	client := llmtest.NewFakeClient()
	p := newTestPlanner(client, nil)

	conv := NewConversation()
	conv.AddUser("삼성전자 2023년 재무제표 찾아줘")
	conv.AddDecision(DecisionCollect)
	conv.AddAgent(DecisionCollect, completedCollection)

	decision, err := p.Decide(context.Background(), conv)
	require.NoError(t, err)
	assert.Equal(t, DecisionEnd, decision)
	assert.Equal(t, 0, client.CallCount())

	entries := conv.Entries()
	last := entries[len(entries)-1]
	assert.Equal(t, KindPlannerDecision, last.Kind)
	assert.Equal(t, DecisionEnd, last.Content)
}

func TestDecideNoShortCircuitOnFollowUpKeyword(t *testing.T) {
	client := llmtest.NewFakeClient(llmtest.TextResponse(DecisionAnalyze))
	p := newTestPlanner(client, nil)

	conv := NewConversation()
	conv.AddUser("저장된 데이터로 매출액 성장률을 분석해줘")
	conv.AddAgent(DecisionCollect, completedCollection)

	decision, err := p.Decide(context.Background(), conv)
	require.NoError(t, err)
	assert.Equal(t, DecisionAnalyze, decision)
	assert.Equal(t, 1, client.CallCount())
}

func TestDecideCoercesInvalidLabel(t *testing.T) {
	client := llmtest.NewFakeClient(llmtest.TextResponse("SomethingElse"))
	p := newTestPlanner(client, nil)

	conv := NewConversation()
	conv.AddUser("삼성전자 재무제표 조회해줘")

	decision, err := p.Decide(context.Background(), conv)
	require.NoError(t, err)
	assert.Equal(t, DecisionEnd, decision)
}

func TestDecidePromptCarriesKeysAndWindow(t *testing.T) {
	store := datastore.NewStore()
	store.Add("삼성전자_fs_2023_consolidated", &datastore.Table{Name: "삼성전자_fs_2023_consolidated"})

	client := llmtest.NewFakeClient(llmtest.TextResponse(DecisionAnalyze))
	p := newTestPlanner(client, store)

	conv := NewConversation()
	conv.AddUser("매출액이 얼마야?")

	_, err := p.Decide(context.Background(), conv)
	require.NoError(t, err)

	calls := client.Calls()
	require.Len(t, calls, 1)
	userPrompt := calls[0].Messages[1].GetTextContent()
	assert.Contains(t, userPrompt, "삼성전자_fs_2023_consolidated")
	assert.Contains(t, userPrompt, "매출액이 얼마야?")
	assert.Nil(t, calls[0].Tools)
}

func TestConversationWindowTruncates(t *testing.T) {
	conv := NewConversation()
	conv.AddUser(strings.Repeat("가", 300))
	conv.AddAgent(DecisionCollect, "짧은 응답")

	window := conv.Window(10, 200)
	lines := strings.Split(window, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "..."))
	assert.Equal(t, 200+len("user: ")+len("..."), len([]rune(lines[0])))
	assert.Equal(t, "OpendartAgent: 짧은 응답", lines[1])
}

func TestConversationWindowKeepsTail(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < 15; i++ {
		conv.AddUser("메시지")
	}
	window := conv.Window(10, 200)
	assert.Len(t, strings.Split(window, "\n"), 10)
}
