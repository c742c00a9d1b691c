package handler

import (
	"context"
	"testing"
	"time"

	"dartagent/pkg/api"
	"dartagent/pkg/config"
	"dartagent/pkg/dart"
	"dartagent/pkg/llm/llmtest"
	"dartagent/pkg/prompts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponder struct {
	replies []string
	signals []string
}

func (r *fakeResponder) SendReply(session api.SessionContext, content string) error {
	r.replies = append(r.replies, content)
	return nil
}

func (r *fakeResponder) SendSignal(session api.SessionContext, signal string) error {
	r.signals = append(r.signals, signal)
	return nil
}

func newTestHandler(client *llmtest.FakeClient) (*ChatHandler, *fakeResponder) {
	dartClient := dart.NewClient("test-key", 5*time.Second)
	registry := dart.NewCompanyRegistry(func(ctx context.Context) ([]dart.Company, error) {
		return []dart.Company{{Code: "00126380", Name: "삼성전자"}}, nil
	})

	h := NewChatHandler(client, dartClient, registry, prompts.NewLoader(""), config.DefaultSystemConfig())
	responder := &fakeResponder{}
	h.SetResponder(responder)
	return h, responder
}

func message(content string) *api.UnifiedMessage {
	return &api.UnifiedMessage{
		Session: api.SessionContext{ChannelID: "cli", UserID: "u1", ChatID: "u1", Username: "tester"},
		Content: content,
	}
}

func TestOnMessageEndsWithReply(t *testing.T) {
	client := llmtest.NewFakeClient(llmtest.TextResponse("END"))
	h, responder := newTestHandler(client)

	h.OnMessage(message("안녕하세요"))

	require.Len(t, responder.replies, 1)
	assert.Contains(t, responder.replies[0], "처리할 작업이 없습니다")
	assert.Contains(t, responder.signals, "thinking")
}

func TestOnMessageReportsTurnError(t *testing.T) {
	// Every decision routes to the analyst, which answers through the LLM
	// as well; exhausting the scripted responses surfaces as a turn error.
	client := llmtest.NewFakeClient(
		llmtest.TextResponse("AnalyzeAgent"),
		llmtest.TextResponse("분석할 데이터가 없습니다"),
	)
	h, responder := newTestHandler(client)

	h.OnMessage(message("매출액 분석해줘"))

	require.Len(t, responder.replies, 1)
	assert.Contains(t, responder.replies[0], "❌")
}

func TestSessionsAreIsolated(t *testing.T) {
	client := llmtest.NewFakeClient(
		llmtest.TextResponse("END"),
		llmtest.TextResponse("END"),
	)
	h, _ := newTestHandler(client)

	first := message("안녕")
	second := message("안녕")
	second.Session.ChatID = "u2"

	h.OnMessage(first)
	h.OnMessage(second)

	assert.Len(t, h.sessions, 2)
	assert.NotSame(t, h.sessions["cli:u1"].store, h.sessions["cli:u2"].store)
}

func TestResetCommandClearsSession(t *testing.T) {
	client := llmtest.NewFakeClient(llmtest.TextResponse("END"))
	h, responder := newTestHandler(client)

	h.OnMessage(message("안녕"))
	require.Len(t, h.sessions, 1)

	h.OnMessage(message("/reset"))
	assert.Empty(t, h.sessions)
	assert.Contains(t, responder.replies[len(responder.replies)-1], "세션을 초기화했습니다")
}

func TestKeysCommandOnEmptyStore(t *testing.T) {
	client := llmtest.NewFakeClient()
	h, responder := newTestHandler(client)

	h.OnMessage(message("/keys"))

	require.Len(t, responder.replies, 1)
	assert.Contains(t, responder.replies[0], "저장된 데이터가 없습니다")
}
