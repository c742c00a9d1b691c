package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"dartagent/pkg/agent"
	"dartagent/pkg/api"
	"dartagent/pkg/config"
	"dartagent/pkg/dart"
	"dartagent/pkg/datastore"
	"dartagent/pkg/llm"
	"dartagent/pkg/monitor"
	"dartagent/pkg/planner"
	"dartagent/pkg/prompts"
)

// session bundles the per-conversation state: the tabular store the agents
// write into, the running conversation window, the workflow wired to that
// store, and the action log for this conversation.
type session struct {
	store     *datastore.Store
	conv      *planner.Conversation
	workflow  *planner.Workflow
	actionLog *monitor.ActionLog
}

// ChatHandler routes incoming messages into the planner workflow. It keeps
// one isolated session per SessionKey, so two chats never share stored
// financial data. Turns run strictly one at a time.
type ChatHandler struct {
	client       llm.LLMClient
	dartClient   *dart.Client
	corpRegistry *dart.CompanyRegistry
	loader       *prompts.Loader
	systemConfig *config.SystemConfig
	responder    api.MessageResponder

	mu       sync.Mutex
	sessions map[string]*session
}

// NewChatHandler creates a ChatHandler. The responder is injected later by
// the gateway builder via SetResponder.
func NewChatHandler(client llm.LLMClient, dartClient *dart.Client, corpRegistry *dart.CompanyRegistry, loader *prompts.Loader, sysCfg *config.SystemConfig) *ChatHandler {
	return &ChatHandler{
		client:       client,
		dartClient:   dartClient,
		corpRegistry: corpRegistry,
		loader:       loader,
		systemConfig: sysCfg,
		sessions:     make(map[string]*session),
	}
}

// SetResponder implements api.ResponderAware.
func (h *ChatHandler) SetResponder(responder api.MessageResponder) {
	h.responder = responder
}

// OnMessage processes one user message end to end: session lookup, a full
// planner turn, and exactly one reply. The handler mutex serializes turns
// across all sessions, matching the blocking execution model of the agents.
func (h *ChatHandler) OnMessage(msg *api.UnifiedMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	sess := h.getSession(msg.Session.SessionKey())

	if strings.HasPrefix(msg.Content, "/") {
		h.handleCommand(msg, sess)
		return
	}

	h.sendSignal(msg.Session, "thinking")

	timeout := time.Duration(h.systemConfig.LLMTimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	answer, err := sess.workflow.RunTurn(ctx, sess.conv, msg.Content)
	if err != nil {
		slog.Error("Turn failed", "session", msg.Session.SessionKey(), "error", err)
		h.sendReply(msg.Session, fmt.Sprintf("❌ %v", err))
		return
	}

	h.sendReply(msg.Session, answer)

	// Surfaces the stored keys so UI channels can display what is available
	// for follow-up analysis.
	if keys := sess.store.Keys(); len(keys) > 0 {
		h.sendSignal(msg.Session, "keys:"+strings.Join(keys, ","))
	}

	slog.Info("Turn finished", "session", msg.Session.SessionKey(), "duration", time.Since(start).String())
}

// getSession returns the state for a session key, creating it on first use.
// Caller must hold h.mu.
func (h *ChatHandler) getSession(key string) *session {
	if sess, ok := h.sessions[key]; ok {
		return sess
	}

	store := datastore.NewStore()
	actionLog := monitor.NewActionLog()
	collector := agent.NewCollector(h.client, h.dartClient, h.corpRegistry, store, h.loader, h.systemConfig, actionLog)
	analyst := agent.NewAnalyst(h.client, store, h.loader, h.systemConfig, actionLog)
	p := planner.NewPlanner(h.client, store, h.loader, h.systemConfig)

	sess := &session{
		store:     store,
		conv:      planner.NewConversation(),
		workflow:  planner.NewWorkflow(p, collector, analyst, h.systemConfig.MaxPlannerSteps),
		actionLog: actionLog,
	}
	h.sessions[key] = sess
	slog.Info("Session created", "session", key)
	return sess
}

// handleCommand executes the small set of slash commands that manage
// session state without going through the planner.
func (h *ChatHandler) handleCommand(msg *api.UnifiedMessage, sess *session) {
	switch strings.TrimSpace(msg.Content) {
	case "/reset":
		delete(h.sessions, msg.Session.SessionKey())
		h.sendReply(msg.Session, "세션을 초기화했습니다. 저장된 데이터와 대화 기록이 삭제되었습니다.")

	case "/keys":
		keys := sess.store.Keys()
		if len(keys) == 0 {
			h.sendReply(msg.Session, "저장된 데이터가 없습니다.")
			return
		}
		h.sendReply(msg.Session, "저장된 데이터 키 목록: "+strings.Join(keys, ", "))

	case "/log":
		records := sess.actionLog.Records()
		if len(records) == 0 {
			h.sendReply(msg.Session, "기록된 에이전트 동작이 없습니다.")
			return
		}
		var sb strings.Builder
		for _, r := range records {
			fmt.Fprintf(&sb, "[%s] %s %s: %s\n", r.Timestamp.Format("15:04:05"), r.Agent, r.Kind, truncate(r.Payload, 120))
		}
		h.sendReply(msg.Session, sb.String())

	default:
		h.sendReply(msg.Session, "알 수 없는 명령어입니다. 사용 가능: /reset, /keys, /log")
	}
}

func (h *ChatHandler) sendReply(session api.SessionContext, content string) {
	if h.responder == nil {
		slog.Warn("No responder set, dropping reply", "session", session.SessionKey())
		return
	}
	if err := h.responder.SendReply(session, content); err != nil {
		slog.Error("Failed to send reply", "session", session.SessionKey(), "error", err)
	}
}

func (h *ChatHandler) sendSignal(session api.SessionContext, signal string) {
	if h.responder == nil {
		return
	}
	if err := h.responder.SendSignal(session, signal); err != nil {
		slog.Debug("Failed to send signal", "session", session.SessionKey(), "error", err)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
