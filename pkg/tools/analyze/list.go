// Package analyze implements the tools of the analysis agent.
package analyze

import (
	"context"
	"strings"

	"dartagent/pkg/api"
	"dartagent/pkg/datastore"
)

// ListTablesTool enumerates the keys of every stored table.
type ListTablesTool struct {
	store *datastore.Store
}

// NewListTablesTool binds the tool to a session store.
func NewListTablesTool(store *datastore.Store) *ListTablesTool {
	return &ListTablesTool{store: store}
}

func (t *ListTablesTool) Name() string {
	return "list_stored_tables"
}

func (t *ListTablesTool) Description() string {
	return "세션 저장소에 저장된 모든 재무 데이터 테이블의 키 목록을 반환합니다. " +
		"분석을 시작하기 전에 어떤 데이터가 있는지 확인할 때 사용하세요. " +
		"결과 예시: ['삼성전자_fs_2023_consolidated', '삼성전자_fs_2024_consolidated']"
}

func (t *ListTablesTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func (t *ListTablesTool) Execute(ctx context.Context, args map[string]any) (*api.ToolResult, error) {
	keys := t.store.Keys()
	if len(keys) == 0 {
		return api.NewToolResult("저장된 데이터가 없습니다. 먼저 데이터를 수집해주세요."), nil
	}
	return api.NewToolResult("저장된 데이터 키 목록: " + strings.Join(keys, ", ")), nil
}
