package analyze

import (
	"context"
	"errors"

	"dartagent/pkg/analysis"
	"dartagent/pkg/api"
	"dartagent/pkg/datastore"
)

// TableInfoTool describes the shape, columns and top entries of one stored table.
type TableInfoTool struct {
	store *datastore.Store
}

// NewTableInfoTool binds the tool to a session store.
func NewTableInfoTool(store *datastore.Store) *TableInfoTool {
	return &TableInfoTool{store: store}
}

func (t *TableInfoTool) Name() string {
	return "get_table_info"
}

func (t *TableInfoTool) Description() string {
	return "저장된 테이블의 구조(행/열 수, 컬럼 목록, 주요 계정 항목, 상위 행)를 요약합니다. " +
		"분석 전에 데이터 구조를 파악할 때 사용하세요. " +
		"예: get_table_info(\"삼성전자_fs_2023_consolidated\")"
}

func (t *TableInfoTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"key": map[string]any{
				"type":        "string",
				"description": "조회할 테이블의 저장소 키",
			},
		},
		"required": []string{"key"},
	}
}

func (t *TableInfoTool) Execute(ctx context.Context, args map[string]any) (*api.ToolResult, error) {
	key, _ := args["key"].(string)
	if key == "" {
		return api.NewToolError("key 인자가 필요합니다"), nil
	}

	table, err := t.store.Get(key)
	if err != nil {
		var notFound *datastore.NotFoundError
		if errors.As(err, &notFound) {
			return api.NewToolError(err.Error()), nil
		}
		return nil, err
	}

	return api.NewToolResult(analysis.DescribeTable(key, table)), nil
}
