package analyze

import (
	"context"
	"testing"

	"dartagent/pkg/analysis"
	"dartagent/pkg/datastore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v float64) *float64 { return &v }

func storeWithTable(t *testing.T) *datastore.Store {
	t.Helper()
	store := datastore.NewStore()
	store.Add("삼성전자_fs_2023_consolidated", &datastore.Table{
		Name: "삼성전자_fs_2023_consolidated",
		Rows: []datastore.Row{
			{AccountName: "매출액", StatementDiv: datastore.DivIncomeStatement, CurrentAmount: amount(950_000_000_000), PriorAmount: amount(900_000_000_000)},
			{AccountName: "영업이익", StatementDiv: datastore.DivIncomeStatement, CurrentAmount: amount(120_000_000_000)},
		},
	})
	return store
}

func TestListTablesTool(t *testing.T) {
	empty := NewListTablesTool(datastore.NewStore())
	result, err := empty.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, result.Content, "저장된 데이터가 없습니다")

	filled := NewListTablesTool(storeWithTable(t))
	result, err = filled.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, result.Content, "삼성전자_fs_2023_consolidated")
}

func TestTableInfoTool(t *testing.T) {
	tool := NewTableInfoTool(storeWithTable(t))

	result, err := tool.Execute(context.Background(), map[string]any{"key": "삼성전자_fs_2023_consolidated"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, result.Content, "매출액")

	missing, err := tool.Execute(context.Background(), map[string]any{"key": "없는키"})
	require.NoError(t, err)
	assert.True(t, missing.IsError)
	assert.Contains(t, missing.Content, "찾을 수 없습니다")
}

func TestMetricsTool(t *testing.T) {
	tool := NewMetricsTool(storeWithTable(t))

	result, err := tool.Execute(context.Background(), map[string]any{
		"key":     "삼성전자_fs_2023_consolidated",
		"metrics": []any{"매출액", "없는지표"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, result.Content, "9,500억원")
	assert.Contains(t, result.Content, "찾을 수 없음")
}

func TestMetricsToolMissingArgs(t *testing.T) {
	tool := NewMetricsTool(storeWithTable(t))

	result, err := tool.Execute(context.Background(), map[string]any{"key": "삼성전자_fs_2023_consolidated"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestExecTool(t *testing.T) {
	store := storeWithTable(t)
	tool := NewExecTool(analysis.NewEvaluator(store))

	result, err := tool.Execute(context.Background(), map[string]any{
		"code": `(current("삼성전자_fs_2023_consolidated", "매출액") / prior("삼성전자_fs_2023_consolidated", "매출액") - 1) * 100`,
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, result.Content, "실행 결과")

	bad, err := tool.Execute(context.Background(), map[string]any{"code": `current("없는키", "매출액")`})
	require.NoError(t, err)
	assert.True(t, bad.IsError)
}
