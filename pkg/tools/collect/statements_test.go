package collect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dartagent/pkg/dart"
	"dartagent/pkg/datastore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *dart.CompanyRegistry {
	return dart.NewCompanyRegistry(func(ctx context.Context) ([]dart.Company, error) {
		return []dart.Company{
			{Code: "00126380", Name: "삼성전자", StockCode: "005930"},
		}, nil
	})
}

func statementsServer(t *testing.T) *dart.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fs_div") != "CFS" {
			w.Write([]byte(`{"status":"013","message":"조회된 데이타가 없습니다."}`))
			return
		}
		w.Write([]byte(`{
			"status": "000", "message": "정상",
			"list": [
				{"rcept_no": "1", "corp_code": "00126380", "sj_div": "IS", "sj_nm": "손익계산서",
				 "account_nm": "매출액", "bsns_year": "2023", "thstrm_amount": "950,000,000,000",
				 "currency": "KRW", "ord": "1"}
			]
		}`))
	}))
	t.Cleanup(srv.Close)
	return dart.NewClientWithBaseURL("key", srv.URL, 5*time.Second)
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "삼성전자_fs_2023_consolidated", BuildKey("삼성전자", "2023", ScopeConsolidated))
	assert.Equal(t, "companyx_fs_2023_consolidated", BuildKey("CompanyX", "2023", ScopeConsolidated))
	assert.Equal(t, "lg전자_fs_2024_separate", BuildKey("LG 전자", "2024", ScopeSeparate))
}

func TestStatementsToolStoresOnce(t *testing.T) {
	store := datastore.NewStore()
	tool := NewStatementsTool(statementsServer(t), testRegistry(), store)

	args := map[string]any{"company_name": "삼성전자", "year": "2023"}

	result, err := tool.Execute(context.Background(), args)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, result.Content, "조회하여")
	assert.Contains(t, result.Content, "저장했습니다")
	assert.Contains(t, result.Content, "추가로 궁금한 사항")

	key := BuildKey("삼성전자", "2023", ScopeConsolidated)
	require.True(t, store.Has(key))

	// Second run must not refetch, only report the existing key.
	again, err := tool.Execute(context.Background(), args)
	require.NoError(t, err)
	assert.Contains(t, again.Content, "이미 저장되어 있습니다")
	assert.Equal(t, 1, store.Len())
}

func TestStatementsToolScopeMissing(t *testing.T) {
	store := datastore.NewStore()
	tool := NewStatementsTool(statementsServer(t), testRegistry(), store)

	result, err := tool.Execute(context.Background(), map[string]any{
		"company_name": "삼성전자",
		"fs_type":      ScopeSeparate,
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, "별도")
	assert.Equal(t, 0, store.Len())
}

func TestStatementsToolUnknownCompany(t *testing.T) {
	store := datastore.NewStore()
	tool := NewStatementsTool(statementsServer(t), testRegistry(), store)

	result, err := tool.Execute(context.Background(), map[string]any{"company_name": "없는회사"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, "찾을 수 없습니다")
	assert.Equal(t, 0, store.Len())
}

func TestCorpCodeTool(t *testing.T) {
	tool := NewCorpCodeTool(testRegistry())

	result, err := tool.Execute(context.Background(), map[string]any{"company_name": "삼성전자"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, result.Content, "00126380")

	missing, err := tool.Execute(context.Background(), map[string]any{"company_name": "없는회사"})
	require.NoError(t, err)
	assert.True(t, missing.IsError)
}
