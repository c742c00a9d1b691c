package collect

import (
	"context"
	"fmt"
	"strings"

	"dartagent/pkg/api"
	"dartagent/pkg/dart"
	"dartagent/pkg/datastore"
)

// Consolidation scope names accepted by the statements tool.
const (
	ScopeConsolidated = "consolidated"
	ScopeSeparate     = "separate"
)

// StatementsTool fetches a company's financial statements from OpenDART and
// persists the resulting table in the session store.
type StatementsTool struct {
	client   *dart.Client
	registry *dart.CompanyRegistry
	store    *datastore.Store
}

// NewStatementsTool wires the tool to the disclosure API client, the company
// registry and the session store it writes into.
func NewStatementsTool(client *dart.Client, registry *dart.CompanyRegistry, store *datastore.Store) *StatementsTool {
	return &StatementsTool{
		client:   client,
		registry: registry,
		store:    store,
	}
}

func (t *StatementsTool) Name() string {
	return "search_financial_statements"
}

func (t *StatementsTool) Description() string {
	return "회사의 재무제표(재무상태표, 손익계산서 등)를 OpenDART API로 조회하고 세션 저장소에 저장합니다. " +
		"회사명을 입력하면 자동으로 corp_code를 검색한 후 데이터를 가져옵니다. " +
		"이미 저장된 데이터는 다시 조회하지 않습니다."
}

func (t *StatementsTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"company_name": map[string]any{
				"type":        "string",
				"description": "조회할 회사명 (예: '삼성전자', 'LG전자', 'NAVER')",
			},
			"year": map[string]any{
				"type":        "string",
				"description": "조회할 사업연도 4자리 (기본값 \"2023\")",
			},
			"report_type": map[string]any{
				"type":        "string",
				"enum":        []string{"annual", "half", "quarter", "q1"},
				"description": "보고서 유형: annual(사업보고서), half(반기), quarter(3분기), q1(1분기)",
			},
			"fs_type": map[string]any{
				"type":        "string",
				"enum":        []string{ScopeConsolidated, ScopeSeparate},
				"description": "재무제표 유형: consolidated(연결), separate(별도)",
			},
		},
		"required": []string{"company_name"},
	}
}

func (t *StatementsTool) Execute(ctx context.Context, args map[string]any) (*api.ToolResult, error) {
	name, _ := args["company_name"].(string)
	if name == "" {
		return api.NewToolError("company_name 인자가 필요합니다"), nil
	}

	year, _ := args["year"].(string)
	if year == "" {
		year = "2023"
	}
	reportType, _ := args["report_type"].(string)
	if reportType == "" {
		reportType = "annual"
	}
	fsType, _ := args["fs_type"].(string)
	if fsType != ScopeSeparate {
		fsType = ScopeConsolidated
	}

	company, found, err := t.registry.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return api.NewToolError(fmt.Sprintf("'%s'에 해당하는 기업을 찾을 수 없습니다", name)), nil
	}

	key := BuildKey(company.Name, year, fsType)
	if t.store.Has(key) {
		return api.NewToolResult(fmt.Sprintf(
			"'%s' 키에 데이터가 이미 저장되어 있습니다. 저장된 데이터를 바로 분석에 사용할 수 있습니다.", key)), nil
	}

	fsDiv := datastore.ScopeConsolidated
	if fsType == ScopeSeparate {
		fsDiv = datastore.ScopeSeparate
	}

	// The API serves consolidated and separate variants separately. Both
	// are fetched so a scope mismatch surfaces as a clean error instead of
	// a mixed table. Only the requested variant is kept.
	table, fetchErr := t.client.FetchStatements(ctx, company.Code, company.Name, year, dart.ReportCode(reportType), fsDiv)
	if fetchErr != nil {
		other := datastore.ScopeSeparate
		if fsDiv == datastore.ScopeSeparate {
			other = datastore.ScopeConsolidated
		}
		if _, altErr := t.client.FetchStatements(ctx, company.Code, company.Name, year, dart.ReportCode(reportType), other); altErr == nil {
			return api.NewToolError(fmt.Sprintf(
				"'%s'의 %s년 %s 재무제표가 없습니다. 다른 재무제표 유형으로 다시 시도해보세요. (%v)",
				company.Name, year, fsTypeKorean(fsType), fetchErr)), nil
		}
		return api.NewToolError(fmt.Sprintf("재무제표 조회 중 오류 발생: %v", fetchErr)), nil
	}

	t.store.Add(key, table)

	return api.NewToolResult(fmt.Sprintf(
		"'%s'의 %s년 %s 재무제표를 조회하여 '%s' 키로 저장했습니다. (%d개 계정 항목) 추가로 궁금한 사항이 있으시면 말씀해주세요.",
		company.Name, year, fsTypeKorean(fsType), key, len(table.Rows))), nil
}

// BuildKey derives the deterministic session store key for one fetch:
// lowercase company name with whitespace removed, joined with year and scope.
func BuildKey(companyName, year, fsType string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(companyName), ""))
	return fmt.Sprintf("%s_fs_%s_%s", normalized, year, fsType)
}

func fsTypeKorean(fsType string) string {
	if fsType == ScopeSeparate {
		return "별도"
	}
	return "연결"
}
