// Package collect implements the tools of the data collection agent.
package collect

import (
	"context"
	"fmt"

	"dartagent/pkg/api"
	"dartagent/pkg/dart"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CorpCodeTool resolves a company name to its 8-digit DART corp_code.
type CorpCodeTool struct {
	registry *dart.CompanyRegistry
}

// NewCorpCodeTool builds the tool around a company registry.
func NewCorpCodeTool(registry *dart.CompanyRegistry) *CorpCodeTool {
	return &CorpCodeTool{registry: registry}
}

func (t *CorpCodeTool) Name() string {
	return "search_corp_code"
}

func (t *CorpCodeTool) Description() string {
	return "회사명으로 DART 전자공시시스템의 8자리 고유번호(corp_code)를 검색합니다. " +
		"재무제표를 조회하기 전에 이 도구로 기업의 정확한 이름과 고유번호를 확인하세요. " +
		"정확한 회사명이 없으면 부분 명칭으로도 검색합니다."
}

func (t *CorpCodeTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"company_name": map[string]any{
				"type":        "string",
				"description": "검색할 회사명 (예: '삼성전자', '카카오', 'SK하이닉스')",
			},
		},
		"required": []string{"company_name"},
	}
}

func (t *CorpCodeTool) Execute(ctx context.Context, args map[string]any) (*api.ToolResult, error) {
	name, _ := args["company_name"].(string)
	if name == "" {
		return api.NewToolError("company_name 인자가 필요합니다"), nil
	}

	company, found, err := t.registry.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return api.NewToolError(fmt.Sprintf("'%s'에 해당하는 기업을 찾을 수 없습니다", name)), nil
	}

	payload, err := json.Marshal(map[string]string{
		"corp_code": company.Code,
		"corp_name": company.Name,
	})
	if err != nil {
		return nil, err
	}

	return api.NewToolResult(string(payload)), nil
}
