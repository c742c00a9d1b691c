package analyze

import (
	"context"

	"dartagent/pkg/analysis"
	"dartagent/pkg/api"
)

// ExecTool evaluates a user-authored expression over the whole session store.
// Trusted-input only: the expression runs with full access to every stored
// table.
type ExecTool struct {
	evaluator *analysis.Evaluator
}

// NewExecTool binds the tool to an evaluator.
func NewExecTool(evaluator *analysis.Evaluator) *ExecTool {
	return &ExecTool{evaluator: evaluator}
}

func (t *ExecTool) Name() string {
	return "execute_analysis_code"
}

func (t *ExecTool) Description() string {
	return "저장된 모든 테이블에 접근할 수 있는 분석 표현식을 실행합니다. " +
		"표현식 안에서 data[\"키\"]로 테이블에, current(키, 계정명)/prior(키, 계정명)으로 금액에, " +
		"keys()로 키 목록에, fmt_amount(값)으로 한국식 단위 표기에 접근할 수 있습니다. " +
		"표현식의 값이 곧 결과입니다. " +
		"예: (current(\"삼성전자_fs_2024_consolidated\", \"매출액\") / current(\"삼성전자_fs_2023_consolidated\", \"매출액\") - 1) * 100"
}

func (t *ExecTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"code": map[string]any{
				"type":        "string",
				"description": "실행할 분석 표현식",
			},
		},
		"required": []string{"code"},
	}
}

func (t *ExecTool) Execute(ctx context.Context, args map[string]any) (*api.ToolResult, error) {
	code, _ := args["code"].(string)
	if code == "" {
		return api.NewToolError("code 인자가 필요합니다"), nil
	}

	result, err := t.evaluator.Evaluate(code)
	if err != nil {
		return api.NewToolError(err.Error()), nil
	}
	return api.NewToolResult("실행 결과: " + result), nil
}
