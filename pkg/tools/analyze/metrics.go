package analyze

import (
	"context"
	"errors"

	"dartagent/pkg/analysis"
	"dartagent/pkg/api"
	"dartagent/pkg/datastore"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MetricsTool runs the metric extractor against one stored table.
type MetricsTool struct {
	store *datastore.Store
}

// NewMetricsTool binds the tool to a session store.
func NewMetricsTool(store *datastore.Store) *MetricsTool {
	return &MetricsTool{store: store}
}

func (t *MetricsTool) Name() string {
	return "analyze_financial_metrics"
}

func (t *MetricsTool) Description() string {
	return "저장된 재무제표 테이블에서 요청한 재무 지표들을 추출합니다. " +
		"지표명이 정확히 일치하지 않아도 유사한 계정과목을 자동으로 찾아줍니다. " +
		"금액은 억원/조원 단위로 변환되어 반환됩니다. " +
		"예: analyze_financial_metrics(\"삼성전자_fs_2023_consolidated\", [\"매출액\", \"영업이익\"])"
}

func (t *MetricsTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"key": map[string]any{
				"type":        "string",
				"description": "분석할 테이블의 저장소 키",
			},
			"metrics": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "추출할 재무 지표명 목록 (예: [\"매출액\", \"영업이익\", \"당기순이익\"])",
			},
		},
		"required": []string{"key", "metrics"},
	}
}

func (t *MetricsTool) Execute(ctx context.Context, args map[string]any) (*api.ToolResult, error) {
	key, _ := args["key"].(string)
	if key == "" {
		return api.NewToolError("key 인자가 필요합니다"), nil
	}

	rawMetrics, _ := args["metrics"].([]any)
	metrics := make([]string, 0, len(rawMetrics))
	for _, m := range rawMetrics {
		if s, ok := m.(string); ok && s != "" {
			metrics = append(metrics, s)
		}
	}
	if len(metrics) == 0 {
		return api.NewToolError("metrics 인자에 분석할 지표명을 한 개 이상 지정해야 합니다"), nil
	}

	table, err := t.store.Get(key)
	if err != nil {
		var notFound *datastore.NotFoundError
		if errors.As(err, &notFound) {
			return api.NewToolError(err.Error()), nil
		}
		return nil, err
	}

	results := analysis.ExtractMetrics(table, metrics)

	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, err
	}
	return api.NewToolResult(string(payload)), nil
}
