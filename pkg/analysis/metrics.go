package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"dartagent/pkg/datastore"
)

// MetricValue is a successfully extracted financial metric.
type MetricValue struct {
	Value       float64 `json:"value"`     // raw amount in 원
	Formatted   string  `json:"formatted"` // e.g. "9,500억원" or "12.3조원"
	Unit        string  `json:"unit"`      // "억원" or "조원"
	AccountName string  `json:"actual_account_name"`
	Requested   string  `json:"requested_account_name"`
	Substituted bool    `json:"substituted"`
}

// MetricResult holds either a value or a per-metric error. Errors are
// non-fatal: one unresolvable metric never aborts its siblings.
type MetricResult struct {
	Value *MetricValue `json:"value,omitempty"`
	Err   string       `json:"error,omitempty"`
}

// ExtractMetrics resolves each requested metric against the table and
// extracts the current-period amount of the first matching row. The result
// maps requested name → value-or-error record.
func ExtractMetrics(table *datastore.Table, metrics []string) map[string]MetricResult {
	results := make(map[string]MetricResult, len(metrics))

	for _, metric := range metrics {
		res, ok := ResolveAccountName(table, metric)
		if !ok {
			results[metric] = MetricResult{Err: fmt.Sprintf("'%s' 또는 유사한 항목을 찾을 수 없음", metric)}
			continue
		}

		row, ok := firstMatchingRow(table, res.Resolved)
		if !ok {
			results[metric] = MetricResult{Err: fmt.Sprintf("'%s' 항목의 금액 정보를 찾을 수 없음", res.Resolved)}
			continue
		}
		if row.CurrentAmount == nil {
			results[metric] = MetricResult{Err: "값이 없음 (NaN)"}
			continue
		}

		formatted, unit := FormatAmount(*row.CurrentAmount)
		results[metric] = MetricResult{Value: &MetricValue{
			Value:       *row.CurrentAmount,
			Formatted:   formatted,
			Unit:        unit,
			AccountName: res.Resolved,
			Requested:   res.Requested,
			Substituted: res.Substituted(),
		}}
	}

	return results
}

// FormatAmount renders a 원-denominated amount in Korean magnitude units:
// 억원 rounded to the nearest integer, switching to 조원 with one decimal
// once the value reaches 10,000억.
func FormatAmount(amount float64) (formatted, unit string) {
	in100M := amount / 100_000_000
	if in100M >= 10_000 {
		return fmt.Sprintf("%s조원", groupDigits(in100M/10_000, 1)), "조원"
	}
	return fmt.Sprintf("%s억원", groupDigits(in100M, 0)), "억원"
}

// groupDigits formats v with the given number of decimals and comma
// thousands separators on the integer part.
func groupDigits(v float64, decimals int) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', decimals, 64)

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteString(fracPart)
	return b.String()
}
