package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmountHundredMillions(t *testing.T) {
	formatted, unit := FormatAmount(950_000_000_000) // 9,500억
	assert.Equal(t, "9,500억원", formatted)
	assert.Equal(t, "억원", unit)
}

func TestFormatAmountTrillions(t *testing.T) {
	formatted, unit := FormatAmount(12_300_000_000_000) // 123,000억 → 12.3조
	assert.Equal(t, "12.3조원", formatted)
	assert.Equal(t, "조원", unit)
}

func TestFormatAmountBoundary(t *testing.T) {
	// Exactly 10,000억 tips over into 조 units.
	formatted, unit := FormatAmount(1_000_000_000_000)
	assert.Equal(t, "1.0조원", formatted)
	assert.Equal(t, "조원", unit)

	formatted, unit = FormatAmount(999_900_000_000)
	assert.Equal(t, "9,999억원", formatted)
	assert.Equal(t, "억원", unit)
}

func TestExtractMetricsVerbatim(t *testing.T) {
	results := ExtractMetrics(statementTable(), []string{"자산총계"})
	res := results["자산총계"]
	require.NotNil(t, res.Value)
	assert.False(t, res.Value.Substituted)
	assert.Equal(t, 455_905_980_000_000.0, res.Value.Value)
	assert.Equal(t, "조원", res.Value.Unit)
}

func TestExtractMetricsSynonymSubstitution(t *testing.T) {
	results := ExtractMetrics(statementTable(), []string{"매출액"})
	res := results["매출액"]
	require.NotNil(t, res.Value)
	assert.True(t, res.Value.Substituted)
	assert.Equal(t, "영업수익", res.Value.AccountName)
	assert.Equal(t, "매출액", res.Value.Requested)
}

func TestExtractMetricsNullAmount(t *testing.T) {
	results := ExtractMetrics(statementTable(), []string{"기본주당이익"})
	res := results["기본주당이익"]
	assert.Nil(t, res.Value)
	assert.Equal(t, "값이 없음 (NaN)", res.Err)
}

func TestExtractMetricsPartialFailure(t *testing.T) {
	// One bad metric must not abort the good ones.
	results := ExtractMetrics(statementTable(), []string{"자산총계", "없는계정", "부채총계"})
	require.Len(t, results, 3)

	assert.NotNil(t, results["자산총계"].Value)
	assert.NotNil(t, results["부채총계"].Value)
	assert.Nil(t, results["없는계정"].Value)
	assert.Contains(t, results["없는계정"].Err, "유사한 항목을 찾을 수 없음")
}
