package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dartagent/pkg/datastore"
)

func amount(v float64) *float64 { return &v }

func statementTable() *datastore.Table {
	return &datastore.Table{
		Name: "samsung_fs_2023_consolidated",
		Rows: []datastore.Row{
			{AccountName: "자산총계", StatementDiv: "BS", CurrentAmount: amount(455_905_980_000_000), PriorAmount: amount(448_424_507_000_000)},
			{AccountName: "부채총계", StatementDiv: "BS", CurrentAmount: amount(92_228_115_000_000)},
			{AccountName: "영업수익", StatementDiv: "IS", CurrentAmount: amount(258_935_494_000_000)},
			{AccountName: "영업이익(손실)", StatementDiv: "IS", CurrentAmount: amount(6_566_976_000_000)},
			{AccountName: "기본주당이익", StatementDiv: "IS", CurrentAmount: nil},
		},
	}
}

func TestResolveExactSubstring(t *testing.T) {
	res, ok := ResolveAccountName(statementTable(), "자산총계")
	require.True(t, ok)
	assert.Equal(t, "자산총계", res.Resolved)
	assert.False(t, res.Substituted())
}

func TestResolveSynonymSibling(t *testing.T) {
	// 매출액 is absent but its synonym 영업수익 is present.
	res, ok := ResolveAccountName(statementTable(), "매출액")
	require.True(t, ok)
	assert.Equal(t, "영업수익", res.Resolved)
	assert.Equal(t, "매출액", res.Requested)
	assert.True(t, res.Substituted())
}

func TestResolveFuzzyContainment(t *testing.T) {
	// 주당이익 appears inside 기본주당이익, so the substring pass already hits.
	res, ok := ResolveAccountName(statementTable(), "주당이익")
	require.True(t, ok)
	assert.Equal(t, "주당이익", res.Resolved)
	assert.False(t, res.Substituted())
}

func TestResolveReverseContainment(t *testing.T) {
	// Requested name longer than the stored one: only pass 3 can match.
	tbl := &datastore.Table{Rows: []datastore.Row{
		{AccountName: "매출", CurrentAmount: amount(1)},
	}}
	res, ok := ResolveAccountName(tbl, "매출액합계")
	require.True(t, ok)
	assert.Equal(t, "매출", res.Resolved)
	assert.True(t, res.Substituted())
}

func TestResolveFirstHitInTableOrder(t *testing.T) {
	// Two rows match 부채: the greedy scan must take the first in table order.
	tbl := &datastore.Table{Rows: []datastore.Row{
		{AccountName: "유동부채", CurrentAmount: amount(1)},
		{AccountName: "비유동부채", CurrentAmount: amount(2)},
	}}
	res, ok := ResolveAccountName(tbl, "부채")
	require.True(t, ok)
	row, found := firstMatchingRow(tbl, res.Resolved)
	require.True(t, found)
	assert.Equal(t, "유동부채", row.AccountName)
}

func TestResolveMiss(t *testing.T) {
	_, ok := ResolveAccountName(statementTable(), "존재하지않는계정")
	assert.False(t, ok)

	_, ok = ResolveAccountName(statementTable(), "")
	assert.False(t, ok)
}
