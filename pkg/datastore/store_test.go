package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v float64) *float64 { return &v }

func sampleTable(name string) *Table {
	return &Table{
		Name: name,
		Rows: []Row{
			{AccountName: "자산총계", StatementDiv: DivBalanceSheet, CurrentAmount: amount(1e12)},
			{AccountName: "매출액", StatementDiv: DivIncomeStatement, CurrentAmount: amount(5e11)},
		},
	}
}

func TestStoreAddGet(t *testing.T) {
	s := NewStore()
	tbl := sampleTable("samsung_fs_2023_consolidated")
	s.Add("samsung_fs_2023_consolidated", tbl)

	got, err := s.Get("samsung_fs_2023_consolidated")
	require.NoError(t, err)
	assert.Same(t, tbl, got)
	assert.True(t, s.Has("samsung_fs_2023_consolidated"))
}

func TestStoreGetMissing(t *testing.T) {
	s := NewStore()
	_, err := s.Get("nope")
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.Key)
}

func TestStoreOverwriteKeepsSingleKey(t *testing.T) {
	s := NewStore()
	s.Add("k", sampleTable("first"))
	s.Add("k", sampleTable("second"))

	assert.Equal(t, []string{"k"}, s.Keys())
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)
}

func TestStoreKeysInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Add("b", sampleTable("b"))
	s.Add("a", sampleTable("a"))
	s.Add("c", sampleTable("c"))

	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())
	assert.Equal(t, 3, s.Len())
}

func TestTableShapeAndAccounts(t *testing.T) {
	tbl := sampleTable("t")
	tbl.Rows = append(tbl.Rows, Row{AccountName: "자산총계"}) // duplicate

	rows, cols := tbl.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, len(tbl.Columns()), cols)
	assert.Equal(t, []string{"자산총계", "매출액"}, tbl.AccountNames())
	assert.Len(t, tbl.Head(2), 2)
	assert.Len(t, tbl.Head(10), 3)
	assert.Len(t, tbl.FilterDiv(DivBalanceSheet), 1)
}
