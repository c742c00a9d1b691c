package analysis

import (
	"fmt"
	"sort"
	"strings"

	"dartagent/pkg/datastore"
)

// DescribeTable renders a structural summary of a stored table: shape,
// columns, the top accounts by current-period amount, and the leading rows.
// The output is fed back to the analysis model, so it stays plain text.
func DescribeTable(key string, table *datastore.Table) string {
	rows, cols := table.Shape()

	var b strings.Builder
	fmt.Fprintf(&b, "=== DataFrame: %s ===\n", key)
	fmt.Fprintf(&b, "Shape: (%d, %d) (행: %d, 열: %d)\n", rows, cols, rows, cols)
	fmt.Fprintf(&b, "\nColumns (%d개):\n%s\n", cols, strings.Join(table.Columns(), ", "))

	if top := topAccounts(table, 10); len(top) > 0 {
		b.WriteString("\n주요 계정 항목 (상위 10개):\n")
		for _, r := range top {
			formatted, _ := FormatAmount(*r.CurrentAmount)
			fmt.Fprintf(&b, "  - %s: %s\n", r.AccountName, formatted)
		}
	}

	b.WriteString("\n상위 5개 행:\n")
	for _, r := range table.Head(5) {
		fmt.Fprintf(&b, "  [%s/%s] %s: %s\n", r.StatementDiv, r.FiscalYear, r.AccountName, amountOrDash(r.CurrentAmount))
	}

	return b.String()
}

// topAccounts returns up to n rows with non-null current amounts, sorted
// descending by amount.
func topAccounts(table *datastore.Table, n int) []datastore.Row {
	var rows []datastore.Row
	for _, r := range table.Rows {
		if r.CurrentAmount != nil {
			rows = append(rows, r)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return *rows[i].CurrentAmount > *rows[j].CurrentAmount
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func amountOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return groupDigits(*v, 0)
}
