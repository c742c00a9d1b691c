package datastore

// Row is a single financial-statement line item in the shape OpenDART
// returns it. Amount fields are pointers because the API reports blank or
// "-" for accounts that have no value in a given period.
type Row struct {
	ReceiptNo         string   `json:"rcept_no,omitempty"`
	CorpCode          string   `json:"corp_code,omitempty"`
	CorpName          string   `json:"corp_name"`
	StatementDiv      string   `json:"sj_div"` // BS, IS, CIS, CF, SCE
	StatementName     string   `json:"sj_nm,omitempty"`
	AccountName       string   `json:"account_nm"`
	FiscalYear        string   `json:"bsns_year"`
	FSDiv             string   `json:"fs_div"` // CFS (연결) or OFS (개별)
	CurrentAmount     *float64 `json:"thstrm_amount"`
	PriorAmount       *float64 `json:"frmtrm_amount"`
	BeforePriorAmount *float64 `json:"bfefrmtrm_amount,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	Ord               int      `json:"ord,omitempty"`
}

// Statement division constants.
const (
	DivBalanceSheet    = "BS"
	DivIncomeStatement = "IS"
)

// Consolidation scope constants.
const (
	ScopeConsolidated = "CFS"
	ScopeSeparate     = "OFS"
)

// Table is an ordered collection of statement rows with a fixed column
// schema, the unit of storage in the session store.
type Table struct {
	Name string
	Rows []Row
}

// columns lists the named columns every table carries, in display order.
var columns = []string{
	"corp_name", "bsns_year", "fs_div", "sj_div", "sj_nm",
	"account_nm", "thstrm_amount", "frmtrm_amount", "bfefrmtrm_amount",
}

// Columns returns the column names of the table schema.
func (t *Table) Columns() []string {
	cp := make([]string, len(columns))
	copy(cp, columns)
	return cp
}

// Shape returns the row and column counts.
func (t *Table) Shape() (rows, cols int) {
	return len(t.Rows), len(columns)
}

// Head returns up to n leading rows.
func (t *Table) Head(n int) []Row {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// AccountNames returns the distinct account names in table order.
func (t *Table) AccountNames() []string {
	seen := make(map[string]struct{}, len(t.Rows))
	var names []string
	for _, r := range t.Rows {
		if r.AccountName == "" {
			continue
		}
		if _, ok := seen[r.AccountName]; ok {
			continue
		}
		seen[r.AccountName] = struct{}{}
		names = append(names, r.AccountName)
	}
	return names
}

// FilterDiv returns the rows belonging to one statement division (e.g. BS).
func (t *Table) FilterDiv(div string) []Row {
	var rows []Row
	for _, r := range t.Rows {
		if r.StatementDiv == div {
			rows = append(rows, r)
		}
	}
	return rows
}
