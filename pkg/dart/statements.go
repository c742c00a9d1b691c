package dart

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"dartagent/pkg/datastore"
)

// statusOK is the OpenDART success code; everything else carries a Korean
// error message in the payload.
const statusOK = "000"

// statementPayload mirrors the fnlttSinglAcntAll.json response shape.
// Amounts arrive as comma-grouped strings and must be converted.
type statementPayload struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	List    []rawRow `json:"list"`
}

type rawRow struct {
	ReceiptNo         string `json:"rcept_no"`
	CorpCode          string `json:"corp_code"`
	StatementDiv      string `json:"sj_div"`
	StatementName     string `json:"sj_nm"`
	AccountName       string `json:"account_nm"`
	BusinessYear      string `json:"bsns_year"`
	CurrentAmount     string `json:"thstrm_amount"`
	PriorAmount       string `json:"frmtrm_amount"`
	BeforePriorAmount string `json:"bfefrmtrm_amount"`
	Currency          string `json:"currency"`
	Ord               string `json:"ord"`
}

// FetchStatements retrieves the full single-company financial statement
// for one fiscal year, report code, and consolidation scope (CFS/OFS),
// converted into a session table. The corp name is stamped onto every row
// because the API omits it from this endpoint.
func (c *Client) FetchStatements(ctx context.Context, corpCode, corpName, year, reportCode, fsDiv string) (*datastore.Table, error) {
	params := url.Values{}
	params.Set("corp_code", corpCode)
	params.Set("bsns_year", year)
	params.Set("reprt_code", reportCode)
	params.Set("fs_div", fsDiv)

	body, err := c.get(ctx, "fnlttSinglAcntAll.json", params)
	if err != nil {
		return nil, err
	}

	var payload statementPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("JSON 파싱 오류: %w", err)
	}
	if payload.Status != statusOK {
		return nil, fmt.Errorf("API 오류 (%s): %s", payload.Status, payload.Message)
	}
	if len(payload.List) == 0 {
		return nil, fmt.Errorf("변환할 데이터가 없습니다")
	}

	return convertPayload(&payload, corpName, year, fsDiv), nil
}

// convertPayload turns a raw API payload into a Table, normalizing the
// numeric columns.
func convertPayload(payload *statementPayload, corpName, year, fsDiv string) *datastore.Table {
	table := &datastore.Table{
		Rows: make([]datastore.Row, 0, len(payload.List)),
	}

	for _, raw := range payload.List {
		row := datastore.Row{
			ReceiptNo:         raw.ReceiptNo,
			CorpCode:          raw.CorpCode,
			CorpName:          corpName,
			StatementDiv:      raw.StatementDiv,
			StatementName:     raw.StatementName,
			AccountName:       raw.AccountName,
			FiscalYear:        firstNonEmpty(raw.BusinessYear, year),
			FSDiv:             fsDiv,
			CurrentAmount:     parseAmount(raw.CurrentAmount),
			PriorAmount:       parseAmount(raw.PriorAmount),
			BeforePriorAmount: parseAmount(raw.BeforePriorAmount),
			Currency:          raw.Currency,
		}
		if ord, err := strconv.Atoi(strings.TrimSpace(raw.Ord)); err == nil {
			row.Ord = ord
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// parseAmount converts a comma-grouped amount string to a float pointer.
// Blank and "-" entries mean "no value for this period" and map to nil.
func parseAmount(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
