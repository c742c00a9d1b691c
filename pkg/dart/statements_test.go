package dart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"status": "000",
	"message": "정상",
	"list": [
		{"rcept_no": "20240312000736", "corp_code": "00126380", "sj_div": "BS", "sj_nm": "재무상태표",
		 "account_nm": "자산총계", "bsns_year": "2023", "thstrm_amount": "455,905,980,000,000",
		 "frmtrm_amount": "448,424,507,000,000", "currency": "KRW", "ord": "21"},
		{"rcept_no": "20240312000736", "corp_code": "00126380", "sj_div": "IS", "sj_nm": "손익계산서",
		 "account_nm": "기본주당이익", "bsns_year": "2023", "thstrm_amount": "-",
		 "frmtrm_amount": "", "currency": "KRW", "ord": "30"}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL("test-key", srv.URL, 5*time.Second)
}

func TestFetchStatements(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fnlttSinglAcntAll.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("crtfc_key"))
		assert.Equal(t, "00126380", r.URL.Query().Get("corp_code"))
		assert.Equal(t, "CFS", r.URL.Query().Get("fs_div"))
		w.Write([]byte(samplePayload))
	})

	table, err := c.FetchStatements(context.Background(), "00126380", "삼성전자", "2023", ReportAnnual, "CFS")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	first := table.Rows[0]
	assert.Equal(t, "자산총계", first.AccountName)
	assert.Equal(t, "삼성전자", first.CorpName)
	assert.Equal(t, "CFS", first.FSDiv)
	require.NotNil(t, first.CurrentAmount)
	assert.Equal(t, 455_905_980_000_000.0, *first.CurrentAmount)
	assert.Equal(t, 21, first.Ord)

	// "-" and blank amounts become nil, not zero.
	second := table.Rows[1]
	assert.Nil(t, second.CurrentAmount)
	assert.Nil(t, second.PriorAmount)
}

func TestFetchStatementsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"013","message":"조회된 데이타가 없습니다."}`))
	})

	_, err := c.FetchStatements(context.Background(), "00000000", "없는회사", "2023", ReportAnnual, "CFS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "013")
}

func TestFetchStatementsMalformedPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "000", "list": `))
	})

	_, err := c.FetchStatements(context.Background(), "00126380", "삼성전자", "2023", ReportAnnual, "CFS")
	require.Error(t, err)
}

func TestFetchStatementsHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.FetchStatements(context.Background(), "00126380", "삼성전자", "2023", ReportAnnual, "CFS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestReportCode(t *testing.T) {
	assert.Equal(t, ReportAnnual, ReportCode("annual"))
	assert.Equal(t, ReportHalf, ReportCode("half"))
	assert.Equal(t, ReportQ1, ReportCode("q1"))
	assert.Equal(t, ReportQ3, ReportCode("quarter"))
	assert.Equal(t, ReportAnnual, ReportCode("whatever"))
}
