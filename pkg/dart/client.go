package dart

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBaseURL is the public OpenDART endpoint.
const DefaultBaseURL = "https://opendart.fss.or.kr/api"

// Report codes accepted by the disclosure API.
const (
	ReportAnnual  = "11011" // 사업보고서
	ReportHalf    = "11012" // 반기보고서
	ReportQ1      = "11013" // 1분기보고서
	ReportQ3      = "11014" // 3분기보고서
)

// ReportCode maps a human-friendly period name to its OpenDART report code.
// Unknown values fall back to the annual report.
func ReportCode(period string) string {
	switch period {
	case "half":
		return ReportHalf
	case "q1":
		return ReportQ1
	case "quarter", "q3":
		return ReportQ3
	default:
		return ReportAnnual
	}
}

// Client wraps the OpenDART HTTP API. All calls are blocking and carry the
// caller's context; a non-2xx status or malformed payload is a hard
// failure for that call.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client with the public endpoint and the given
// per-request timeout.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithBaseURL is NewClient with an overridden endpoint, used by
// tests against a local httptest server.
func NewClientWithBaseURL(apiKey, baseURL string, timeout time.Duration) *Client {
	c := NewClient(apiKey, timeout)
	c.baseURL = baseURL
	return c
}

// get issues a GET against path with the API key merged into params and
// returns the raw body.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("crtfc_key", c.apiKey)

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API 요청 중 오류 발생: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API 요청 실패: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("응답 읽기 실패: %w", err)
	}
	return body, nil
}
