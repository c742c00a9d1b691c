package dart

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
)

// Company is one entry of the DART corporate registry.
type Company struct {
	Code      string `xml:"corp_code"`
	Name      string `xml:"corp_name"`
	StockCode string `xml:"stock_code"`
}

// corpList mirrors the CORPCODE.xml document inside the registry zip.
type corpList struct {
	XMLName xml.Name  `xml:"result"`
	List    []Company `xml:"list"`
}

// FetchCorpList downloads the full corporate registry. The endpoint
// returns a zip archive containing a single CORPCODE.xml document.
func (c *Client) FetchCorpList(ctx context.Context) ([]Company, error) {
	body, err := c.get(ctx, "corpCode.xml", url.Values{})
	if err != nil {
		return nil, err
	}

	reader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("회사 목록 압축 해제 실패: %w", err)
	}

	for _, f := range reader.File {
		if !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}

		var list corpList
		if err := xml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("회사 목록 파싱 실패: %w", err)
		}
		return list.List, nil
	}

	return nil, fmt.Errorf("회사 목록 XML을 찾을 수 없습니다")
}

// CompanyRegistry resolves company names to DART corp codes. The registry
// is large (~100k entries), so it is fetched lazily on first use and then
// held in memory for the process lifetime.
type CompanyRegistry struct {
	mu        sync.Mutex
	loaded    bool
	companies []Company
	fetch     func(ctx context.Context) ([]Company, error)
}

// NewCompanyRegistry builds a registry backed by fetch, normally
// Client.FetchCorpList.
func NewCompanyRegistry(fetch func(ctx context.Context) ([]Company, error)) *CompanyRegistry {
	return &CompanyRegistry{fetch: fetch}
}

// Resolve looks name up in the registry: an exact match first, then a
// substring pass where the first hit wins. There is no interactive
// disambiguation on the automated path. found=false means the name
// matched nothing.
func (r *CompanyRegistry) Resolve(ctx context.Context, name string) (Company, bool, error) {
	companies, err := r.load(ctx)
	if err != nil {
		return Company{}, false, err
	}

	name = strings.TrimSpace(name)
	for _, c := range companies {
		if c.Name == name {
			return c, true, nil
		}
	}
	for _, c := range companies {
		if strings.Contains(c.Name, name) {
			return c, true, nil
		}
	}
	return Company{}, false, nil
}

func (r *CompanyRegistry) load(ctx context.Context) ([]Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.companies, nil
	}
	companies, err := r.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("corp_code 검색 중 오류 발생: %w", err)
	}
	r.companies = companies
	r.loaded = true
	return r.companies, nil
}
