package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-filing-sentiment/internal/analyzer/config"
	"golang-filing-sentiment/internal/entity"
	"golang-filing-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAtomFeed = `<?xml version="1.0" encoding="ISO-8859-1" ?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ACME CORP - 10-K filings</title>
  <updated>2024-02-02T12:00:00-05:00</updated>
  <entry>
    <title>10-K - Annual report</title>
    <link rel="alternate" type="text/html" href="https://www.sec.gov/cgi-bin/browse-edgar?action=getcompany"/>
    <id>urn:tag:sec.gov,2008:accession-number=0000000123-24-000001</id>
    <updated>2024-02-01T16:30:00-05:00</updated>
  </entry>
  <entry>
    <title>10-K - Annual report</title>
    <id>urn:tag:sec.gov,2008:accession-number=0000000123-23-000009</id>
    <updated>2023-02-03T16:30:00-05:00</updated>
  </entry>
</feed>`

func newEdgarTestServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Path)
		if r.Header.Get("User-Agent") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch {
		case r.URL.Path == "/files/company_tickers.json":
			fmt.Fprint(w, `{"0":{"cik_str":123,"ticker":"ACME","title":"Acme Corp"},"1":{"cik_str":456,"ticker":"OTHR","title":"Other Inc"}}`)
		case r.URL.Path == "/cgi-bin/browse-edgar":
			fmt.Fprint(w, testAtomFeed)
		case r.URL.Path == "/Archives/edgar/data/123/000000012324000001/0000000123-24-000001.txt":
			fmt.Fprint(w, "FULL SUBMISSION TEXT")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func newTestEdgarRepository(t *testing.T, baseURL string) EdgarRepository {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	cfg := &config.Config{
		Edgar: config.Edgar{
			BaseURL:             baseURL,
			UserAgent:           "filing-sentiment test@example.com",
			MaxRequestPerSecond: 100,
		},
	}
	repo, err := NewEdgarRepository(cfg, log)
	require.NoError(t, err)
	return repo
}

func TestNewEdgarRepository_RequiresUserAgent(t *testing.T) {
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	_, err = NewEdgarRepository(&config.Config{}, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user agent")
}

func TestEdgarRepository_GetRecentFilings(t *testing.T) {
	server, _ := newEdgarTestServer(t)
	repo := newTestEdgarRepository(t, server.URL)

	refs, err := repo.GetRecentFilings(context.Background(), "acme", entity.DocumentTypeAnnual, 10)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.Equal(t, "acme", refs[0].Ticker)
	assert.Equal(t, "0000000123", refs[0].CIK)
	assert.Equal(t, entity.DocumentTypeAnnual, refs[0].DocumentType)
	assert.Equal(t, "0000000123-24-000001", refs[0].AccessionNumber)
	assert.Equal(t, 2024, refs[0].FiledAt.Year())
	assert.Equal(t, "0000000123-23-000009", refs[1].AccessionNumber)
}

func TestEdgarRepository_GetRecentFilings_Limit(t *testing.T) {
	server, _ := newEdgarTestServer(t)
	repo := newTestEdgarRepository(t, server.URL)

	refs, err := repo.GetRecentFilings(context.Background(), "ACME", entity.DocumentTypeAnnual, 1)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "0000000123-24-000001", refs[0].AccessionNumber)
}

func TestEdgarRepository_GetRecentFilings_UnknownTicker(t *testing.T) {
	server, _ := newEdgarTestServer(t)
	repo := newTestEdgarRepository(t, server.URL)

	_, err := repo.GetRecentFilings(context.Background(), "NOPE", entity.DocumentTypeAnnual, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in EDGAR company index")
}

func TestEdgarRepository_CachesCompanyIndex(t *testing.T) {
	server, requests := newEdgarTestServer(t)
	repo := newTestEdgarRepository(t, server.URL)

	_, err := repo.GetRecentFilings(context.Background(), "ACME", entity.DocumentTypeAnnual, 1)
	require.NoError(t, err)
	_, err = repo.GetRecentFilings(context.Background(), "OTHR", entity.DocumentTypeAnnual, 1)
	require.NoError(t, err)

	indexFetches := 0
	for _, path := range *requests {
		if path == "/files/company_tickers.json" {
			indexFetches++
		}
	}
	assert.Equal(t, 1, indexFetches)
}

func TestEdgarRepository_DownloadFiling(t *testing.T) {
	server, _ := newEdgarTestServer(t)
	repo := newTestEdgarRepository(t, server.URL)

	refs, err := repo.GetRecentFilings(context.Background(), "ACME", entity.DocumentTypeAnnual, 1)
	require.NoError(t, err)
	require.Len(t, refs, 1)

	raw, err := repo.DownloadFiling(context.Background(), refs[0])
	require.NoError(t, err)
	assert.Equal(t, "FULL SUBMISSION TEXT", raw)
}
