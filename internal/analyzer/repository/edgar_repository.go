package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang-filing-sentiment/internal/analyzer/config"
	"golang-filing-sentiment/internal/analyzer/dto"
	"golang-filing-sentiment/internal/entity"
	"golang-filing-sentiment/pkg/logger"
	"golang-filing-sentiment/pkg/utils"

	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const cikCacheKey = "edgar:cik-map"

var accessionNumberPattern = regexp.MustCompile(`accession-number=([\d-]+)`)

// edgarRepository talks to SEC EDGAR: the company ticker index, the
// per-company Atom filing feed, and the document archive.
type edgarRepository struct {
	cfg        *config.Config
	logger     *logger.Logger
	client     *http.Client
	feedParser *gofeed.Parser
	limiter    *rate.Limiter
	cikCache   *cache.Cache
}

// NewEdgarRepository creates a new EDGAR repository.
func NewEdgarRepository(cfg *config.Config, log *logger.Logger) (EdgarRepository, error) {
	if cfg.Edgar.UserAgent == "" {
		return nil, fmt.Errorf("edgar user agent is required")
	}

	cacheTTL := 24 * time.Hour
	if cfg.Edgar.CIKCacheTTL != "" {
		parsed, err := time.ParseDuration(cfg.Edgar.CIKCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid cik cache ttl: %w", err)
		}
		cacheTTL = parsed
	}

	maxRPS := cfg.Edgar.MaxRequestPerSecond
	if maxRPS <= 0 {
		maxRPS = 5
	}

	return &edgarRepository{
		cfg:    cfg,
		logger: log,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		feedParser: gofeed.NewParser(),
		limiter:    rate.NewLimiter(rate.Limit(maxRPS), 1),
		cikCache:   cache.New(cacheTTL, 2*cacheTTL),
	}, nil
}

// GetRecentFilings lists the most recent filings of the given form type for a
// ticker, newest first as EDGAR serves them.
func (r *edgarRepository) GetRecentFilings(ctx context.Context, ticker string, docType entity.DocumentType, limit int) ([]dto.FilingRef, error) {
	cik, err := r.resolveCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}

	feedURL := fmt.Sprintf(
		"%s/cgi-bin/browse-edgar?action=getcompany&CIK=%s&type=%s&dateb=&owner=include&count=%d&output=atom",
		r.cfg.Edgar.BaseURL, cik, url.QueryEscape(string(docType)), limit,
	)

	body, err := r.get(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filing feed for %s: %w", ticker, err)
	}
	defer body.Close()

	feed, err := r.feedParser.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse filing feed for %s: %w", ticker, err)
	}

	refs := make([]dto.FilingRef, 0, len(feed.Items))
	for _, item := range feed.Items {
		accession := extractAccessionNumber(item)
		if accession == "" {
			r.logger.Warn("Skipping feed entry without accession number",
				logger.StringField("ticker", ticker),
				logger.StringField("entry", item.Title),
			)
			continue
		}

		filedAt := time.Now().UTC()
		if item.UpdatedParsed != nil {
			filedAt = item.UpdatedParsed.UTC()
		} else if item.PublishedParsed != nil {
			filedAt = item.PublishedParsed.UTC()
		}

		refs = append(refs, dto.FilingRef{
			Ticker:          ticker,
			CIK:             cik,
			DocumentType:    docType,
			AccessionNumber: accession,
			FiledAt:         filedAt,
		})
		if len(refs) >= limit {
			break
		}
	}

	return refs, nil
}

// DownloadFiling fetches the complete submission text file for a filing.
func (r *edgarRepository) DownloadFiling(ctx context.Context, ref dto.FilingRef) (string, error) {
	docURL := fmt.Sprintf(
		"%s/Archives/edgar/data/%s/%s/%s.txt",
		r.cfg.Edgar.BaseURL,
		strings.TrimLeft(ref.CIK, "0"),
		strings.ReplaceAll(ref.AccessionNumber, "-", ""),
		ref.AccessionNumber,
	)

	body, err := r.get(ctx, docURL)
	if err != nil {
		return "", fmt.Errorf("failed to download filing %s: %w", ref.AccessionNumber, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read filing %s: %w", ref.AccessionNumber, err)
	}

	// Older submissions occasionally carry invalid byte sequences.
	return utils.CleanToValidUTF8(string(raw)), nil
}

// resolveCIK maps a ticker symbol to its zero-padded CIK using the EDGAR
// company ticker index. The full index is cached since it changes rarely.
func (r *edgarRepository) resolveCIK(ctx context.Context, ticker string) (string, error) {
	upperTicker := strings.ToUpper(ticker)

	if cached, found := r.cikCache.Get(cikCacheKey); found {
		if cik, ok := cached.(map[string]string)[upperTicker]; ok {
			return cik, nil
		}
		return "", fmt.Errorf("ticker %s not found in EDGAR company index", ticker)
	}

	body, err := r.get(ctx, r.cfg.Edgar.BaseURL+"/files/company_tickers.json")
	if err != nil {
		return "", fmt.Errorf("failed to fetch company ticker index: %w", err)
	}
	defer body.Close()

	var index map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.NewDecoder(body).Decode(&index); err != nil {
		return "", fmt.Errorf("failed to decode company ticker index: %w", err)
	}

	cikByTicker := make(map[string]string, len(index))
	for _, company := range index {
		cikByTicker[strings.ToUpper(company.Ticker)] = fmt.Sprintf("%010d", company.CIK)
	}
	r.cikCache.Set(cikCacheKey, cikByTicker, cache.DefaultExpiration)

	cik, ok := cikByTicker[upperTicker]
	if !ok {
		return "", fmt.Errorf("ticker %s not found in EDGAR company index", ticker)
	}
	return cik, nil
}

func (r *edgarRepository) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", r.cfg.Edgar.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("received non-OK response from EDGAR: %d - %s", resp.StatusCode, string(snippet))
	}
	return resp.Body, nil
}

func extractAccessionNumber(item *gofeed.Item) string {
	for _, candidate := range []string{item.GUID, item.Link} {
		if match := accessionNumberPattern.FindStringSubmatch(candidate); len(match) == 2 {
			return match[1]
		}
	}
	return ""
}
