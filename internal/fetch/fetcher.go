// Package fetch retrieves web pages and reduces them to plain text.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/metalagman/agentflow/internal/config"
	"github.com/rs/zerolog/log"
)

// ErrUnexpectedStatus is returned for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Config configures a Fetcher.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	// Extractor is config.ExtractorParagraphs or config.ExtractorReadability.
	Extractor string
	CacheSize int
	// CacheTTL bounds how long a cached page is served; zero keeps pages
	// until they are evicted by size.
	CacheTTL time.Duration
	MaxBytes int64
}

// FromConfig converts the fetch section of the application config.
func FromConfig(cfg config.FetchConfig) Config {
	return Config{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Extractor: cfg.Extractor,
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
		MaxBytes:  cfg.MaxBytes,
	}
}

// Fetcher downloads pages and extracts their text.
type Fetcher struct {
	cfg    Config
	client *http.Client
	cache  *expirable.LRU[string, string]
}

// New creates a Fetcher. httpClient may be nil.
func New(cfg Config, httpClient *http.Client) (*Fetcher, error) {
	switch cfg.Extractor {
	case "":
		cfg.Extractor = config.ExtractorParagraphs
	case config.ExtractorParagraphs, config.ExtractorReadability:
	default:
		return nil, fmt.Errorf("unknown extractor %q", cfg.Extractor)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	f := &Fetcher{cfg: cfg, client: httpClient}
	if cfg.CacheSize > 0 {
		f.cache = expirable.NewLRU[string, string](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return f, nil
}

// Fetch issues a GET for rawURL and returns the extracted text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.cache != nil {
		if text, ok := f.cache.Get(rawURL); ok {
			log.Debug().Str("url", rawURL).Msg("page cache hit")
			return text, nil
		}
	}

	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q", pageURL.Scheme)
	}

	body, err := f.get(ctx, rawURL)
	if err != nil {
		return "", err
	}

	var text string
	switch f.cfg.Extractor {
	case config.ExtractorReadability:
		text, err = extractReadable(body, pageURL)
	default:
		text, err = extractParagraphs(body)
	}
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		f.cache.Add(rawURL, text)
	}
	return text, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch data from %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("could not fetch data from %s: %w %d", rawURL, ErrUnexpectedStatus, resp.StatusCode)
	}

	if f.cfg.MaxBytes <= 0 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
		return body, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > f.cfg.MaxBytes {
		log.Warn().Str("url", rawURL).Int64("max_bytes", f.cfg.MaxBytes).Msg("page truncated to size limit")
		body = body[:f.cfg.MaxBytes]
	}
	return body, nil
}

// extractParagraphs joins the text of every <p> element with single spaces.
func extractParagraphs(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	parts := make([]string, 0)
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return strings.Join(parts, " "), nil
}

func extractReadable(body []byte, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("parse article: %w", err)
	}
	return strings.TrimSpace(article.TextContent), nil
}
