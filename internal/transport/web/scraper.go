package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/shoplight/shoplight/internal/domain"
)

// Scraper fetches a web page and condenses its titles and paragraphs
// into a JSON summary suitable for embedding.
type Scraper struct {
	client *http.Client
	logger *zap.Logger
}

// NewScraper creates a page scraper with a bounded request timeout.
func NewScraper(logger *zap.Logger) *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// pageContent is the JSON shape stored as link document content.
type pageContent struct {
	Titles     []string `json:"titles"`
	Paragraphs []string `json:"paragraphs"`
}

// Scrape downloads the page at url and returns its titles and paragraph
// texts serialized as JSON.
func (s *Scraper) Scrape(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, domain.ErrFetchFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d: %w", url, resp.StatusCode, domain.ErrFetchFailed)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}

	content := pageContent{
		Titles:     []string{},
		Paragraphs: []string{},
	}

	doc.Find("title, h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			content.Titles = append(content.Titles, text)
		}
	})

	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			content.Paragraphs = append(content.Paragraphs, text)
		}
	})

	data, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("marshal page content: %w", err)
	}

	return string(data), nil
}
