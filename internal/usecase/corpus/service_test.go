package corpus

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/shoplight/shoplight/internal/domain"
)

type mockFetcher struct {
	fetchFn func(ctx context.Context, src domain.FileSource) (string, error)
}

func (m *mockFetcher) FetchText(ctx context.Context, src domain.FileSource) (string, error) {
	return m.fetchFn(ctx, src)
}

type mockScraper struct {
	scrapeFn func(ctx context.Context, url string) (string, error)
}

func (m *mockScraper) Scrape(ctx context.Context, url string) (string, error) {
	return m.scrapeFn(ctx, url)
}

func newTestService(fetcher *mockFetcher, scraper *mockScraper) *Service {
	return New(fetcher, scraper, zap.NewNop())
}

func TestProductDocuments_FullProduct(t *testing.T) {
	s := newTestService(nil, nil)

	docs := s.ProductDocuments([]domain.Product{{
		Title:       "Red Hoodie",
		BodyHTML:    "Warm hoodie",
		Vendor:      "Acme",
		ProductType: "hoodies",
		Tags:        []string{"sale", "winter"},
		Options:     []domain.Option{{Name: "Size"}},
		Variants:    []domain.Variant{{Option1: "M", Price: "39.99", Grams: 500}},
		Image:       &domain.Image{Src: "https://x/img.png"},
	}})

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	text := docs[0].Text

	wantParts := []string{
		"This is a Red Hoodie.",
		"Its description is Warm hoodie and its vendor is Acme and its product_type is hoodies.",
		"This product has these tags: sale,winter.",
		"This product is available in these variants:\n(Size: M, price: 39.99, weight: 500)\n",
		"Image:\nhttps://x/img.png\n",
	}
	for _, part := range wantParts {
		if !strings.Contains(text, part) {
			t.Errorf("document missing %q:\n%s", part, text)
		}
	}
	if docs[0].Source != domain.SourceProduct {
		t.Errorf("source = %q", docs[0].Source)
	}
}

func TestProductDocuments_Placeholders(t *testing.T) {
	s := newTestService(nil, nil)

	docs := s.ProductDocuments([]domain.Product{{
		Title:  "Plain Tee",
		Vendor: "Acme",
	}})

	text := docs[0].Text
	for _, part := range []string{
		"Its description is No description available and",
		"This product is available in these variants:\nNo variants available.",
		"Image:\nNo image available.",
	} {
		if !strings.Contains(text, part) {
			t.Errorf("document missing %q:\n%s", part, text)
		}
	}
}

func TestProductDocuments_Deterministic(t *testing.T) {
	s := newTestService(nil, nil)

	products := []domain.Product{
		{Title: "A", Vendor: "v"},
		{Title: "B", Vendor: "v"},
	}

	first := s.ProductDocuments(products)
	second := s.ProductDocuments(products)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 documents each run")
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Errorf("run differs at %d", i)
		}
	}
}

func TestQADocuments(t *testing.T) {
	s := newTestService(nil, nil)

	docs := s.QADocuments([]domain.QAPair{
		{Question: "Do you ship to EU?", Answer: "Yes, within 5 days."},
	})

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	want := "Question: Do you ship to EU?\nAnswer: Yes, within 5 days."
	if docs[0].Text != want {
		t.Errorf("got %q, want %q", docs[0].Text, want)
	}
	if docs[0].Source != domain.SourceQA {
		t.Errorf("source = %q", docs[0].Source)
	}
}

func TestFileDocuments_FailureExcluded(t *testing.T) {
	fetcher := &mockFetcher{fetchFn: func(_ context.Context, src domain.FileSource) (string, error) {
		if src.URL == "https://files/bad.pdf" {
			return "", errors.New("fetch failed")
		}
		return "content of " + src.URL, nil
	}}
	s := newTestService(fetcher, nil)

	docs := s.FileDocuments(context.Background(), []domain.FileSource{
		{URL: "https://files/a.txt", Type: "txt"},
		{URL: "https://files/bad.pdf", Type: "pdf"},
		{URL: "https://files/b.txt", Type: "txt"},
	})

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	// Order of surviving items preserved.
	if !strings.HasPrefix(docs[0].Text, "File ID: https://files/a.txt\nContent: ") {
		t.Errorf("unexpected first document: %q", docs[0].Text)
	}
	if !strings.HasPrefix(docs[1].Text, "File ID: https://files/b.txt\nContent: ") {
		t.Errorf("unexpected second document: %q", docs[1].Text)
	}
}

func TestLinkDocuments(t *testing.T) {
	scraper := &mockScraper{scrapeFn: func(_ context.Context, url string) (string, error) {
		return `{"titles":["Acme"],"paragraphs":[]}`, nil
	}}
	s := newTestService(nil, scraper)

	docs := s.LinkDocuments(context.Background(), []domain.LinkSource{
		{URL: "https://acme.example"},
	})

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	want := "URL: https://acme.example\nContent: {\"titles\":[\"Acme\"],\"paragraphs\":[]}"
	if docs[0].Text != want {
		t.Errorf("got %q, want %q", docs[0].Text, want)
	}
	if docs[0].Source != domain.SourceLink {
		t.Errorf("source = %q", docs[0].Source)
	}
}

func TestLinkDocuments_AllFail(t *testing.T) {
	scraper := &mockScraper{scrapeFn: func(_ context.Context, _ string) (string, error) {
		return "", errors.New("down")
	}}
	s := newTestService(nil, scraper)

	docs := s.LinkDocuments(context.Background(), []domain.LinkSource{
		{URL: "https://a"}, {URL: "https://b"},
	})

	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}
