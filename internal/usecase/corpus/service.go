package corpus

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/shoplight/shoplight/internal/domain"
)

// Service normalizes heterogeneous content sources into flat text
// documents. Document phrasing is load-bearing: the product extractor
// recovers structured fields from it with fixed patterns, so the exact
// wording and placeholders must not drift.
type Service struct {
	files  FileFetcher
	links  LinkScraper
	logger *zap.Logger
}

// New creates a content normalizer.
func New(files FileFetcher, links LinkScraper, logger *zap.Logger) *Service {
	return &Service{files: files, links: links, logger: logger}
}

// ProductDocuments renders one document per product. Pure and
// deterministic: same input, same documents, same order.
func (s *Service) ProductDocuments(products []domain.Product) []domain.Document {
	docs := make([]domain.Document, 0, len(products))
	for i := range products {
		docs = append(docs, domain.Document{
			Text:   productText(&products[i]),
			Source: domain.SourceProduct,
		})
	}
	return docs
}

func productText(p *domain.Product) string {
	description := p.BodyHTML
	if description == "" {
		description = "No description available"
	}
	tags := strings.Join(p.Tags, ",")

	var sb strings.Builder
	fmt.Fprintf(&sb,
		"This is a %s. Its description is %s and its vendor is %s and its product_type is %s. This product has these tags: %s.",
		p.Title, description, p.Vendor, p.ProductType, tags)

	sb.WriteString("\nThis product is available in these variants:\n")
	if len(p.Variants) > 0 {
		for _, v := range p.Variants {
			sb.WriteString("(")
			for i := range p.Options {
				fmt.Fprintf(&sb, "%s: %s, ", p.Options[i].Name, v.OptionValue(i+1))
			}
			fmt.Fprintf(&sb, "price: %s, weight: %d)\n", v.Price, v.Grams)
		}
	} else {
		sb.WriteString("No variants available.")
	}

	sb.WriteString("Image:\n")
	if p.Image != nil && p.Image.Src != "" {
		sb.WriteString(p.Image.Src)
		sb.WriteString("\n")
	} else {
		sb.WriteString("No image available.")
	}

	return sb.String()
}

// QADocuments renders one document per question/answer pair.
func (s *Service) QADocuments(pairs []domain.QAPair) []domain.Document {
	docs := make([]domain.Document, 0, len(pairs))
	for _, qa := range pairs {
		docs = append(docs, domain.Document{
			Text:   fmt.Sprintf("Question: %s\nAnswer: %s", qa.Question, qa.Answer),
			Source: domain.SourceQA,
		})
	}
	return docs
}

// FileDocuments fetches and normalizes uploaded files concurrently.
// A failed item is logged and excluded; the rest keep their input order.
func (s *Service) FileDocuments(ctx context.Context, sources []domain.FileSource) []domain.Document {
	docs := make([]domain.Document, len(sources))
	ok := make([]bool, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src domain.FileSource) {
			defer wg.Done()

			content, err := s.files.FetchText(ctx, src)
			if err != nil {
				s.logger.Warn("Failed to fetch file content",
					zap.String("url", src.URL), zap.Error(err))
				return
			}

			docs[i] = domain.Document{
				Text:   fmt.Sprintf("File ID: %s\nContent: %s", src.URL, content),
				Source: domain.SourceFile,
			}
			ok[i] = true
		}(i, src)
	}
	wg.Wait()

	return compact(docs, ok)
}

// LinkDocuments fetches and normalizes linked pages concurrently.
// A failed item is logged and excluded; the rest keep their input order.
func (s *Service) LinkDocuments(ctx context.Context, sources []domain.LinkSource) []domain.Document {
	docs := make([]domain.Document, len(sources))
	ok := make([]bool, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src domain.LinkSource) {
			defer wg.Done()

			content, err := s.links.Scrape(ctx, src.URL)
			if err != nil {
				s.logger.Warn("Failed to scrape link",
					zap.String("url", src.URL), zap.Error(err))
				return
			}

			docs[i] = domain.Document{
				Text:   fmt.Sprintf("URL: %s\nContent: %s", src.URL, content),
				Source: domain.SourceLink,
			}
			ok[i] = true
		}(i, src)
	}
	wg.Wait()

	return compact(docs, ok)
}

func compact(docs []domain.Document, ok []bool) []domain.Document {
	out := make([]domain.Document, 0, len(docs))
	for i := range docs {
		if ok[i] {
			out = append(out, docs[i])
		}
	}
	return out
}
