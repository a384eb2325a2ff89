package answer

import (
	"context"

	"github.com/shoplight/shoplight/internal/domain"
)

// Normalizer turns request content into flat text documents per source.
type Normalizer interface {
	ProductDocuments(products []domain.Product) []domain.Document
	QADocuments(pairs []domain.QAPair) []domain.Document
	FileDocuments(ctx context.Context, sources []domain.FileSource) []domain.Document
	LinkDocuments(ctx context.Context, sources []domain.LinkSource) []domain.Document
}

// Translator converts the shopper's question to English for the second
// product search pass.
type Translator interface {
	ToEnglish(ctx context.Context, text, language string) (string, error)
}
