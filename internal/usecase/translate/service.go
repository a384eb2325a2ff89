package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/shoplight/shoplight/internal/domain"
)

const instruction = "Translate this to English: "

// Service translates shopper questions to English so product retrieval
// works for catalogs embedded in English.
type Service struct {
	gen domain.Generator
}

// New creates a query translator.
func New(gen domain.Generator) *Service {
	return &Service{gen: gen}
}

// ToEnglish returns text unchanged when language is already English
// (case-insensitive, no generation call), otherwise asks the model for
// a translation.
func (s *Service) ToEnglish(ctx context.Context, text, language string) (string, error) {
	if strings.EqualFold(language, "english") {
		return text, nil
	}

	res, err := s.gen.Generate(ctx, instruction+text)
	if err != nil {
		return "", fmt.Errorf("translate question: %w", err)
	}
	return res.Text, nil
}
