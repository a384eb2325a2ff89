package answer

import (
	"testing"

	"github.com/shoplight/shoplight/internal/domain"
)

func hit(text string, score float64) domain.SimilarityHit {
	return domain.SimilarityHit{
		Document: domain.Document{Text: text, Source: domain.SourceProduct},
		Score:    score,
	}
}

func TestMergeHits_ThresholdInclusive(t *testing.T) {
	texts := mergeHits(
		[]domain.SimilarityHit{hit("at threshold", 0.73), hit("below", 0.7299)},
		nil, 0.73)

	if len(texts) != 1 {
		t.Fatalf("expected 1 text, got %d: %v", len(texts), texts)
	}
	if texts[0] != "at threshold" {
		t.Errorf("got %q", texts[0])
	}
}

func TestMergeHits_DedupesByText(t *testing.T) {
	texts := mergeHits(
		[]domain.SimilarityHit{hit("same doc", 0.80), hit("other", 0.75)},
		[]domain.SimilarityHit{hit("same doc", 0.95)},
		0.73)

	if len(texts) != 2 {
		t.Fatalf("expected 2 texts, got %d: %v", len(texts), texts)
	}
	// Highest score first: the 0.95 duplicate wins the position.
	if texts[0] != "same doc" || texts[1] != "other" {
		t.Errorf("got %v", texts)
	}
}

func TestMergeHits_SortedByScoreDesc(t *testing.T) {
	texts := mergeHits(
		[]domain.SimilarityHit{hit("low", 0.74), hit("high", 0.90)},
		[]domain.SimilarityHit{hit("mid", 0.80)},
		0.73)

	want := []string{"high", "mid", "low"}
	for i, w := range want {
		if texts[i] != w {
			t.Fatalf("got %v, want %v", texts, want)
		}
	}
}

func TestMergeHits_Empty(t *testing.T) {
	if texts := mergeHits(nil, nil, 0.73); len(texts) != 0 {
		t.Errorf("expected no texts, got %v", texts)
	}
}

func TestExtractProduct_FullDocument(t *testing.T) {
	doc := "This is a Red Hoodie. Its description is Warm hoodie and its vendor is Acme and its product_type is hoodies. This product has these tags: sale.\n" +
		"This product is available in these variants:\n(Size: M, price: 39.99, weight: 500)\n" +
		"Image:\nhttps://x/img.png\n"

	p := extractProduct(doc)

	if p.Name != "Red Hoodie" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Description != "Warm hoodie" {
		t.Errorf("Description = %q", p.Description)
	}
	if !p.Price.Known || p.Price.Value != 39.99 {
		t.Errorf("Price = %+v", p.Price)
	}
	if p.Image == nil || *p.Image != "https://x/img.png" {
		t.Errorf("Image = %v", p.Image)
	}
}

func TestExtractProduct_Defaults(t *testing.T) {
	p := extractProduct("unrelated text with no product structure")

	if p.Name != "Unknown Product" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Description != "No description available" {
		t.Errorf("Description = %q", p.Description)
	}
	if p.Price.Known {
		t.Errorf("Price should be unknown, got %+v", p.Price)
	}
	if p.Image != nil {
		t.Errorf("Image should be nil, got %q", *p.Image)
	}
}

func TestExtractProduct_NoImagePlaceholder(t *testing.T) {
	doc := "This is a Plain Tee. Its description is No description available and its vendor is Acme and its product_type is . This product has these tags: .\n" +
		"This product is available in these variants:\nNo variants available." +
		"Image:\nNo image available."

	p := extractProduct(doc)

	if p.Name != "Plain Tee" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Image != nil {
		t.Errorf("Image should be nil for placeholder, got %q", *p.Image)
	}
	if p.Price.Known {
		t.Errorf("Price should be unknown without variants, got %+v", p.Price)
	}
}

func TestExtractProduct_PriceUsesFirstVariant(t *testing.T) {
	doc := "This is a Tee. Its description is Basic and its vendor is Acme and its product_type is tees. This product has these tags: .\n" +
		"This product is available in these variants:\n(Size: S, price: 10.00, weight: 100)\n(Size: L, price: 12.00, weight: 120)\n" +
		"Image:\nNo image available."

	p := extractProduct(doc)
	if !p.Price.Known || p.Price.Value != 10.00 {
		t.Errorf("Price = %+v, want first variant 10.00", p.Price)
	}
}
