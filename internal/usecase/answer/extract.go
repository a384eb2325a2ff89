package answer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shoplight/shoplight/internal/domain"
)

// Extraction patterns match the normalizer's document phrasing after
// newline stripping.
var (
	nameRe        = regexp.MustCompile(`This is a (.+?)\.`)
	descriptionRe = regexp.MustCompile(`Its description is (.+?) and`)
	priceRe       = regexp.MustCompile(`price: ([0-9.]+),`)
	imageRe       = regexp.MustCompile(`Image:(https://\S+)`)
)

// mergeHits combines the original-query and translated-query product
// hits: stable-sorted by descending score, threshold-filtered
// (inclusive), deduplicated by exact document text with the
// highest-scored occurrence winning. Returns the surviving texts.
func mergeHits(original, translated []domain.SimilarityHit, threshold float64) []string {
	combined := make([]domain.SimilarityHit, 0, len(original)+len(translated))
	combined = append(combined, original...)
	combined = append(combined, translated...)

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Score > combined[j].Score
	})

	seen := make(map[string]bool, len(combined))
	texts := make([]string, 0, len(combined))
	for _, h := range combined {
		if h.Score < threshold {
			continue
		}
		if seen[h.Document.Text] {
			continue
		}
		seen[h.Document.Text] = true
		texts = append(texts, h.Document.Text)
	}
	return texts
}

// extractProduct recovers structured fields from a normalized product
// document. Never fails: unmatched fields carry documented defaults.
func extractProduct(text string) domain.ExtractedProduct {
	flat := strings.ReplaceAll(text, "\n", "")

	p := domain.ExtractedProduct{
		Name:        "Unknown Product",
		Description: "No description available",
	}

	if m := nameRe.FindStringSubmatch(flat); m != nil {
		p.Name = m[1]
	}
	if m := descriptionRe.FindStringSubmatch(flat); m != nil {
		p.Description = m[1]
	}
	if m := priceRe.FindStringSubmatch(flat); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.Price = domain.KnownPrice(v)
		}
	}
	if m := imageRe.FindStringSubmatch(flat); m != nil {
		src := m[1]
		p.Image = &src
	}

	return p
}
