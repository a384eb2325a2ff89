package domain

// KeyPrefix namespaces every Redis key owned by this service.
const KeyPrefix = "shoplight:"

// SourceType identifies which content source a document was normalized from.
type SourceType string

const (
	// SourceProduct is a catalog product record.
	SourceProduct SourceType = "product"
	// SourceFile is an uploaded file (PDF or plain text).
	SourceFile SourceType = "file"
	// SourceLink is a linked web page.
	SourceLink SourceType = "link"
	// SourceQA is a question/answer pair.
	SourceQA SourceType = "qa"
)

// Document is a flat text document produced by the content normalizer.
// Immutable once embedded; scoped to a single request.
type Document struct {
	Text     string
	Source   SourceType
	Metadata map[string]string
}

// SimilarityHit pairs a document with its similarity score.
// Scores are cosine similarities, consistent across original-language and
// translated-language queries so they can be merged and threshold-filtered
// together.
type SimilarityHit struct {
	Document Document
	Score    float64
}
