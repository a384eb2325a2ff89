package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shoplight/shoplight/internal/domain"
)

// Store is a request-scoped in-memory vector store over normalized
// documents, using brute-force cosine similarity. Built once per
// request and discarded afterwards, so no locking is needed.
type Store struct {
	source    domain.SourceType
	docs      []domain.Document
	vectors   [][]float32
	dimension int
}

// Build embeds docs in one batch and returns a populated store.
// An embedding failure is fatal: a partially built store would silently
// drop content from retrieval.
func Build(ctx context.Context, embedder domain.Embedder, source domain.SourceType, docs []domain.Document) (*Store, error) {
	s := &Store{source: source}
	if len(docs) == 0 {
		return s, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	res, err := domain.BatchEmbed(ctx, embedder, texts)
	if err != nil {
		return nil, fmt.Errorf("build %s store: %w", source, err)
	}
	if len(res.Embeddings) != len(docs) {
		return nil, fmt.Errorf("build %s store: %d vectors for %d documents", source, len(res.Embeddings), len(docs))
	}

	s.docs = docs
	s.vectors = res.Embeddings
	if len(res.Embeddings) > 0 {
		s.dimension = len(res.Embeddings[0])
	}
	return s, nil
}

// Source returns the content source this store was built from.
func (s *Store) Source() domain.SourceType {
	return s.source
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	return len(s.docs)
}

// SimilaritySearch returns the texts of the top-k most similar documents.
func (s *Store) SimilaritySearch(ctx context.Context, embedder domain.Embedder, query string, k int) ([]string, error) {
	hits, err := s.SimilaritySearchWithScore(ctx, embedder, query, k)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Document.Text
	}
	return texts, nil
}

// SimilaritySearchWithScore returns the top-k documents with cosine
// similarity scores, ordered by descending score. An empty store
// returns an empty slice without calling the embedder.
func (s *Store) SimilaritySearchWithScore(ctx context.Context, embedder domain.Embedder, query string, k int) ([]domain.SimilarityHit, error) {
	if len(s.docs) == 0 || k <= 0 {
		return []domain.SimilarityHit{}, nil
	}

	res, err := embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits := make([]domain.SimilarityHit, len(s.docs))
	for i := range s.docs {
		hits[i] = domain.SimilarityHit{
			Document: s.docs[i],
			Score:    cosineSimilarity(s.vectors[i], res.Embedding),
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
