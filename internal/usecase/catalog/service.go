package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shoplight/shoplight/internal/domain"
)

// queryTopK hits are returned per semantic catalog query.
const queryTopK = 3

// Service manages the durable product index: ingest, semantic query,
// partial update and delete, namespaced by (platform, vendor).
type Service struct {
	repo     Repository
	embedder domain.Embedder
	logger   *zap.Logger
}

// New creates a catalog service.
func New(repo Repository, embedder domain.Embedder, logger *zap.Logger) *Service {
	return &Service{repo: repo, embedder: embedder, logger: logger}
}

// recordText is the content that gets embedded for a record: the
// description, falling back to the title for records without one.
func recordText(rec *domain.IndexRecord) string {
	if rec.Description != "" {
		return rec.Description
	}
	return rec.Title
}

// Insert embeds and stores records, creating the platform index on
// first use. Batch embedding keeps record order.
func (s *Service) Insert(ctx context.Context, platform, vendor string, records []domain.IndexRecord) error {
	if err := s.repo.EnsureIndex(ctx, platform); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i := range records {
		texts[i] = recordText(&records[i])
	}

	res, err := domain.BatchEmbed(ctx, s.embedder, texts)
	if err != nil {
		return fmt.Errorf("embed %d records: %w", len(records), err)
	}

	if err := s.repo.Upsert(ctx, platform, vendor, records, res.Embeddings); err != nil {
		return err
	}

	s.logger.Info("Stored catalog records",
		zap.String("platform", platform),
		zap.String("vendor", vendor),
		zap.Int("count", len(records)))
	return nil
}

// Query embeds the query text and returns the vendor's top matches.
func (s *Service) Query(ctx context.Context, platform, vendor, query string) ([]domain.IndexHit, error) {
	res, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.repo.SearchKNN(ctx, platform, vendor, res.Embedding, queryTopK)
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// Update replaces a record. A record that is no longer present gets its
// stale key cleared before the fresh copy is written, so repeated
// updates converge on exactly one stored record per id.
func (s *Service) Update(ctx context.Context, platform, vendor string, record domain.IndexRecord) error {
	if err := s.repo.EnsureIndex(ctx, platform); err != nil {
		return err
	}

	_, err := s.repo.Fetch(ctx, platform, vendor, record.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return err
		}
		if err := s.repo.Delete(ctx, platform, vendor, record.ID); err != nil {
			return err
		}
	}

	res, err := s.embedder.Embed(ctx, recordText(&record))
	if err != nil {
		return fmt.Errorf("embed record: %w", err)
	}

	return s.repo.Upsert(ctx, platform, vendor, []domain.IndexRecord{record}, [][]float32{res.Embedding})
}

// Delete removes a record. Unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, platform, vendor, id string) error {
	return s.repo.Delete(ctx, platform, vendor, id)
}
