package catalog

import (
	"context"

	"github.com/shoplight/shoplight/internal/domain"
)

// Repository is the durable product index contract.
type Repository interface {
	EnsureIndex(ctx context.Context, platform string) error
	Upsert(ctx context.Context, platform, vendor string, records []domain.IndexRecord, vectors [][]float32) error
	Fetch(ctx context.Context, platform, vendor, id string) (domain.IndexRecord, error)
	Delete(ctx context.Context, platform, vendor, id string) error
	SearchKNN(ctx context.Context, platform, vendor string, vector []float32, k int) ([]domain.IndexHit, error)
}
