package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoplight/shoplight/internal/db"
	"github.com/shoplight/shoplight/internal/domain"
)

// store is the consumer interface for catalog records (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// IndexConfig holds vector index schema parameters.
type IndexConfig struct {
	Dimensions  int
	HNSWM       int
	EFConstruct int
}

// Repo implements the durable product index over Redis FT vector search.
// One FT index per platform; vendors share an index, isolated by a TAG
// pre-filter on every search.
type Repo struct {
	store store
	cfg   IndexConfig
}

// New creates a catalog repository.
func New(s store, cfg IndexConfig) *Repo {
	return &Repo{store: s, cfg: cfg}
}

// IndexName returns the per-platform FT index name.
func IndexName(platform string) string {
	return domain.KeyPrefix + "catalog:" + platform
}

func recordKey(platform, vendor, id string) string {
	return fmt.Sprintf("%s:%s:%s", IndexName(platform), vendor, id)
}

// EnsureIndex creates the platform's FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context, platform string) error {
	name := IndexName(platform)

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     name,
		Prefixes: []string{name + ":"},
		Fields: []db.IndexField{
			{Name: "vendor", Type: db.IndexFieldTag},
			{
				Name:              "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.cfg.Dimensions,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.cfg.HNSWM,
				VectorEFConstruct: r.cfg.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		// Concurrent creation loses the race harmlessly.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", name, err)
	}
	return nil
}

// Upsert stores records with their vectors in a single round-trip.
// records[i] pairs with vectors[i].
func (r *Repo) Upsert(ctx context.Context, platform, vendor string, records []domain.IndexRecord, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return fmt.Errorf("got %d records and %d vectors", len(records), len(vectors))
	}
	if len(records) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(records))
	for i := range records {
		items[i] = db.HashSetItem{
			Key:    recordKey(platform, vendor, records[i].ID),
			Fields: buildHashFields(&records[i], vendor, vectors[i]),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d records: %w", len(records), err)
	}
	return nil
}

// Fetch returns a stored record by ID. A missing key reads back as an
// empty hash, which maps to ErrRecordNotFound.
func (r *Repo) Fetch(ctx context.Context, platform, vendor, id string) (domain.IndexRecord, error) {
	key := recordKey(platform, vendor, id)

	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.IndexRecord{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domain.IndexRecord{}, domain.ErrRecordNotFound
	}

	return parseHashFields(fields), nil
}

// Delete removes a record. Deleting a missing record is a no-op.
func (r *Repo) Delete(ctx context.Context, platform, vendor, id string) error {
	key := recordKey(platform, vendor, id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// SearchKNN returns the vendor's top-k records by vector similarity.
func (r *Repo) SearchKNN(ctx context.Context, platform, vendor string, vector []float32, k int) ([]domain.IndexHit, error) {
	result, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:  IndexName(platform),
		Vector:     vector,
		K:          k,
		TagFilters: map[string]string{"vendor": vendor},
	})
	if err != nil {
		return nil, fmt.Errorf("knn search %s: %w", IndexName(platform), err)
	}

	hits := make([]domain.IndexHit, 0, len(result.Entries))
	for _, entry := range result.Entries {
		hits = append(hits, domain.IndexHit{
			Record: parseHashFields(entry.Fields),
			Score:  entry.Score,
		})
	}
	return hits, nil
}
