package catalog

import (
	"context"

	"github.com/shoplight/shoplight/internal/db"
)

// fakeStore implements the consumer interface with in-memory hashes.
type fakeStore struct {
	hashes  map[string]map[string]string
	indexes map[string]bool

	createIndexCalls int
	searchFn         func(q *db.KNNQuery) (*db.SearchResult, error)
	lastQuery        *db.KNNQuery
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hashes:  make(map[string]map[string]string),
		indexes: make(map[string]bool),
	}
}

func (f *fakeStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	for _, item := range items {
		fields := make(map[string]string, len(item.Fields))
		for k, v := range item.Fields {
			fields[k] = v
		}
		f.hashes[item.Key] = fields
	}
	return nil
}

func (f *fakeStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	fields, ok := f.hashes[key]
	if !ok {
		// Redis returns an empty hash for a missing key.
		return map[string]string{}, nil
	}
	return fields, nil
}

func (f *fakeStore) Del(_ context.Context, key string) error {
	delete(f.hashes, key)
	return nil
}

func (f *fakeStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	f.createIndexCalls++
	if f.indexes[def.Name] {
		return db.ErrIndexExists
	}
	f.indexes[def.Name] = true
	return nil
}

func (f *fakeStore) IndexExists(_ context.Context, name string) (bool, error) {
	return f.indexes[name], nil
}

func (f *fakeStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	f.lastQuery = q
	if f.searchFn != nil {
		return f.searchFn(q)
	}
	return &db.SearchResult{}, nil
}
