package redis

import (
	"encoding/binary"
	"math"
	"reflect"
	"testing"

	"github.com/shoplight/shoplight/internal/db"
)

func TestBuildTagFilters(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := buildTagFilters(nil); got != "" {
			t.Errorf("expected empty filter, got %q", got)
		}
	})

	t.Run("single tag escaped", func(t *testing.T) {
		got := buildTagFilters(map[string]string{"vendor": "acme-corp"})
		want := `@vendor:{acme\-corp}`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("multiple tags sorted by key", func(t *testing.T) {
		got := buildTagFilters(map[string]string{
			"vendor":   "acme",
			"category": "shoes",
		})
		want := `@category:{shoes} @vendor:{acme}`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("spaces escaped", func(t *testing.T) {
		got := buildTagFilters(map[string]string{"vendor": "Blue Sky"})
		want := `@vendor:{Blue\ Sky}`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestVectorToBytes(t *testing.T) {
	v := []float32{1.5, -2.25, 0}
	got := vectorToBytes(v)

	if len(got) != len(v)*4 {
		t.Fatalf("expected %d bytes, got %d", len(v)*4, len(got))
	}

	for i, want := range v {
		bits := binary.LittleEndian.Uint32([]byte(got)[i*4:])
		if f := math.Float32frombits(bits); f != want {
			t.Errorf("element %d: got %v, want %v", i, f, want)
		}
	}
}

func TestBuildCreateArgs(t *testing.T) {
	def := &db.IndexDefinition{
		Name:     "shoplight:catalog:shopify",
		Prefixes: []string{"shoplight:catalog:shopify:"},
		Fields: []db.IndexField{
			{Name: "vendor", Type: db.IndexFieldTag},
			{
				Name:              "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         1024,
				VectorDistance:    db.DistanceCosine,
				VectorM:           16,
				VectorEFConstruct: 200,
			},
		},
	}

	got, err := buildCreateArgs(def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"shoplight:catalog:shopify",
		"ON", "HASH",
		"PREFIX", "1", "shoplight:catalog:shopify:",
		"SCHEMA",
		"vendor", "TAG",
		"vector", "VECTOR", "HNSW", "10",
		"TYPE", "FLOAT32",
		"DIM", "1024",
		"DISTANCE_METRIC", "COSINE",
		"M", "16",
		"EF_CONSTRUCTION", "200",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestBuildCreateArgsInvalid(t *testing.T) {
	tests := []struct {
		name string
		def  *db.IndexDefinition
	}{
		{"missing name", &db.IndexDefinition{Fields: []db.IndexField{{Name: "f", Type: db.IndexFieldTag}}}},
		{"no fields", &db.IndexDefinition{Name: "idx"}},
		{"vector without dim", &db.IndexDefinition{
			Name:   "idx",
			Fields: []db.IndexField{{Name: "v", Type: db.IndexFieldVector}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildCreateArgs(tt.def); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
