package db

// KNNQuery is the input for vector similarity search.
// TagFilters become FT.SEARCH pre-filters ANDed together.
type KNNQuery struct {
	IndexName  string
	Vector     []float32
	K          int
	TagFilters map[string]string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search. Score is cosine
// similarity clamped to [0,1].
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
