package db

import (
	"github.com/kailas-cloud/menuboard/internal/domain/geo"
	"github.com/kailas-cloud/menuboard/internal/domain/search/filter"
)

// Query is the input for FT.SEARCH.
// Empty Text and Filters match every document in the index.
type Query struct {
	IndexName string
	// Text holds free-text terms; any term may match. The store escapes them.
	Text string
	// TextFields restricts Text to these TEXT fields; empty means all.
	TextFields []string
	Filters    filter.Expression
	SortBy     string
	SortDesc   bool
	Offset     int
	Limit      int
	// ReturnFields selects returned fields; "$" returns the whole JSON document.
	ReturnFields []string
	// KeysOnly skips document content (NOCONTENT).
	KeysOnly bool
}

// DistinctQuery is the input for a GROUPBY aggregation over one field.
type DistinctQuery struct {
	IndexName string
	Filters   filter.Expression
	Field     string
}

// NearQuery is the input for a distance-ordered FT.AGGREGATE.
// Matches are sorted by distance from Center on GeoField, closest first,
// and capped at Limit after sorting.
type NearQuery struct {
	IndexName  string
	Text       string
	TextFields []string
	Filters    filter.Expression
	GeoField   string
	Center     geo.Point
	Limit      int
}

// NearEntry is one document hit of a NearQuery.
type NearEntry struct {
	// Document is the whole JSON document.
	Document       string
	DistanceMeters float64
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
