// Package query turns user-supplied filter, sort, and pagination parameters
// into a storage-agnostic descriptor the resource store executes. It owns
// input normalization: invalid pagination is corrected rather than rejected,
// malformed tag tokens are dropped, and unknown sort fields fall back to
// creation time (the store decides nothing beyond the vetted column list).
package query

import (
	"math"
	"strings"
)

const (
	DefaultPage = 1
	DefaultSize = 20
	// MaxSize is intentionally large so the dashboard and tag index can pull
	// the full catalog in one page.
	MaxSize = 100000
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Filters are the optional predicates a caller may combine. All are
// AND-combined except tag tokens, which OR-combine among themselves.
type Filters struct {
	Type            *string
	Location        *string
	Environment     *string
	Vendor          *string
	SubscriptionID  *int64
	ResourceGroupID *int64
	Search          *string
	Tags            *string
}

// SortParams name an optional sort field and direction.
type SortParams struct {
	Field     *string
	Direction *Direction
}

// PageParams are raw 1-based pagination inputs before normalization.
type PageParams struct {
	Page *int
	Size *int
}

// TagFilter is one parsed key:value token. A resource matches when it has the
// key and the value contains Value case-insensitively.
type TagFilter struct {
	Key   string
	Value string
}

// Descriptor is the compiled query: a conjunction of predicates, an ordering,
// and an offset/limit window. Empty string / nil fields are unset.
type Descriptor struct {
	TypeContains    string
	Location        string
	Environment     string
	Vendor          string
	SubscriptionID  *int64
	ResourceGroupID *int64
	Search          string
	Tags            []TagFilter

	SortColumn string
	SortDesc   bool
	// Relevance buckets results by how well the name matches Search before
	// the requested ordering applies.
	Relevance bool

	Page   int
	Size   int
	Offset int
	Limit  int
}

// sortColumns vets caller-supplied sort fields against real columns. Anything
// unrecognized falls back to created_at; ordering is never interpolated from
// raw input.
var sortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"type":          "type",
	"resource_type": "type",
	"kind":          "kind",
	"location":      "location",
	"vendor":        "vendor",
	"environment":   "environment",
	"provisioner":   "provisioner",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}

// Compile normalizes the inputs into a Descriptor. It never fails: bad
// pagination values are corrected and malformed tag tokens dropped.
func Compile(filters Filters, sort SortParams, page PageParams) Descriptor {
	p, s := NormalizePage(page)

	d := Descriptor{
		SubscriptionID:  filters.SubscriptionID,
		ResourceGroupID: filters.ResourceGroupID,
		SortColumn:      "created_at",
		Page:            p,
		Size:            s,
		Offset:          (p - 1) * s,
		Limit:           s,
	}

	if filters.Type != nil && *filters.Type != "" {
		d.TypeContains = *filters.Type
	}
	if filters.Location != nil && *filters.Location != "" {
		d.Location = *filters.Location
	}
	if filters.Environment != nil && *filters.Environment != "" {
		d.Environment = *filters.Environment
	}
	if filters.Vendor != nil && *filters.Vendor != "" {
		d.Vendor = *filters.Vendor
	}
	if filters.Search != nil && strings.TrimSpace(*filters.Search) != "" {
		d.Search = strings.TrimSpace(*filters.Search)
		d.Relevance = true
	}
	if filters.Tags != nil {
		d.Tags = ParseTagFilters(*filters.Tags)
	}

	if sort.Field != nil {
		if col, ok := sortColumns[strings.ToLower(strings.TrimSpace(*sort.Field))]; ok {
			d.SortColumn = col
		}
	}
	if sort.Direction != nil && *sort.Direction == Descending {
		d.SortDesc = true
	}

	return d
}

// NormalizePage corrects raw pagination inputs: page defaults to 1 with a
// floor of 1, size defaults to 20 and is clamped to [1, MaxSize].
func NormalizePage(page PageParams) (p, size int) {
	p = DefaultPage
	if page.Page != nil && *page.Page > 0 {
		p = *page.Page
	}
	size = DefaultSize
	if page.Size != nil {
		size = *page.Size
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return p, size
}

// ParseTagFilters parses a comma-separated list of key:value tokens. Tokens
// without exactly one colon are dropped.
func ParseTagFilters(spec string) []TagFilter {
	var out []TagFilter
	for _, token := range strings.Split(spec, ",") {
		if strings.Count(token, ":") != 1 {
			continue
		}
		key, value, _ := strings.Cut(token, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		out = append(out, TagFilter{Key: key, Value: value})
	}
	return out
}

// RelevanceBucket ranks how well a resource name matches the search term:
// 1 exact, 2 prefix, 3 substring, 4 anything else. Comparison is
// case-insensitive.
func RelevanceBucket(name, term string) int {
	n := strings.ToLower(name)
	t := strings.ToLower(term)
	switch {
	case n == t:
		return 1
	case strings.HasPrefix(n, t):
		return 2
	case strings.Contains(n, t):
		return 3
	default:
		return 4
	}
}

// Pagination echoes the applied window plus the total row count for the
// predicate, independent of the window itself.
type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination derives total_pages = ceil(total/size).
func NewPagination(page, size int, total int64) Pagination {
	pages := 0
	if size > 0 {
		pages = int(math.Ceil(float64(total) / float64(size)))
	}
	return Pagination{Page: page, Size: size, Total: total, TotalPages: pages}
}

// Scope restricts dashboard aggregation to a subset of the catalog. Each
// field is independently optional; set fields AND-combine.
type Scope struct {
	SubscriptionID  *int64
	ResourceGroupID *int64
	Location        *string
	Environment     *string
}

// IsZero reports whether no scope field is set.
func (s Scope) IsZero() bool {
	return s.SubscriptionID == nil && s.ResourceGroupID == nil &&
		s.Location == nil && s.Environment == nil
}
