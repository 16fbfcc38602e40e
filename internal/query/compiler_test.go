package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }
func dirPtr(v Direction) *Direction { return &v }

func TestNormalizePage_Defaults(t *testing.T) {
	p, s := NormalizePage(PageParams{})
	assert.Equal(t, 1, p)
	assert.Equal(t, 20, s)
}

func TestNormalizePage_CorrectsInvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		in       PageParams
		page     int
		size     int
	}{
		{"zero page", PageParams{Page: intPtr(0), Size: intPtr(50)}, 1, 50},
		{"negative page", PageParams{Page: intPtr(-3), Size: intPtr(50)}, 1, 50},
		{"zero size", PageParams{Page: intPtr(2), Size: intPtr(0)}, 2, 20},
		{"negative size", PageParams{Page: intPtr(2), Size: intPtr(-1)}, 2, 20},
		{"oversized", PageParams{Page: intPtr(1), Size: intPtr(2000000)}, 1, MaxSize},
		{"upper bound kept", PageParams{Page: intPtr(1), Size: intPtr(MaxSize)}, 1, MaxSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, s := NormalizePage(tc.in)
			assert.Equal(t, tc.page, p)
			assert.Equal(t, tc.size, s)
			assert.GreaterOrEqual(t, p, 1)
			assert.GreaterOrEqual(t, s, 1)
			assert.LessOrEqual(t, s, MaxSize)
		})
	}
}

func TestCompile_Offset(t *testing.T) {
	d := Compile(Filters{}, SortParams{}, PageParams{Page: intPtr(3), Size: intPtr(25)})
	assert.Equal(t, 50, d.Offset)
	assert.Equal(t, 25, d.Limit)
}

func TestCompile_DefaultOrdering(t *testing.T) {
	d := Compile(Filters{}, SortParams{}, PageParams{})
	assert.Equal(t, "created_at", d.SortColumn)
	assert.False(t, d.SortDesc)
	assert.False(t, d.Relevance)
}

func TestCompile_UnknownSortFieldFallsBack(t *testing.T) {
	d := Compile(Filters{}, SortParams{Field: strPtr("; DROP TABLE resource"), Direction: dirPtr(Descending)}, PageParams{})
	assert.Equal(t, "created_at", d.SortColumn)
	assert.True(t, d.SortDesc)
}

func TestCompile_SortFieldAliases(t *testing.T) {
	d := Compile(Filters{}, SortParams{Field: strPtr("resource_type")}, PageParams{})
	assert.Equal(t, "type", d.SortColumn)

	d = Compile(Filters{}, SortParams{Field: strPtr("Name")}, PageParams{})
	assert.Equal(t, "name", d.SortColumn)
}

func TestCompile_SearchEnablesRelevance(t *testing.T) {
	d := Compile(Filters{Search: strPtr("  vm1 ")}, SortParams{}, PageParams{})
	assert.Equal(t, "vm1", d.Search)
	assert.True(t, d.Relevance)

	d = Compile(Filters{Search: strPtr("   ")}, SortParams{}, PageParams{})
	assert.Empty(t, d.Search)
	assert.False(t, d.Relevance)
}

func TestParseTagFilters(t *testing.T) {
	got := ParseTagFilters("Env:prod, Vendor : Microsoft ,broken,also:bad:token,:noval")
	assert.Equal(t, []TagFilter{
		{Key: "Env", Value: "prod"},
		{Key: "Vendor", Value: "Microsoft"},
	}, got)
}

func TestParseTagFilters_EmptySpec(t *testing.T) {
	assert.Empty(t, ParseTagFilters(""))
	assert.Empty(t, ParseTagFilters("no-colon-here"))
}

func TestRelevanceBucket(t *testing.T) {
	assert.Equal(t, 1, RelevanceBucket("vm1", "vm1"))
	assert.Equal(t, 1, RelevanceBucket("VM1", "vm1"))
	assert.Equal(t, 2, RelevanceBucket("vm10", "vm1"))
	assert.Equal(t, 3, RelevanceBucket("test-vm1", "vm1"))
	assert.Equal(t, 4, RelevanceBucket("storage", "vm1"))
}

func TestRelevanceBucket_Ordering(t *testing.T) {
	// Searching "vm1" must rank vm1 (exact) before vm10 (prefix) before
	// test-vm1 (contains).
	names := []string{"test-vm1", "vm10", "vm1"}
	buckets := map[string]int{}
	for _, n := range names {
		buckets[n] = RelevanceBucket(n, "vm1")
	}
	assert.Less(t, buckets["vm1"], buckets["vm10"])
	assert.Less(t, buckets["vm10"], buckets["test-vm1"])
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(45), p.Total)

	p = NewPagination(1, 20, 0)
	assert.Equal(t, 0, p.TotalPages)

	p = NewPagination(1, 20, 20)
	assert.Equal(t, 1, p.TotalPages)
}

func TestScopeIsZero(t *testing.T) {
	assert.True(t, Scope{}.IsZero())
	id := int64(4)
	assert.False(t, Scope{SubscriptionID: &id}.IsZero())
	env := "prod"
	assert.False(t, Scope{Environment: &env}.IsZero())
}
