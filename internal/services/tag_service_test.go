package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/techstock/engine/internal/models"
)

func seedTagged(t *testing.T, blobs []map[string]string) *fakeResourceRepo {
	t.Helper()
	repo := newFakeResourceRepo()
	for i, tags := range blobs {
		r := models.Resource{
			Name:            fmt.Sprintf("res-%d", i),
			Type:            "virtualMachines",
			Location:        "westeurope",
			SubscriptionID:  1,
			ResourceGroupID: 1,
		}
		require.NoError(t, r.SetTags(tags))
		require.NoError(t, repo.Create(context.Background(), &r))
	}
	return repo
}

func TestAvailableTags(t *testing.T) {
	repo := seedTagged(t, []map[string]string{
		{"Env": "prod", "Vendor": "Microsoft"},
		{"Env": "prod", "Team": "platform"},
		{"Env": "prod"},
		{"Env": "dev"},
	})
	svc := NewTagService(repo)

	index, err := svc.AvailableTags(context.Background())
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"dev", "prod"}, index.Tags["Env"])
	require.Equal(t, []string{"Microsoft"}, index.Tags["Vendor"])

	require.Equal(t, "Env", index.PopularTags[0].Key)
	require.Equal(t, "prod", index.PopularTags[0].Value)
	require.Equal(t, int64(3), index.PopularTags[0].Count)

	// singles tie at 1 and order deterministically by pair
	require.Equal(t, int64(1), index.PopularTags[1].Count)
	for i := 1; i < len(index.PopularTags); i++ {
		prev, cur := index.PopularTags[i-1], index.PopularTags[i]
		if prev.Count == cur.Count {
			require.Less(t, prev.Key+":"+prev.Value, cur.Key+":"+cur.Value)
		}
	}
}

func TestAvailableTags_SkipsUnparseableBlob(t *testing.T) {
	repo := seedTagged(t, []map[string]string{{"Env": "prod"}})
	broken := models.Resource{
		Name:            "broken",
		Type:            "virtualMachines",
		Location:        "westeurope",
		SubscriptionID:  1,
		ResourceGroupID: 1,
		TagsJSON:        datatypes.JSON(`["not","an","object"]`),
	}
	require.NoError(t, repo.Create(context.Background(), &broken))

	svc := NewTagService(repo)
	index, err := svc.AvailableTags(context.Background())
	require.NoError(t, err)

	require.Len(t, index.Tags, 1)
	require.Equal(t, []string{"prod"}, index.Tags["Env"])
}

func TestSuggestions(t *testing.T) {
	repo := seedTagged(t, []map[string]string{
		{"Env": "prod", "Tier": "production"},
		{"Env": "prod"}, // duplicate pair, must not repeat
		{"Env": "dev", "Owner": "prod-team"},
	})
	svc := NewTagService(repo)

	suggestions, err := svc.Suggestions(context.Background(), "prod")
	require.NoError(t, err)

	displays := make([]string, len(suggestions))
	for i, s := range suggestions {
		displays[i] = s.Display
	}
	require.ElementsMatch(t, []string{"Env:prod", "Tier:production", "Owner:prod-team"}, displays)

	// exact value match sorts first
	require.Equal(t, "Env:prod", suggestions[0].Display)
}

func TestSuggestions_MatchesCaseInsensitive(t *testing.T) {
	repo := seedTagged(t, []map[string]string{{"Environment": "Prod"}})
	svc := NewTagService(repo)

	suggestions, err := svc.Suggestions(context.Background(), "PROD")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	require.Equal(t, "Environment:Prod", suggestions[0].Display)
}

func TestSuggestions_Limit(t *testing.T) {
	blobs := make([]map[string]string, 15)
	for i := range blobs {
		blobs[i] = map[string]string{fmt.Sprintf("Key%02d", i): "shared-value"}
	}
	repo := seedTagged(t, blobs)
	svc := NewTagService(repo)

	suggestions, err := svc.Suggestions(context.Background(), "shared")
	require.NoError(t, err)
	require.Len(t, suggestions, suggestionLimit)
}
