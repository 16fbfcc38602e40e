package services

import (
	"context"
	"sort"
	"strings"

	"github.com/techstock/engine/internal/repository"
)

const (
	popularTagLimit = 20
	suggestionLimit = 10
)

// TagIndex maps every observed tag key to its distinct values and ranks the
// 20 most frequent (key, value) pairs.
type TagIndex struct {
	Tags        map[string][]string `json:"tags"`
	PopularTags []TagUsage          `json:"popular_tags"`
}

type TagUsage struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type TagSuggestion struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Display string `json:"display"`
}

type TagService interface {
	// AvailableTags scans every resource's tag blob. Unparseable blobs are
	// skipped. Recomputed per call; fine while the catalog stays modest.
	AvailableTags(ctx context.Context) (*TagIndex, error)
	// Suggestions returns up to 10 deduplicated pairs whose key or value
	// contains the query, exact matches first.
	Suggestions(ctx context.Context, q string) ([]TagSuggestion, error)
}

type tagService struct {
	resources repository.ResourceRepository
}

func NewTagService(resources repository.ResourceRepository) TagService {
	return &tagService{resources: resources}
}

var _ TagService = (*tagService)(nil)

func (s *tagService) AvailableTags(ctx context.Context) (*TagIndex, error) {
	resources, err := s.resources.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	valuesByKey := map[string]map[string]struct{}{}
	usage := map[string]int64{}
	for i := range resources {
		tags, ok := resources[i].TagMap()
		if !ok {
			continue
		}
		for key, value := range tags {
			if valuesByKey[key] == nil {
				valuesByKey[key] = map[string]struct{}{}
			}
			valuesByKey[key][value] = struct{}{}
			usage[key+":"+value]++
		}
	}

	index := &TagIndex{Tags: make(map[string][]string, len(valuesByKey))}
	for key, values := range valuesByKey {
		list := make([]string, 0, len(values))
		for v := range values {
			list = append(list, v)
		}
		sort.Strings(list)
		index.Tags[key] = list
	}

	popular := make([]TagUsage, 0, len(usage))
	for pair, count := range usage {
		key, value, _ := strings.Cut(pair, ":")
		popular = append(popular, TagUsage{Key: key, Value: value, Count: count})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Count != popular[j].Count {
			return popular[i].Count > popular[j].Count
		}
		return popular[i].Key+":"+popular[i].Value < popular[j].Key+":"+popular[j].Value
	})
	if len(popular) > popularTagLimit {
		popular = popular[:popularTagLimit]
	}
	index.PopularTags = popular

	return index, nil
}

func (s *tagService) Suggestions(ctx context.Context, q string) ([]TagSuggestion, error) {
	term := strings.ToLower(q)

	resources, err := s.resources.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var suggestions []TagSuggestion
	seen := map[string]struct{}{}
	for i := range resources {
		tags, ok := resources[i].TagMap()
		if !ok {
			continue
		}
		for key, value := range tags {
			pair := key + ":" + value
			if _, dup := seen[pair]; dup {
				continue
			}
			if !strings.Contains(strings.ToLower(key), term) &&
				!strings.Contains(strings.ToLower(value), term) {
				continue
			}
			seen[pair] = struct{}{}
			suggestions = append(suggestions, TagSuggestion{Key: key, Value: value, Display: pair})
		}
	}

	// Exact key/value matches rank before partial matches, then lexicographic
	// by display.
	sort.Slice(suggestions, func(i, j int) bool {
		iExact := strings.ToLower(suggestions[i].Key) == term || strings.ToLower(suggestions[i].Value) == term
		jExact := strings.ToLower(suggestions[j].Key) == term || strings.ToLower(suggestions[j].Value) == term
		if iExact != jExact {
			return iExact
		}
		return suggestions[i].Display < suggestions[j].Display
	})
	if len(suggestions) > suggestionLimit {
		suggestions = suggestions[:suggestionLimit]
	}
	return suggestions, nil
}
