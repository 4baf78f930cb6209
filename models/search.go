package models

import (
	"regexp"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchFilter builds the catalog query for a free-text search. An empty
// query matches the whole catalog; otherwise the query is treated as a
// case-insensitive literal substring of name, brand, category or any tag.
func SearchFilter(query string) bson.M {
	if query == "" {
		return bson.M{}
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{
		"$or": []bson.M{
			{"name": pattern},
			{"brand": pattern},
			{"category": pattern},
			{"tags": pattern},
		},
	}
}

// containsFold reports whether s contains query case-insensitively. Empty or
// absent fields never match.
func containsFold(s, query string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), query)
}

// relevanceTier buckets a matched product by which field matched:
// 0 name, 1 brand, 2 category, 3 anything else (e.g. a tag match).
func relevanceTier(p Product, query string) int {
	switch {
	case containsFold(p.Name, query):
		return 0
	case containsFold(p.Brand, query):
		return 1
	case containsFold(p.Category, query):
		return 2
	default:
		return 3
	}
}

// SortByRelevance reorders already-filtered search results so that name
// matches come first, then brand matches, then category matches, then the
// rest. The sort is stable: ties keep their catalog order. An empty query
// leaves the slice untouched.
func SortByRelevance(products []Product, query string) {
	if query == "" {
		return
	}
	q := strings.ToLower(query)
	sort.SliceStable(products, func(i, j int) bool {
		return relevanceTier(products[i], q) < relevanceTier(products[j], q)
	})
}
