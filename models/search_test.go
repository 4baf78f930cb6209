package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilterEmptyQueryMatchesAll(t *testing.T) {
	assert.Equal(t, bson.M{}, SearchFilter(""))
}

func TestSearchFilterCoversAllFields(t *testing.T) {
	filter := SearchFilter("shoes")

	or, ok := filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, or, 4)

	fields := make([]string, 0, len(or))
	for _, clause := range or {
		for field, v := range clause {
			fields = append(fields, field)
			re, ok := v.(primitive.Regex)
			assert.True(t, ok)
			assert.Equal(t, "shoes", re.Pattern)
			assert.Equal(t, "i", re.Options)
		}
	}
	assert.ElementsMatch(t, []string{"name", "brand", "category", "tags"}, fields)
}

func TestSearchFilterEscapesRegexMetacharacters(t *testing.T) {
	filter := SearchFilter("a.c (50%)")

	or := filter["$or"].([]bson.M)
	re := or[0]["name"].(primitive.Regex)
	assert.Equal(t, `a\.c \(50%\)`, re.Pattern)
}

func TestSortByRelevanceTierOrdering(t *testing.T) {
	// A matches by name, B only by brand, C only by category, D only by tag.
	a := Product{Name: "Denim jacket", Brand: "Northway", Category: "Outerwear"}
	b := Product{Name: "Slim trousers", Brand: "Denim Co", Category: "Bottoms"}
	c := Product{Name: "Work shirt", Brand: "Northway", Category: "Denimwear"}
	d := Product{Name: "Canvas belt", Brand: "Strapline", Category: "Accessories", Tags: []string{"denim"}}

	products := []Product{d, c, b, a}
	SortByRelevance(products, "denim")

	assert.Equal(t, "Denim jacket", products[0].Name)
	assert.Equal(t, "Slim trousers", products[1].Name)
	assert.Equal(t, "Work shirt", products[2].Name)
	assert.Equal(t, "Canvas belt", products[3].Name)
}

func TestSortByRelevanceIsCaseInsensitive(t *testing.T) {
	a := Product{Name: "DENIM Jacket"}
	b := Product{Name: "Trousers", Brand: "denim co"}

	products := []Product{b, a}
	SortByRelevance(products, "Denim")

	assert.Equal(t, "DENIM Jacket", products[0].Name)
}

func TestSortByRelevanceStableWithinTier(t *testing.T) {
	first := Product{Name: "Denim jacket blue"}
	second := Product{Name: "Denim jacket black"}
	brandOnly := Product{Name: "Trousers", Brand: "Denim Co"}

	products := []Product{first, second, brandOnly}
	SortByRelevance(products, "denim")

	assert.Equal(t, "Denim jacket blue", products[0].Name)
	assert.Equal(t, "Denim jacket black", products[1].Name)
	assert.Equal(t, "Trousers", products[2].Name)
}

func TestSortByRelevanceEmptyQueryLeavesOrder(t *testing.T) {
	products := []Product{{Name: "B"}, {Name: "A"}}
	SortByRelevance(products, "")

	assert.Equal(t, "B", products[0].Name)
	assert.Equal(t, "A", products[1].Name)
}

func TestSortByRelevanceToleratesMissingFields(t *testing.T) {
	// Records with absent name/brand/category must not fault and must sort
	// after real matches.
	bare := Product{Tags: []string{"denim"}}
	named := Product{Name: "Denim jacket"}

	products := []Product{bare, named}
	assert.NotPanics(t, func() {
		SortByRelevance(products, "denim")
	})
	assert.Equal(t, "Denim jacket", products[0].Name)
}
