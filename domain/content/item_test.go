package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformToVariantB_FormalItem(t *testing.T) {
	item := Item{ID: 3, Category: CategorySport, Headline: "Latest news on Sport", EstimatedTime: 5, Style: StyleFormal}

	b := TransformToVariantB(item)

	assert.Equal(t, 3, b.ID)
	assert.Equal(t, CategorySport, b.Category)
	assert.Equal(t, StyleInformal, b.Style)
	assert.Equal(t, "Latest news on Sport"+VariantBSuffix, b.Headline)
	assert.InDelta(t, 3.5, b.EstimatedTime, 1e-12)

	// the input is left untouched
	assert.Equal(t, StyleFormal, item.Style)
	assert.Equal(t, 5.0, item.EstimatedTime)
}

func TestTransformToVariantB_NeverFlipsBack(t *testing.T) {
	item := Item{ID: 1, Category: CategoryTech, Headline: "x", EstimatedTime: 4, Style: StyleInformal}

	once := TransformToVariantB(item)
	twice := TransformToVariantB(once)

	assert.Equal(t, StyleInformal, once.Style)
	assert.Equal(t, StyleInformal, twice.Style)
}

func TestTransformToVariantB_TimeFloor(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.0, 1.0},
		{1.2, 1.0},
		{1.5, 1.05},
		{8, 5.6},
	}
	for _, tc := range tests {
		got := TransformToVariantB(Item{EstimatedTime: tc.in, Style: StyleFormal}).EstimatedTime
		assert.InDelta(t, tc.want, got, 1e-12, "estimated time %v", tc.in)
	}
}

func TestTransformToVariantB_Deterministic(t *testing.T) {
	item := Item{ID: 9, Category: CategoryEconomy, Headline: "h", EstimatedTime: 6.3, Style: StyleFormal}
	assert.Equal(t, TransformToVariantB(item), TransformToVariantB(item))
}

func TestTransformAll(t *testing.T) {
	items := []Item{
		{ID: 0, Category: CategoryPolitics, EstimatedTime: 2, Style: StyleFormal},
		{ID: 1, Category: CategoryEconomy, EstimatedTime: 7, Style: StyleFormal},
	}
	out := TransformAll(items)
	assert.Len(t, out, 2)
	for i := range items {
		assert.Equal(t, items[i].ID, out[i].ID)
	}
	assert.Empty(t, TransformAll(nil))
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "Entertainment", CategoryEntertainment.Title())
	assert.True(t, CategoryPolitics.IsValid())
	assert.False(t, Category("weather").IsValid())

	c, err := ParseCategory(" Sport ")
	assert.NoError(t, err)
	assert.Equal(t, CategorySport, c)

	_, err = ParseCategory("weather")
	assert.Error(t, err)
}
