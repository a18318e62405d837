package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absim/adapters/rng"
	"absim/domain/content"
	"absim/domain/core"
	"absim/domain/experiment"
)

func TestGenerator_Items(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	items, err := gen.Generate(500, rng.New(42))
	require.NoError(t, err)
	require.Len(t, items, 500)

	for i, item := range items {
		assert.Equal(t, i, item.ID)
		assert.Equal(t, content.StyleFormal, item.Style)
		assert.True(t, item.Category.IsValid())
		assert.Equal(t, content.Headline(item.Category), item.Headline)
		assert.GreaterOrEqual(t, item.EstimatedTime, 2.0)
		assert.LessOrEqual(t, item.EstimatedTime, 8.0)
	}

	counts := CategoryCounts(items)
	for _, c := range content.Categories {
		assert.Positive(t, counts[c], "category %s never drawn", c)
	}
}

func TestGenerator_Zero(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	items, err := gen.Generate(0, rng.New(1))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGenerator_Negative(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	_, err = gen.Generate(-3, rng.New(1))
	assert.True(t, core.IsInvalidParameter(err))
}

func TestGenerator_InvalidConfig(t *testing.T) {
	_, err := NewGenerator(Config{MinEstimatedTime: 0, MaxEstimatedTime: 8})
	assert.True(t, core.IsInvalidParameter(err))

	_, err = NewGenerator(Config{MinEstimatedTime: 5, MaxEstimatedTime: 2})
	assert.True(t, core.IsInvalidParameter(err))
}

func TestVariantSet_Correspondence(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)
	baseline, err := gen.Generate(30, rng.New(9))
	require.NoError(t, err)

	set := NewVariantSet(baseline)
	a, ok := set.Items(experiment.VariantA)
	require.True(t, ok)
	b, ok := set.Items(experiment.VariantB)
	require.True(t, ok)
	require.Len(t, b, len(a))

	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].Category, b[i].Category)
		assert.Equal(t, content.StyleInformal, b[i].Style)
		assert.Equal(t, a[i].Headline+content.VariantBSuffix, b[i].Headline)
	}
	assert.Equal(t, []experiment.Variant{experiment.VariantA, experiment.VariantB}, set.Variants())
}

func TestVariantSet_Relabel(t *testing.T) {
	baseline := []content.Item{{ID: 0, Category: content.CategoryTech, Headline: "h", EstimatedTime: 4, Style: content.StyleFormal}}
	set := NewVariantSet(baseline)

	relabeled, err := set.Relabel([]experiment.Variant{"control", "treatment"})
	require.NoError(t, err)

	control, ok := relabeled.Items("control")
	require.True(t, ok)
	treatment, ok := relabeled.Items("treatment")
	require.True(t, ok)
	assert.Equal(t, content.StyleFormal, control[0].Style)
	assert.Equal(t, content.StyleInformal, treatment[0].Style)

	_, err = set.Relabel([]experiment.Variant{"only"})
	assert.True(t, core.IsInvalidParameter(err))
	_, err = set.Relabel([]experiment.Variant{"same", "same"})
	assert.True(t, core.IsInvalidParameter(err))
}
