package catalog

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"absim/domain/content"
	"absim/domain/core"
	"absim/domain/experiment"
)

// Config parameterizes baseline item generation
type Config struct {
	MinEstimatedTime float64 `json:"min_estimated_time" yaml:"min_estimated_time"`
	MaxEstimatedTime float64 `json:"max_estimated_time" yaml:"max_estimated_time"`
}

// DefaultConfig returns the reference item parameters
func DefaultConfig() Config {
	return Config{
		MinEstimatedTime: 2,
		MaxEstimatedTime: 8,
	}
}

// Validate checks that estimated times stay strictly positive
func (c Config) Validate() error {
	if !(c.MinEstimatedTime > 0) {
		return core.NewParameterError("min_estimated_time", "must be > 0")
	}
	if !(c.MaxEstimatedTime >= c.MinEstimatedTime) {
		return core.NewParameterError("max_estimated_time", "must be >= min_estimated_time")
	}
	return nil
}

// Generator draws baseline (variant A) items
type Generator struct {
	config Config
}

// NewGenerator creates a new item generator
func NewGenerator(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Generator{config: config}, nil
}

// Generate draws n formal items with sequential ids starting at 0. Per item
// the draw order is category, then estimated time.
func (g *Generator) Generate(n int, rng *rand.Rand) ([]content.Item, error) {
	if n < 0 {
		return nil, core.NewCountError("num_items", n, "must be >= 0")
	}

	estimated := distuv.Uniform{Min: g.config.MinEstimatedTime, Max: g.config.MaxEstimatedTime, Src: rng}

	items := make([]content.Item, 0, n)
	for i := 0; i < n; i++ {
		category := content.Categories[rng.IntN(len(content.Categories))]
		items = append(items, content.Item{
			ID:            i,
			Category:      category,
			Headline:      content.Headline(category),
			EstimatedTime: estimated.Rand(),
			Style:         content.StyleFormal,
		})
	}
	return items, nil
}

// VariantSet holds the item set of each arm. Sets are in 1:1
// correspondence by index and id.
type VariantSet struct {
	order []experiment.Variant
	items map[experiment.Variant][]content.Item
}

// NewVariantSet derives the treatment set from the baseline by a pure rewrite
func NewVariantSet(baseline []content.Item) *VariantSet {
	return &VariantSet{
		order: []experiment.Variant{experiment.VariantA, experiment.VariantB},
		items: map[experiment.Variant][]content.Item{
			experiment.VariantA: baseline,
			experiment.VariantB: content.TransformAll(baseline),
		},
	}
}

// Variants returns the arms in run order
func (s *VariantSet) Variants() []experiment.Variant {
	return s.order
}

// Items returns the item set for an arm
func (s *VariantSet) Items(v experiment.Variant) ([]content.Item, bool) {
	items, ok := s.items[v]
	return items, ok
}

// Relabel returns a set whose arms carry the given labels, in order. The
// first label gets the baseline items and the second the treatment items.
func (s *VariantSet) Relabel(labels []experiment.Variant) (*VariantSet, error) {
	if len(labels) != 2 {
		return nil, core.NewParameterError("variant_labels", "need exactly two labels")
	}
	if labels[0] == "" || labels[1] == "" || labels[0] == labels[1] {
		return nil, core.NewParameterError("variant_labels", "must be two distinct non-empty labels")
	}
	return &VariantSet{
		order: []experiment.Variant{labels[0], labels[1]},
		items: map[experiment.Variant][]content.Item{
			labels[0]: s.items[s.order[0]],
			labels[1]: s.items[s.order[1]],
		},
	}, nil
}

// CategoryCounts tallies items per category
func CategoryCounts(items []content.Item) map[content.Category]int {
	counts := make(map[content.Category]int, len(content.Categories))
	for _, c := range content.Categories {
		counts[c] = 0
	}
	for _, item := range items {
		counts[item.Category]++
	}
	return counts
}
