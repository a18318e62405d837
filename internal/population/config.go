package population

import (
	"fmt"
	"math"

	"absim/domain/content"
	"absim/domain/core"
)

// weightTolerance is how far a weight table may drift from summing to 1
const weightTolerance = 1e-6

// CategoryWeights maps each category to its share of the population
type CategoryWeights map[content.Category]float64

// StyleWeights maps each style to its share within an age band
type StyleWeights map[content.Style]float64

// StyleTable gives the style preference split on each side of an age threshold
type StyleTable struct {
	AgeThreshold int          `json:"age_threshold" yaml:"age_threshold"` // ages >= threshold use Senior
	Senior       StyleWeights `json:"senior" yaml:"senior"`
	Junior       StyleWeights `json:"junior" yaml:"junior"`
}

// Config parameterizes the marginal distributions of consumer traits
type Config struct {
	AgeMean         float64         `json:"age_mean" yaml:"age_mean"`
	AgeStdDev       float64         `json:"age_std_dev" yaml:"age_std_dev"`
	TimeShape       float64         `json:"time_shape" yaml:"time_shape"`
	TimeScale       float64         `json:"time_scale" yaml:"time_scale"`
	InterestAlpha   float64         `json:"interest_alpha" yaml:"interest_alpha"`
	InterestBeta    float64         `json:"interest_beta" yaml:"interest_beta"`
	CategoryWeights CategoryWeights `json:"category_weights" yaml:"category_weights"`
	Styles          StyleTable      `json:"styles" yaml:"styles"`
}

// DefaultConfig returns the reference population parameters
func DefaultConfig() Config {
	return Config{
		AgeMean:       35,
		AgeStdDev:     10,
		TimeShape:     2,
		TimeScale:     5,
		InterestAlpha: 2,
		InterestBeta:  5,
		CategoryWeights: CategoryWeights{
			content.CategoryPolitics:      0.20,
			content.CategorySport:         0.25,
			content.CategoryTech:          0.20,
			content.CategoryEntertainment: 0.20,
			content.CategoryEconomy:       0.15,
		},
		Styles: StyleTable{
			AgeThreshold: 40,
			Senior: StyleWeights{
				content.StyleFormal:   0.8,
				content.StyleInformal: 0.2,
			},
			Junior: StyleWeights{
				content.StyleFormal:   0.4,
				content.StyleInformal: 0.6,
			},
		},
	}
}

// Validate checks distribution parameters and weight tables
func (c Config) Validate() error {
	if !(c.AgeStdDev > 0) {
		return core.NewParameterError("age_std_dev", "must be > 0")
	}
	if !(c.TimeShape > 0) || !(c.TimeScale > 0) {
		return core.NewParameterError("available time gamma", "shape and scale must be > 0")
	}
	if !(c.InterestAlpha > 0) || !(c.InterestBeta > 0) {
		return core.NewParameterError("interest beta", "alpha and beta must be > 0")
	}
	if _, err := c.CategoryWeights.Ordered(); err != nil {
		return err
	}
	if _, err := c.Styles.Senior.Ordered("senior"); err != nil {
		return err
	}
	if _, err := c.Styles.Junior.Ordered("junior"); err != nil {
		return err
	}
	return nil
}

// Ordered returns the weights in content.Categories order
func (w CategoryWeights) Ordered() ([]float64, error) {
	keys := make([]string, len(content.Categories))
	for i, c := range content.Categories {
		keys[i] = string(c)
	}
	for c := range w {
		if !c.IsValid() {
			return nil, core.NewWeightError("category_weights", fmt.Sprintf("unknown category %q", c))
		}
	}
	return orderedWeights("category_weights", keys, func(i int) (float64, bool) {
		v, ok := w[content.Categories[i]]
		return v, ok
	})
}

// Ordered returns the weights in content.Styles order
func (w StyleWeights) Ordered(band string) ([]float64, error) {
	keys := make([]string, len(content.Styles))
	for i, s := range content.Styles {
		keys[i] = string(s)
	}
	for s := range w {
		if !s.IsValid() {
			return nil, core.NewWeightError("styles."+band, fmt.Sprintf("unknown style %q", s))
		}
	}
	return orderedWeights("styles."+band, keys, func(i int) (float64, bool) {
		v, ok := w[content.Styles[i]]
		return v, ok
	})
}

func orderedWeights(table string, keys []string, get func(i int) (float64, bool)) ([]float64, error) {
	out := make([]float64, len(keys))
	sum := 0.0
	for i, key := range keys {
		v, ok := get(i)
		if !ok {
			return nil, core.NewWeightError(table, fmt.Sprintf("missing weight for %q", key))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, core.NewWeightError(table, fmt.Sprintf("weight for %q must be finite and >= 0, got %v", key, v))
		}
		out[i] = v
		sum += v
	}
	if math.Abs(sum-1) > weightTolerance {
		return nil, core.NewWeightError(table, fmt.Sprintf("weights sum to %v, expected 1", sum))
	}
	return out, nil
}
