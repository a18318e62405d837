package population

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absim/adapters/rng"
	"absim/domain/audience"
	"absim/domain/content"
	"absim/domain/core"
)

func TestGenerator_TraitsWithinBounds(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	consumers, err := gen.Generate(5000, rng.New(42))
	require.NoError(t, err)
	require.Len(t, consumers, 5000)

	for i, c := range consumers {
		if c.Age < audience.MinAge || c.Age > audience.MaxAge {
			t.Fatalf("consumer %d age %d out of range", i, c.Age)
		}
		if c.AvailableTime < audience.MinAvailableTime || c.AvailableTime > audience.MaxAvailableTime {
			t.Fatalf("consumer %d available time %v out of range", i, c.AvailableTime)
		}
		if c.Interest < audience.MinInterest || c.Interest > audience.MaxInterest {
			t.Fatalf("consumer %d interest %v out of range", i, c.Interest)
		}
		if !c.PreferredCategory.IsValid() {
			t.Fatalf("consumer %d has unknown category %q", i, c.PreferredCategory)
		}
		if !c.StylePreference.IsValid() {
			t.Fatalf("consumer %d has unknown style %q", i, c.StylePreference)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	first, err := gen.Generate(200, rng.New(12345))
	require.NoError(t, err)
	second, err := gen.Generate(200, rng.New(12345))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerator_Zero(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	consumers, err := gen.Generate(0, rng.New(1))
	require.NoError(t, err)
	assert.Empty(t, consumers)
}

func TestGenerator_NegativeCount(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	_, err = gen.Generate(-1, rng.New(1))
	require.Error(t, err)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestGenerator_MarginalsFollowConfig(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	const n = 50000
	consumers, err := gen.Generate(n, rng.New(7))
	require.NoError(t, err)

	desc := Describe(consumers)
	for cat, weight := range DefaultConfig().CategoryWeights {
		share := float64(desc.PreferredCategory[cat]) / n
		assert.InDelta(t, weight, share, 0.01, "category %s", cat)
	}

	// gamma(2, 5) has mean 10; clamping to [1,30] moves it only slightly
	assert.InDelta(t, 10, desc.AvailableTime.Mean, 0.5)
	// beta(2, 5) has mean 2/7; clamping below at 0.1 nudges it up
	assert.InDelta(t, 2.0/7.0, desc.Interest.Mean, 0.02)
	assert.InDelta(t, 35, desc.Age.Mean, 0.5)
}

func TestGenerator_StylePreferenceDependsOnAge(t *testing.T) {
	gen, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)

	consumers, err := gen.Generate(40000, rng.New(3))
	require.NoError(t, err)

	var seniorFormal, senior, juniorFormal, junior int
	for _, c := range consumers {
		formal := c.StylePreference == content.StyleFormal
		if c.Age >= 40 {
			senior++
			if formal {
				seniorFormal++
			}
		} else {
			junior++
			if formal {
				juniorFormal++
			}
		}
	}
	require.Positive(t, senior)
	require.Positive(t, junior)

	assert.InDelta(t, 0.8, float64(seniorFormal)/float64(senior), 0.02)
	assert.InDelta(t, 0.4, float64(juniorFormal)/float64(junior), 0.02)
}

func TestConfig_ValidateWeightTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"category weights do not sum to 1", func(c *Config) { c.CategoryWeights[content.CategorySport] = 0.5 }},
		{"missing category", func(c *Config) { delete(c.CategoryWeights, content.CategoryTech) }},
		{"unknown category", func(c *Config) { c.CategoryWeights["weather"] = 0 }},
		{"negative category weight", func(c *Config) {
			c.CategoryWeights[content.CategorySport] = -0.05
			c.CategoryWeights[content.CategoryEconomy] = 0.45
		}},
		{"senior styles do not sum to 1", func(c *Config) { c.Styles.Senior[content.StyleFormal] = 0.9 }},
		{"missing junior style", func(c *Config) { delete(c.Styles.Junior, content.StyleInformal) }},
		{"non-positive std dev", func(c *Config) { c.AgeStdDev = 0 }},
		{"non-positive gamma scale", func(c *Config) { c.TimeScale = -1 }},
		{"non-positive beta alpha", func(c *Config) { c.InterestAlpha = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			_, err := NewGenerator(cfg)
			require.Error(t, err)
			assert.True(t, core.IsInvalidParameter(err), "got %v", err)
		})
	}
}

func TestDescribe_Empty(t *testing.T) {
	desc := Describe(nil)
	assert.Equal(t, 0, desc.Size)
	assert.Equal(t, 0, desc.PreferredCategory[content.CategorySport])
	assert.Equal(t, TraitSummary{}, desc.Age)
}
