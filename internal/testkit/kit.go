// Package testkit provides deterministic fixtures for scenario tests.
package testkit

import (
	"absim/domain/audience"
	"absim/domain/content"
)

// ConsumerProfile describes a homogeneous population
type ConsumerProfile struct {
	Age               int
	PreferredCategory content.Category
	AvailableTime     float64
	Interest          float64
	StylePreference   content.Style
}

// DefaultConsumerProfile returns a young formal-leaning tech reader with
// plenty of time
func DefaultConsumerProfile() ConsumerProfile {
	return ConsumerProfile{
		Age:               30,
		PreferredCategory: content.CategoryTech,
		AvailableTime:     20,
		Interest:          0.5,
		StylePreference:   content.StyleFormal,
	}
}

// UniformPopulation returns n identical consumers. Fields are set directly,
// bypassing trait clamping, so scenarios can pin values outside the
// generator's ranges.
func UniformPopulation(n int, profile ConsumerProfile) []audience.Consumer {
	out := make([]audience.Consumer, n)
	for i := range out {
		out[i] = audience.Consumer{
			Age:               profile.Age,
			PreferredCategory: profile.PreferredCategory,
			AvailableTime:     profile.AvailableTime,
			Interest:          profile.Interest,
			StylePreference:   profile.StylePreference,
		}
	}
	return out
}

// UniformItems returns n items of one category, style and length with
// sequential ids
func UniformItems(n int, category content.Category, style content.Style, estimatedTime float64) []content.Item {
	out := make([]content.Item, n)
	for i := range out {
		out[i] = content.Item{
			ID:            i,
			Category:      category,
			Headline:      content.Headline(category),
			EstimatedTime: estimatedTime,
			Style:         style,
		}
	}
	return out
}
