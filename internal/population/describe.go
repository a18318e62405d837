package population

import (
	"github.com/montanaflynn/stats"

	"absim/domain/audience"
	"absim/domain/content"
)

// TraitSummary describes one numeric trait across a population
type TraitSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Description is a tabular profile of a generated population
type Description struct {
	Size              int                      `json:"size"`
	Age               TraitSummary             `json:"age"`
	AvailableTime     TraitSummary             `json:"available_time"`
	Interest          TraitSummary             `json:"interest"`
	PreferredCategory map[content.Category]int `json:"preferred_category"`
	StylePreference   map[content.Style]int    `json:"style_preference"`
}

// Describe profiles a population. Trait summaries are zero for an empty one.
func Describe(consumers []audience.Consumer) Description {
	desc := Description{
		Size:              len(consumers),
		PreferredCategory: make(map[content.Category]int, len(content.Categories)),
		StylePreference:   make(map[content.Style]int, len(content.Styles)),
	}
	for _, c := range content.Categories {
		desc.PreferredCategory[c] = 0
	}
	for _, s := range content.Styles {
		desc.StylePreference[s] = 0
	}
	if len(consumers) == 0 {
		return desc
	}

	ages := make([]float64, len(consumers))
	times := make([]float64, len(consumers))
	interests := make([]float64, len(consumers))
	for i, c := range consumers {
		ages[i] = float64(c.Age)
		times[i] = c.AvailableTime
		interests[i] = c.Interest
		desc.PreferredCategory[c.PreferredCategory]++
		desc.StylePreference[c.StylePreference]++
	}

	desc.Age = summarize(ages)
	desc.AvailableTime = summarize(times)
	desc.Interest = summarize(interests)
	return desc
}

func summarize(data []float64) TraitSummary {
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviationSample(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	return TraitSummary{Mean: mean, StdDev: stdDev, Min: min, Max: max}
}
