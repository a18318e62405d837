package audience

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"absim/domain/content"
)

// Trait bounds enforced at construction
const (
	MinAge           = 18
	MaxAge           = 80
	MinAvailableTime = 1.0
	MaxAvailableTime = 30.0
	MinInterest      = 0.1
	MaxInterest      = 1.0
)

// Behavioral model constants
const (
	mismatchedCategoryAffinity = 0.5
	mismatchedStyleAffinity    = 0.7
	insufficientTimeFactor     = 0.5
	offCategoryInterest        = 0.8
	dwellStdDev                = 0.5
	MinDwellTime               = 0.1
	bounceThreshold            = 0.3
)

// Consumer is one population member. It is a plain value: the decision
// methods never mutate it and draw only from the rng they are given.
type Consumer struct {
	Age               int              `json:"age"`
	PreferredCategory content.Category `json:"preferred_category"`
	AvailableTime     float64          `json:"available_time"` // minutes
	Interest          float64          `json:"interest"`
	StylePreference   content.Style    `json:"style_preference"`
}

// NewConsumer builds a Consumer, clamping each trait into its valid range
func NewConsumer(age int, preferred content.Category, availableTime, interest float64, style content.Style) Consumer {
	return Consumer{
		Age:               ClampAge(age),
		PreferredCategory: preferred,
		AvailableTime:     clamp(availableTime, MinAvailableTime, MaxAvailableTime),
		Interest:          clamp(interest, MinInterest, MaxInterest),
		StylePreference:   style,
	}
}

// ClampAge bounds an age to [MinAge, MaxAge]
func ClampAge(age int) int {
	if age < MinAge {
		return MinAge
	}
	if age > MaxAge {
		return MaxAge
	}
	return age
}

// ClickProbability is the product of interest and the three affinity
// factors. Every factor lies in [0,1] so the result does too.
func (c Consumer) ClickProbability(item content.Item) float64 {
	categoryAffinity := 1.0
	if item.Category != c.PreferredCategory {
		categoryAffinity = mismatchedCategoryAffinity
	}

	styleAffinity := 1.0
	if item.Style != c.StylePreference {
		styleAffinity = mismatchedStyleAffinity
	}

	timeSufficiency := 1.0
	if c.AvailableTime < item.EstimatedTime {
		timeSufficiency = insufficientTimeFactor
	}

	return c.Interest * categoryAffinity * styleAffinity * timeSufficiency
}

// DecideClick consumes exactly one uniform draw
func (c Consumer) DecideClick(item content.Item, rng *rand.Rand) bool {
	return rng.Float64() < c.ClickProbability(item)
}

// DwellTime draws the minutes spent on an item after a click. It consumes
// one normal draw and never returns less than MinDwellTime.
func (c Consumer) DwellTime(item content.Item, rng *rand.Rand) float64 {
	effectiveTime := math.Min(c.AvailableTime, item.EstimatedTime)

	effectiveInterest := c.Interest
	if item.Category != c.PreferredCategory {
		effectiveInterest *= offCategoryInterest
	}

	dist := distuv.Normal{
		Mu:    effectiveTime * effectiveInterest,
		Sigma: dwellStdDev,
		Src:   rng,
	}
	return math.Max(dist.Rand(), MinDwellTime)
}

// CheckBounce reports whether the dwell time fell short of the bounce
// threshold. It draws nothing.
func (c Consumer) CheckBounce(item content.Item, dwellTime float64) bool {
	return dwellTime < bounceThreshold*item.EstimatedTime
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
