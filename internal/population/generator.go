package population

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"absim/domain/audience"
	"absim/domain/content"
	"absim/domain/core"
)

// Generator draws consumers from the configured marginal distributions
type Generator struct {
	config        Config
	categoryProbs []float64
	seniorStyles  []float64
	juniorStyles  []float64
}

// NewGenerator validates the config and prepares the weight tables
func NewGenerator(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	categoryProbs, _ := config.CategoryWeights.Ordered()
	senior, _ := config.Styles.Senior.Ordered("senior")
	junior, _ := config.Styles.Junior.Ordered("junior")

	return &Generator{
		config:        config,
		categoryProbs: categoryProbs,
		seniorStyles:  senior,
		juniorStyles:  junior,
	}, nil
}

// Config returns the generator's configuration
func (g *Generator) Config() Config {
	return g.config
}

// Generate draws n consumers from rng. Per consumer the draw order is
// age, preferred category, available time, interest, style preference.
func (g *Generator) Generate(n int, rng *rand.Rand) ([]audience.Consumer, error) {
	if n < 0 {
		return nil, core.NewCountError("num_consumers", n, "must be >= 0")
	}

	age := distuv.Normal{Mu: g.config.AgeMean, Sigma: g.config.AgeStdDev, Src: rng}
	category := distuv.NewCategorical(g.categoryProbs, rng)
	availableTime := distuv.Gamma{Alpha: g.config.TimeShape, Beta: 1 / g.config.TimeScale, Src: rng}
	interest := distuv.Beta{Alpha: g.config.InterestAlpha, Beta: g.config.InterestBeta, Src: rng}
	seniorStyle := distuv.NewCategorical(g.seniorStyles, rng)
	juniorStyle := distuv.NewCategorical(g.juniorStyles, rng)

	consumers := make([]audience.Consumer, 0, n)
	for i := 0; i < n; i++ {
		a := audience.ClampAge(int(math.Round(age.Rand())))
		preferred := content.Categories[int(category.Rand())]
		minutes := availableTime.Rand()
		level := interest.Rand()

		styleDist := juniorStyle
		if a >= g.config.Styles.AgeThreshold {
			styleDist = seniorStyle
		}
		style := content.Styles[int(styleDist.Rand())]

		consumers = append(consumers, audience.NewConsumer(a, preferred, minutes, level, style))
	}
	return consumers, nil
}
