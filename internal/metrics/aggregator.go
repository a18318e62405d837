package metrics

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"absim/domain/core"
	"absim/domain/experiment"
)

// Arm holds the per-unit series of one variant that the aggregator and the
// significance tests consume
type Arm struct {
	Variant experiment.Variant

	// ClickIndicators has one 0/1 entry per trial
	ClickIndicators []float64
	// DwellTimes and BounceIndicators have one entry per click
	DwellTimes       []float64
	BounceIndicators []float64
}

// Collect splits outcome records into per-unit series. Records of other
// variants are skipped.
func Collect(variant experiment.Variant, outcomes []experiment.Outcome) Arm {
	arm := Arm{
		Variant:         variant,
		ClickIndicators: make([]float64, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		if o.Variant != variant {
			continue
		}
		if !o.Clicked {
			arm.ClickIndicators = append(arm.ClickIndicators, 0)
			continue
		}
		arm.ClickIndicators = append(arm.ClickIndicators, 1)
		arm.DwellTimes = append(arm.DwellTimes, o.DwellTime)
		if o.Bounced {
			arm.BounceIndicators = append(arm.BounceIndicators, 1)
		} else {
			arm.BounceIndicators = append(arm.BounceIndicators, 0)
		}
	}
	return arm
}

// Trials is the number of records in the arm
func (a Arm) Trials() int {
	return len(a.ClickIndicators)
}

// Clicks is the number of clicked records
func (a Arm) Clicks() int {
	return len(a.DwellTimes)
}

// Bounces is the number of clicked records that bounced
func (a Arm) Bounces() int {
	n := 0
	for _, b := range a.BounceIndicators {
		if b == 1 {
			n++
		}
	}
	return n
}

// Summarize reduces an arm to its summary. CTR is undefined without trials;
// mean dwell and bounce rate are undefined without clicks.
func Summarize(arm Arm) experiment.MetricSummary {
	summary := experiment.MetricSummary{
		Variant:    arm.Variant,
		Trials:     arm.Trials(),
		Clicks:     arm.Clicks(),
		Bounces:    arm.Bounces(),
		CTR:        experiment.Undefined(),
		MeanDwell:  experiment.Undefined(),
		BounceRate: experiment.Undefined(),
	}

	if summary.Trials > 0 {
		summary.CTR = experiment.Defined(float64(summary.Clicks) / float64(summary.Trials))
	}
	if summary.Clicks > 0 {
		mean, err := stats.Mean(arm.DwellTimes)
		if err == nil {
			summary.MeanDwell = experiment.Defined(mean)
		}
		summary.BounceRate = experiment.Defined(float64(summary.Bounces) / float64(summary.Clicks))
	}
	return summary
}

// Aggregate collects and summarizes one variant's outcomes
func Aggregate(variant experiment.Variant, outcomes []experiment.Outcome) experiment.MetricSummary {
	return Summarize(Collect(variant, outcomes))
}

// CountAboveMean binarizes values at their own mean and counts those
// strictly above it. An empty series is UndefinedMetric.
func CountAboveMean(values []float64) (int, error) {
	if len(values) == 0 {
		return 0, core.ErrNoClicks
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrUndefinedMetric, err)
	}
	n := 0
	for _, v := range values {
		if v > mean {
			n++
		}
	}
	return n, nil
}
