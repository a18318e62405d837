package app

import (
	"fmt"

	"absim/domain/core"
	"absim/domain/experiment"
	"absim/internal/metrics"
	"absim/ports"
)

// EvaluatorService compares two arms on every metric with three test
// families side by side. No result overrides another.
//
// The arms come from the same consumer pool, so they are not independent
// samples. The tests treat them as independent anyway.
type EvaluatorService struct {
	proportion  ports.ProportionTest
	means       ports.MeanDifferenceTest
	association ports.AssociationTest
}

// NewEvaluatorService creates an evaluator from the three tests
func NewEvaluatorService(proportion ports.ProportionTest, means ports.MeanDifferenceTest, association ports.AssociationTest) *EvaluatorService {
	return &EvaluatorService{
		proportion:  proportion,
		means:       means,
		association: association,
	}
}

// armCounts is the input of one metric row: success counts for the
// proportion and chi-square tests, raw series for the t-test
type armCounts struct {
	successesA, trialsA int
	successesB, trialsB int
	seriesA, seriesB    []float64
}

// Evaluate builds the evaluation table for arms a (baseline) and b.
// Unmeasurable cells are returned as undefined results; only parameter or
// internal failures are returned as errors.
func (s *EvaluatorService) Evaluate(a, b metrics.Arm) (experiment.EvaluationTable, error) {
	table := make(experiment.EvaluationTable, 0, len(experiment.Metrics))
	for _, metric := range experiment.Metrics {
		row, err := s.evaluateMetric(metric, a, b)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", metric, err)
		}
		table = append(table, row)
	}
	return table, nil
}

func (s *EvaluatorService) evaluateMetric(metric experiment.MetricName, a, b metrics.Arm) (experiment.EvaluationRow, error) {
	counts, err := countsFor(metric, a, b)
	if err != nil {
		if !core.IsUndefinedResult(err) {
			return experiment.EvaluationRow{}, err
		}
		return experiment.EvaluationRow{
			Metric:    metric,
			ZTest:     experiment.UndefinedResult(experiment.TestZ, err),
			TTest:     experiment.UndefinedResult(experiment.TestT, err),
			ChiSquare: experiment.UndefinedResult(experiment.TestChiSquare, err),
		}, nil
	}

	row := experiment.EvaluationRow{Metric: metric}

	row.ZTest, err = undefinedOnDegeneracy(s.proportion.Name(),
		func() (experiment.TestResult, error) {
			return s.proportion.CompareProportions(counts.successesA, counts.trialsA, counts.successesB, counts.trialsB)
		})
	if err != nil {
		return row, err
	}

	row.TTest, err = undefinedOnDegeneracy(s.means.Name(),
		func() (experiment.TestResult, error) {
			return s.means.CompareMeans(counts.seriesA, counts.seriesB)
		})
	if err != nil {
		return row, err
	}

	row.ChiSquare, err = undefinedOnDegeneracy(s.association.Name(),
		func() (experiment.TestResult, error) {
			return s.association.TestIndependence([][]int{
				{counts.successesA, counts.trialsA - counts.successesA},
				{counts.successesB, counts.trialsB - counts.successesB},
			})
		})
	return row, err
}

// countsFor extracts the per-metric inputs. Dwell time and bounce rate are
// measured over clicks, so an arm without clicks makes the row undefined.
func countsFor(metric experiment.MetricName, a, b metrics.Arm) (armCounts, error) {
	switch metric {
	case experiment.MetricCTR:
		return armCounts{
			successesA: a.Clicks(), trialsA: a.Trials(),
			successesB: b.Clicks(), trialsB: b.Trials(),
			seriesA: a.ClickIndicators, seriesB: b.ClickIndicators,
		}, nil

	case experiment.MetricMeanDwell:
		if err := requireClicks(a, b); err != nil {
			return armCounts{}, err
		}
		aboveA, err := metrics.CountAboveMean(a.DwellTimes)
		if err != nil {
			return armCounts{}, err
		}
		aboveB, err := metrics.CountAboveMean(b.DwellTimes)
		if err != nil {
			return armCounts{}, err
		}
		return armCounts{
			successesA: aboveA, trialsA: a.Clicks(),
			successesB: aboveB, trialsB: b.Clicks(),
			seriesA: a.DwellTimes, seriesB: b.DwellTimes,
		}, nil

	case experiment.MetricBounceRate:
		if err := requireClicks(a, b); err != nil {
			return armCounts{}, err
		}
		return armCounts{
			successesA: a.Bounces(), trialsA: a.Clicks(),
			successesB: b.Bounces(), trialsB: b.Clicks(),
			seriesA: a.BounceIndicators, seriesB: b.BounceIndicators,
		}, nil
	}
	return armCounts{}, core.NewParameterError("metric", fmt.Sprintf("unknown metric %q", metric))
}

func requireClicks(arms ...metrics.Arm) error {
	for _, arm := range arms {
		if arm.Clicks() == 0 {
			return fmt.Errorf("%w (variant %s)", core.ErrNoClicks, arm.Variant)
		}
	}
	return nil
}

// undefinedOnDegeneracy runs a test and turns unmeasurable input into an
// undefined result
func undefinedOnDegeneracy(name experiment.TestName, run func() (experiment.TestResult, error)) (experiment.TestResult, error) {
	result, err := run()
	if err == nil {
		return result, nil
	}
	if core.IsUndefinedResult(err) {
		return experiment.UndefinedResult(name, err), nil
	}
	return experiment.TestResult{}, err
}
