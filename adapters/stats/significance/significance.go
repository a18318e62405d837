// Package significance implements the three test families used to compare
// the two arms of an experiment: a two-sample proportion z-test, a
// two-sample t-test and a chi-square test of independence.
//
// Every test returns an experiment.TestResult. Inputs that make a test
// undefined (empty arms, zero variance, zero expected cells) come back as
// errors wrapping core.ErrNumericDegeneracy so callers can surface them as
// undefined rather than as a NaN p-value.
package significance

import (
	"fmt"
	"math"

	"absim/domain/core"
	"absim/domain/experiment"
)

// ContingencyTable builds the 2x2 table (arm A, arm B) x (successes, failures)
func ContingencyTable(successesA, trialsA, successesB, trialsB int) [][]int {
	return [][]int{
		{successesA, trialsA - successesA},
		{successesB, trialsB - successesB},
	}
}

func validateCounts(arm string, successes, trials int) error {
	if trials < 0 {
		return core.NewParameterError("trials "+arm, fmt.Sprintf("must be >= 0, got %d", trials))
	}
	if successes < 0 || successes > trials {
		return core.NewParameterError("successes "+arm, fmt.Sprintf("must be in [0,%d], got %d", trials, successes))
	}
	return nil
}

// defined builds a result, refusing to hand back a non-finite p-value
func defined(test experiment.TestName, statistic, pValue float64) (experiment.TestResult, error) {
	if math.IsNaN(statistic) || math.IsNaN(pValue) || math.IsInf(statistic, 0) {
		return experiment.TestResult{}, fmt.Errorf("%w: %s produced a non-finite statistic", core.ErrNumericDegeneracy, test)
	}
	return experiment.TestResult{
		Test:      test,
		Statistic: statistic,
		PValue:    clampUnit(pValue),
		Defined:   true,
	}, nil
}

func clampUnit(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}
