package significance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"absim/domain/core"
	"absim/domain/experiment"
)

// ZTest is the two-sided two-sample proportion test with pooled variance
type ZTest struct{}

// NewZTest creates a new proportion z-test
func NewZTest() *ZTest {
	return &ZTest{}
}

// Name returns the test name
func (t *ZTest) Name() experiment.TestName {
	return experiment.TestZ
}

// Description returns a human-readable description
func (t *ZTest) Description() string {
	return "Two-sample z-test for a difference in proportions (pooled variance, two-sided)"
}

// CompareProportions tests H0: pA == pB
func (t *ZTest) CompareProportions(successesA, trialsA, successesB, trialsB int) (experiment.TestResult, error) {
	if err := validateCounts("A", successesA, trialsA); err != nil {
		return experiment.TestResult{}, err
	}
	if err := validateCounts("B", successesB, trialsB); err != nil {
		return experiment.TestResult{}, err
	}
	if trialsA == 0 || trialsB == 0 {
		return experiment.TestResult{}, fmt.Errorf("%w: z-test needs trials in both arms (A=%d, B=%d)",
			core.ErrInsufficientData, trialsA, trialsB)
	}

	nA, nB := float64(trialsA), float64(trialsB)
	pA := float64(successesA) / nA
	pB := float64(successesB) / nB

	pooled := float64(successesA+successesB) / (nA + nB)
	variance := pooled * (1 - pooled) * (1/nA + 1/nB)
	if variance <= 0 {
		return experiment.TestResult{}, fmt.Errorf("%w (p=%.4f)", core.ErrDegenerateProportion, pooled)
	}

	z := (pA - pB) / math.Sqrt(variance)
	pValue := 2 * distuv.UnitNormal.Survival(math.Abs(z))

	return defined(t.Name(), z, pValue)
}
