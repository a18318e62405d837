package significance

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"absim/domain/core"
	"absim/domain/experiment"
)

// TTest is the two-sided two-sample t-test. With EqualVar it pools the
// variances (Student); otherwise it uses Welch's correction.
type TTest struct {
	EqualVar bool
}

// NewTTest creates a new t-test
func NewTTest(equalVar bool) *TTest {
	return &TTest{EqualVar: equalVar}
}

// Name returns the test name
func (t *TTest) Name() experiment.TestName {
	return experiment.TestT
}

// Description returns a human-readable description
func (t *TTest) Description() string {
	if t.EqualVar {
		return "Two-sample Student t-test with pooled variance (two-sided)"
	}
	return "Two-sample Welch t-test with unequal variances (two-sided)"
}

// CompareMeans tests H0: mean(a) == mean(b). Independence of the samples
// is assumed, not checked.
func (t *TTest) CompareMeans(a, b []float64) (experiment.TestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return experiment.TestResult{}, fmt.Errorf("%w: t-test needs at least 2 observations per arm (A=%d, B=%d)",
			core.ErrInsufficientData, len(a), len(b))
	}

	meanA, err := stats.Mean(a)
	if err != nil {
		return experiment.TestResult{}, err
	}
	meanB, err := stats.Mean(b)
	if err != nil {
		return experiment.TestResult{}, err
	}
	varA, err := stats.SampleVariance(a)
	if err != nil {
		return experiment.TestResult{}, err
	}
	varB, err := stats.SampleVariance(b)
	if err != nil {
		return experiment.TestResult{}, err
	}

	nA, nB := float64(len(a)), float64(len(b))

	var se, df float64
	if t.EqualVar {
		df = nA + nB - 2
		pooled := ((nA-1)*varA + (nB-1)*varB) / df
		se = math.Sqrt(pooled * (1/nA + 1/nB))
	} else {
		vA, vB := varA/nA, varB/nB
		se = math.Sqrt(vA + vB)
		// Welch-Satterthwaite
		df = (vA + vB) * (vA + vB) / (vA*vA/(nA-1) + vB*vB/(nB-1))
	}

	if se == 0 || math.IsNaN(se) {
		return experiment.TestResult{}, fmt.Errorf("%w: both arms are constant (mean A=%.4f, mean B=%.4f)",
			core.ErrZeroVariance, meanA, meanB)
	}

	tStat := (meanA - meanB) / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * dist.Survival(math.Abs(tStat))

	return defined(t.Name(), tStat, pValue)
}
