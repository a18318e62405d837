package significance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"absim/domain/core"
	"absim/domain/experiment"
)

// ChiSquareTest is Pearson's chi-square test of independence. With
// YatesCorrection, tables with one degree of freedom get the continuity
// correction.
type ChiSquareTest struct {
	YatesCorrection bool
}

// NewChiSquareTest creates a new chi-square test
func NewChiSquareTest(yatesCorrection bool) *ChiSquareTest {
	return &ChiSquareTest{YatesCorrection: yatesCorrection}
}

// Name returns the test name
func (t *ChiSquareTest) Name() experiment.TestName {
	return experiment.TestChiSquare
}

// Description returns a human-readable description
func (t *ChiSquareTest) Description() string {
	if t.YatesCorrection {
		return "Chi-square test of independence with Yates continuity correction"
	}
	return "Chi-square test of independence"
}

// TestIndependence computes the statistic and p-value of a contingency table
func (t *ChiSquareTest) TestIndependence(table [][]int) (experiment.TestResult, error) {
	rows := len(table)
	if rows == 0 || len(table[0]) == 0 {
		return experiment.TestResult{}, core.NewParameterError("contingency table", "is empty")
	}
	cols := len(table[0])

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	total := 0.0
	for i, row := range table {
		if len(row) != cols {
			return experiment.TestResult{}, core.NewParameterError("contingency table", "is not rectangular")
		}
		for j, v := range row {
			if v < 0 {
				return experiment.TestResult{}, core.NewParameterError("contingency table", fmt.Sprintf("has negative cell [%d][%d]=%d", i, j, v))
			}
			rowTotals[i] += float64(v)
			colTotals[j] += float64(v)
			total += float64(v)
		}
	}

	expected := make([][]float64, rows)
	for i := range expected {
		expected[i] = make([]float64, cols)
		for j := range expected[i] {
			e := 0.0
			if total > 0 {
				e = rowTotals[i] * colTotals[j] / total
			}
			if e == 0 {
				return experiment.TestResult{}, fmt.Errorf("%w at [%d][%d]", core.ErrZeroExpectedCell, i, j)
			}
			expected[i][j] = e
		}
	}

	df := (rows - 1) * (cols - 1)
	if df == 0 {
		return defined(t.Name(), 0, 1)
	}

	correct := t.YatesCorrection && df == 1

	chiSq := 0.0
	for i := range table {
		for j := range table[i] {
			observed := float64(table[i][j])
			e := expected[i][j]
			if correct {
				// shift observed toward expected by at most 0.5
				diff := e - observed
				observed += math.Copysign(math.Min(0.5, math.Abs(diff)), diff)
			}
			chiSq += (observed - e) * (observed - e) / e
		}
	}

	dist := distuv.ChiSquared{K: float64(df)}
	return defined(t.Name(), chiSq, dist.Survival(chiSq))
}
