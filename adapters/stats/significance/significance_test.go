package significance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absim/domain/core"
	"absim/domain/experiment"
)

func TestZTest_KnownValue(t *testing.T) {
	res, err := NewZTest().CompareProportions(30, 100, 20, 100)
	require.NoError(t, err)

	assert.True(t, res.Defined)
	assert.Equal(t, experiment.TestZ, res.Test)
	assert.InDelta(t, 1.63299, res.Statistic, 1e-4)
	assert.InDelta(t, 0.10247, res.PValue, 1e-3)
}

func TestZTest_Symmetric(t *testing.T) {
	ab, err := NewZTest().CompareProportions(30, 100, 20, 100)
	require.NoError(t, err)
	ba, err := NewZTest().CompareProportions(20, 100, 30, 100)
	require.NoError(t, err)

	assert.InDelta(t, -ab.Statistic, ba.Statistic, 1e-12)
	assert.InDelta(t, ab.PValue, ba.PValue, 1e-12)
}

func TestZTest_Degenerate(t *testing.T) {
	tests := []struct {
		name           string
		sA, nA, sB, nB int
		wantIs         error
	}{
		{"no successes anywhere", 0, 50, 0, 50, core.ErrDegenerateProportion},
		{"all successes", 50, 50, 40, 40, core.ErrDegenerateProportion},
		{"empty arm", 0, 0, 3, 10, core.ErrInsufficientData},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewZTest().CompareProportions(tc.sA, tc.nA, tc.sB, tc.nB)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantIs)
			assert.True(t, core.IsNumericDegeneracy(err))
		})
	}
}

func TestZTest_InvalidCounts(t *testing.T) {
	_, err := NewZTest().CompareProportions(11, 10, 1, 10)
	require.Error(t, err)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestTTest_PooledKnownValue(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 3, 4, 5, 6}

	res, err := NewTTest(true).CompareMeans(a, b)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, res.Statistic, 1e-12)
	assert.InDelta(t, 0.3465935, res.PValue, 1e-5)
}

func TestTTest_Welch(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{2, 4, 6, 8, 10}

	welch, err := NewTTest(false).CompareMeans(a, b)
	require.NoError(t, err)
	pooled, err := NewTTest(true).CompareMeans(a, b)
	require.NoError(t, err)

	assert.InDelta(t, -3/math.Sqrt(2.5), welch.Statistic, 1e-9)
	assert.Greater(t, welch.PValue, 0.09)
	assert.Less(t, welch.PValue, 0.13)
	// fewer degrees of freedom gives a heavier tail
	assert.Greater(t, welch.PValue, pooled.PValue)
}

func TestTTest_Degenerate(t *testing.T) {
	_, err := NewTTest(true).CompareMeans([]float64{1, 1, 1}, []float64{1, 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrZeroVariance)

	_, err = NewTTest(true).CompareMeans([]float64{1}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInsufficientData)

	_, err = NewTTest(false).CompareMeans(nil, nil)
	assert.True(t, core.IsNumericDegeneracy(err))
}

func TestTTest_ConstantButDifferentArmsIsDegenerate(t *testing.T) {
	// zero variance in both arms leaves the statistic undefined even when
	// the means differ
	_, err := NewTTest(true).CompareMeans([]float64{0, 0, 0}, []float64{1, 1, 1})
	assert.ErrorIs(t, err, core.ErrZeroVariance)
}

func TestChiSquare_YatesKnownValue(t *testing.T) {
	res, err := NewChiSquareTest(true).TestIndependence(ContingencyTable(30, 100, 20, 100))
	require.NoError(t, err)

	assert.InDelta(t, 2.16, res.Statistic, 1e-9)
	assert.InDelta(t, 0.1416, res.PValue, 1e-3)
}

func TestChiSquare_UncorrectedMatchesZTest(t *testing.T) {
	chi, err := NewChiSquareTest(false).TestIndependence(ContingencyTable(30, 100, 20, 100))
	require.NoError(t, err)
	z, err := NewZTest().CompareProportions(30, 100, 20, 100)
	require.NoError(t, err)

	assert.InDelta(t, z.Statistic*z.Statistic, chi.Statistic, 1e-9)
	assert.InDelta(t, z.PValue, chi.PValue, 1e-9)
}

func TestChiSquare_CorrectionNeverOvershoots(t *testing.T) {
	// observed equals expected: the correction must not push the statistic above zero
	res, err := NewChiSquareTest(true).TestIndependence([][]int{{10, 10}, {10, 10}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Statistic)
	assert.Equal(t, 1.0, res.PValue)
}

func TestChiSquare_ZeroExpectedCell(t *testing.T) {
	_, err := NewChiSquareTest(true).TestIndependence(ContingencyTable(0, 10, 0, 12))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrZeroExpectedCell)
	assert.True(t, core.IsUndefinedResult(err))
}

func TestChiSquare_InvalidTables(t *testing.T) {
	tests := []struct {
		name  string
		table [][]int
	}{
		{"empty", [][]int{}},
		{"ragged", [][]int{{1, 2}, {3}}},
		{"negative", [][]int{{1, -2}, {3, 4}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewChiSquareTest(true).TestIndependence(tc.table)
			require.Error(t, err)
			assert.True(t, core.IsInvalidParameter(err))
		})
	}
}

func TestContingencyTable(t *testing.T) {
	assert.Equal(t, [][]int{{3, 7}, {5, 15}}, ContingencyTable(3, 10, 5, 20))
}
