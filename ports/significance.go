package ports

import (
	"absim/domain/experiment"
)

// ProportionTest compares success counts between two arms
type ProportionTest interface {
	Name() experiment.TestName
	CompareProportions(successesA, trialsA, successesB, trialsB int) (experiment.TestResult, error)
}

// MeanDifferenceTest compares the means of two independent samples
type MeanDifferenceTest interface {
	Name() experiment.TestName
	CompareMeans(a, b []float64) (experiment.TestResult, error)
}

// AssociationTest tests independence in a contingency table whose rows are
// arms and whose columns are (successes, failures)
type AssociationTest interface {
	Name() experiment.TestName
	TestIndependence(table [][]int) (experiment.TestResult, error)
}
