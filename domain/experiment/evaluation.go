package experiment

import (
	"encoding/json"
	"strconv"

	"absim/domain/core"
)

// MetricName names one of the three evaluated metrics
type MetricName string

const (
	MetricCTR        MetricName = "ctr"
	MetricMeanDwell  MetricName = "mean_dwell"
	MetricBounceRate MetricName = "bounce_rate"
)

// Metrics is the evaluation row order
var Metrics = []MetricName{MetricCTR, MetricMeanDwell, MetricBounceRate}

// Label returns the display name of a metric
func (m MetricName) Label() string {
	switch m {
	case MetricCTR:
		return "CTR"
	case MetricMeanDwell:
		return "Mean Dwell Time"
	case MetricBounceRate:
		return "Bounce Rate"
	}
	return string(m)
}

// TestName names one of the three test families
type TestName string

const (
	TestZ         TestName = "z_test"
	TestT         TestName = "t_test"
	TestChiSquare TestName = "chi_square"
)

// Tests is the evaluation column order
var Tests = []TestName{TestZ, TestT, TestChiSquare}

// TestResult is the output of one significance test. When Defined is false
// the statistic and p-value carry no meaning and Reason says why.
type TestResult struct {
	Test      TestName `json:"test"`
	Statistic float64  `json:"statistic"`
	PValue    float64  `json:"p_value"`
	Defined   bool     `json:"defined"`
	Reason    string   `json:"reason,omitempty"`
}

// UndefinedResult records a test that could not produce a p-value
func UndefinedResult(test TestName, err error) TestResult {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	return TestResult{Test: test, Reason: reason}
}

// Significant reports p < alpha; undefined results are never significant
func (r TestResult) Significant(alpha float64) bool {
	return r.Defined && r.PValue < alpha
}

// PValueString formats the p-value, or "undefined"
func (r TestResult) PValueString() string {
	if !r.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(r.PValue, 'g', 6, 64)
}

// MarshalJSON writes p_value and statistic as null when undefined
func (r TestResult) MarshalJSON() ([]byte, error) {
	type wire struct {
		Test      TestName `json:"test"`
		Statistic *float64 `json:"statistic"`
		PValue    *float64 `json:"p_value"`
		Reason    string   `json:"reason,omitempty"`
	}
	w := wire{Test: r.Test, Reason: r.Reason}
	if r.Defined {
		w.Statistic = &r.Statistic
		w.PValue = &r.PValue
	}
	return json.Marshal(w)
}

// EvaluationRow holds the three p-values of one metric side by side
type EvaluationRow struct {
	Metric    MetricName `json:"metric"`
	ZTest     TestResult `json:"z_test"`
	TTest     TestResult `json:"t_test"`
	ChiSquare TestResult `json:"chi_square"`
}

// Results returns the row's test results in column order
func (r EvaluationRow) Results() []TestResult {
	return []TestResult{r.ZTest, r.TTest, r.ChiSquare}
}

// EvaluationTable has one row per metric, in Metrics order
type EvaluationTable []EvaluationRow

// Row finds the row for a metric
func (t EvaluationTable) Row(m MetricName) (EvaluationRow, bool) {
	for _, r := range t {
		if r.Metric == m {
			return r, true
		}
	}
	return EvaluationRow{}, false
}

// Hash fingerprints the table for determinism checks
func (t EvaluationTable) Hash() core.Hash {
	rows := make([][]interface{}, 0, len(t))
	for _, r := range t {
		row := []interface{}{string(r.Metric)}
		for _, res := range r.Results() {
			row = append(row, res.Defined, res.Statistic, res.PValue)
		}
		rows = append(rows, row)
	}
	return core.ComputeTableHash(rows)
}
