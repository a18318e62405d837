package experiment

import (
	"encoding/json"
	"strconv"

	"absim/domain/core"
)

// Variant identifies one experiment arm
type Variant string

const (
	VariantA Variant = "A" // baseline
	VariantB Variant = "B" // treatment
)

// DefaultVariants is the reference arm order: A runs before B
var DefaultVariants = []Variant{VariantA, VariantB}

// Outcome is the record of one consumer-by-variant trial. DwellTime and
// Bounced carry meaning only when Clicked is true.
type Outcome struct {
	Variant   Variant `json:"variant"`
	ItemID    int     `json:"item_id"`
	Clicked   bool    `json:"clicked"`
	DwellTime float64 `json:"dwell_time,omitempty"`
	Bounced   bool    `json:"bounced,omitempty"`
}

// Estimate is a measured value that may be undefined. An undefined
// Estimate never stands in for a real zero measurement.
type Estimate struct {
	Value   float64
	Defined bool
}

// Defined wraps a measured value
func Defined(v float64) Estimate {
	return Estimate{Value: v, Defined: true}
}

// Undefined is the estimate of a metric with no observations behind it
func Undefined() Estimate {
	return Estimate{}
}

// Get returns the value, or core.ErrUndefinedMetric when undefined
func (e Estimate) Get() (float64, error) {
	if !e.Defined {
		return 0, core.ErrUndefinedMetric
	}
	return e.Value, nil
}

// String formats the value, or "undefined"
func (e Estimate) String() string {
	if !e.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(e.Value, 'f', 4, 64)
}

// MarshalJSON encodes an undefined estimate as null
func (e Estimate) MarshalJSON() ([]byte, error) {
	if !e.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(e.Value)
}

// UnmarshalJSON decodes null as undefined
func (e *Estimate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*e = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = Defined(v)
	return nil
}

// MetricSummary is the arm-level reduction of outcome records
type MetricSummary struct {
	Variant    Variant  `json:"variant"`
	Trials     int      `json:"trials"`
	Clicks     int      `json:"clicks"`
	Bounces    int      `json:"bounces"`
	CTR        Estimate `json:"ctr"`
	MeanDwell  Estimate `json:"mean_dwell"`
	BounceRate Estimate `json:"bounce_rate"`
}

// SummaryTable has one row per variant, in run order
type SummaryTable []MetricSummary

// Hash fingerprints the table for determinism checks
func (t SummaryTable) Hash() core.Hash {
	rows := make([][]interface{}, 0, len(t))
	for _, s := range t {
		rows = append(rows, []interface{}{
			string(s.Variant), s.Trials, s.Clicks, s.Bounces,
			s.CTR.Defined, s.CTR.Value,
			s.MeanDwell.Defined, s.MeanDwell.Value,
			s.BounceRate.Defined, s.BounceRate.Value,
		})
	}
	return core.ComputeTableHash(rows)
}

// Lookup finds the summary for a variant
func (t SummaryTable) Lookup(v Variant) (MetricSummary, bool) {
	for _, s := range t {
		if s.Variant == v {
			return s, true
		}
	}
	return MetricSummary{}, false
}
