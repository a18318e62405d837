package excel

import (
	"sort"

	"absim/domain/experiment"
	"absim/internal/population"
)

// Sheet names used by the report builders
const (
	SheetSummary    = "Summary"
	SheetEvaluation = "Evaluation"
	SheetPopulation = "Population"
	SheetItemMix    = "Items"

	undefinedCell = "undefined"
)

// SummarySheet lays out one row per variant
func SummarySheet(table experiment.SummaryTable) Sheet {
	sheet := Sheet{
		Name:    SheetSummary,
		Headers: []string{"variant", "trials", "clicks", "bounces", "ctr", "mean_dwell", "bounce_rate"},
	}
	for _, s := range table {
		sheet.Rows = append(sheet.Rows, []interface{}{
			string(s.Variant), s.Trials, s.Clicks, s.Bounces,
			estimateCell(s.CTR), estimateCell(s.MeanDwell), estimateCell(s.BounceRate),
		})
	}
	return sheet
}

// EvaluationSheet lays out one row per metric with the three p-values and
// their significance at alpha
func EvaluationSheet(table experiment.EvaluationTable, alpha float64) Sheet {
	sheet := Sheet{
		Name: SheetEvaluation,
		Headers: []string{
			"metric",
			"z_test_p", "t_test_p", "chi_square_p",
			"z_test_significant", "t_test_significant", "chi_square_significant",
		},
	}
	for _, row := range table {
		cells := []interface{}{row.Metric.Label()}
		results := row.Results()
		for _, res := range results {
			cells = append(cells, pValueCell(res))
		}
		for _, res := range results {
			cells = append(cells, res.Significant(alpha))
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet
}

// PopulationSheet lays out trait summaries followed by category and style
// counts
func PopulationSheet(desc population.Description) Sheet {
	sheet := Sheet{
		Name:    SheetPopulation,
		Headers: []string{"trait", "mean", "std_dev", "min", "max"},
	}
	traits := []struct {
		name    string
		summary population.TraitSummary
	}{
		{"age", desc.Age},
		{"available_time", desc.AvailableTime},
		{"interest", desc.Interest},
	}
	for _, tr := range traits {
		sheet.Rows = append(sheet.Rows, []interface{}{tr.name, tr.summary.Mean, tr.summary.StdDev, tr.summary.Min, tr.summary.Max})
	}
	sheet.Rows = append(sheet.Rows, []interface{}{"size", desc.Size})
	for _, k := range sortedKeys(desc.PreferredCategory) {
		sheet.Rows = append(sheet.Rows, []interface{}{"preferred_category:" + k, countOf(desc.PreferredCategory, k)})
	}
	for _, k := range sortedKeys(desc.StylePreference) {
		sheet.Rows = append(sheet.Rows, []interface{}{"style_preference:" + k, countOf(desc.StylePreference, k)})
	}
	return sheet
}

// ItemMixSheet lays out item counts per category
func ItemMixSheet(counts map[string]int) Sheet {
	sheet := Sheet{Name: SheetItemMix, Headers: []string{"category", "items"}}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sheet.Rows = append(sheet.Rows, []interface{}{k, counts[k]})
	}
	return sheet
}

func estimateCell(e experiment.Estimate) interface{} {
	if !e.Defined {
		return undefinedCell
	}
	return e.Value
}

func pValueCell(r experiment.TestResult) interface{} {
	if !r.Defined {
		return undefinedCell
	}
	return r.PValue
}

func sortedKeys[K ~string](m map[K]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

func countOf[K ~string](m map[K]int, key string) int {
	return m[K(key)]
}
