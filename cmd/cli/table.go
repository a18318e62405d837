package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"absim/adapters/excel"
	"absim/domain/experiment"
	"absim/domain/run"
	"absim/internal/errors"
)

var (
	headerColor    = color.New(color.Bold, color.FgCyan)
	significant    = color.New(color.FgGreen, color.Bold)
	undefinedColor = color.New(color.FgYellow)
	faint          = color.New(color.Faint)
	errorColor     = color.New(color.FgRed, color.Bold)
)

// cell is one table entry; style is applied after padding so escape codes
// do not disturb alignment
type cell struct {
	text  string
	style *color.Color
}

func plain(s string) cell { return cell{text: s} }

func printTable(w io.Writer, headers []string, rows [][]cell) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if i < len(widths) && len(c.text) > widths[i] {
				widths[i] = len(c.text)
			}
		}
	}

	parts := make([]string, len(headers))
	for i, h := range headers {
		parts[i] = headerColor.Sprint(pad(h, widths[i]))
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))

	for _, row := range rows {
		parts = parts[:0]
		for i, c := range row {
			text := pad(c.text, widths[i])
			if c.style != nil {
				text = c.style.Sprint(text)
			}
			parts = append(parts, text)
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func estimateCell(e experiment.Estimate) cell {
	if !e.Defined {
		return cell{text: e.String(), style: undefinedColor}
	}
	return plain(e.String())
}

func printSummary(w io.Writer, table experiment.SummaryTable) {
	rows := make([][]cell, 0, len(table))
	for _, s := range table {
		rows = append(rows, []cell{
			plain(string(s.Variant)),
			plain(fmt.Sprint(s.Trials)),
			plain(fmt.Sprint(s.Clicks)),
			estimateCell(s.CTR),
			estimateCell(s.MeanDwell),
			estimateCell(s.BounceRate),
		})
	}
	printTable(w, []string{"Variant", "Trials", "Clicks", "CTR", "Mean Dwell", "Bounce Rate"}, rows)
}

func printEvaluation(w io.Writer, table experiment.EvaluationTable, alpha float64) {
	rows := make([][]cell, 0, len(table))
	for _, r := range table {
		row := []cell{plain(r.Metric.Label())}
		for _, res := range r.Results() {
			c := plain(res.PValueString())
			switch {
			case !res.Defined:
				c.style = undefinedColor
			case res.Significant(alpha):
				c.text += " *"
				c.style = significant
			}
			row = append(row, c)
		}
		rows = append(rows, row)
	}
	printTable(w, []string{"Metric", "Z-test p", "T-test p", "Chi-square p"}, rows)
	faint.Fprintf(w, "* p < %g\n", alpha)
}

func printSheet(w io.Writer, sheet excel.Sheet) {
	rows := make([][]cell, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		row := make([]cell, len(sheet.Headers))
		for i := range row {
			if i < len(r) {
				row[i] = plain(formatValue(r[i]))
			}
		}
		rows = append(rows, row)
	}
	printTable(w, sheet.Headers, rows)
}

func formatValue(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.4f", f)
	}
	return fmt.Sprint(v)
}

func printManifest(w io.Writer, m *run.RunManifest) {
	if m == nil {
		return
	}
	p := m.Fingerprint.Parameters
	faint.Fprintf(w, "run %s  seed=%d consumers=%d items=%d workers=%d fingerprint=%s\n",
		m.RunID, p.Seed, p.NumConsumers, p.NumItems, p.Workers, m.Fingerprint.Fingerprint.Short())
}

func errorText(err error) string {
	return errorColor.Sprintf("error [%s]: %v", errors.FromDomain(err).Code, err)
}
