package excel

// Sheet is one exported table
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Report is the set of sheets written to one workbook
type Report struct {
	Sheets []Sheet
}

// RawRowData represents a row of read-back data as string key-value pairs
type RawRowData map[string]string

// ExcelData represents one sheet read back from disk
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}
