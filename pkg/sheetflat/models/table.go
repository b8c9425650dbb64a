package models

// DataTable is the flattened result: one header label per column and the
// data rows below the header region, densely indexed from 0.
type DataTable struct {
	// Header has one entry per sheet column; entries may be "".
	Header []string `json:"header"`
	// Rows holds the kept data rows; each has len(Header) values.
	Rows [][]Value `json:"rows"`
}

// Width returns the number of columns.
func (t *DataTable) Width() int {
	return len(t.Header)
}

// Summary reports the outcome of one cleaning run.
type Summary struct {
	// RunID identifies the run.
	RunID string `json:"run_id"`
	// InputPath is the source file (empty when cleaning an in-memory grid).
	InputPath string `json:"input_path,omitempty"`
	// OutputPath is the written file.
	OutputPath string `json:"output_path,omitempty"`
	// Sheet is the processed worksheet.
	Sheet string `json:"sheet"`
	// Strategy is the boundary strategy used.
	Strategy string `json:"strategy"`
	// Policy is the header combine policy used.
	Policy string `json:"policy"`
	// HeaderRow is the detected boundary H.
	HeaderRow int `json:"header_row"`
	// LastHeaderRow is the last row scanned for header fragments.
	LastHeaderRow int `json:"last_header_row"`
	// DataStartRow is the first sheet row read as data.
	DataStartRow int `json:"data_start_row"`
	// Header is the final flat header.
	Header []string `json:"header"`
	// RowsKept is the number of data rows written.
	RowsKept int `json:"rows_kept"`
	// RowsDropped is the number of all-empty rows removed.
	RowsDropped int `json:"rows_dropped"`
	// Duration is the wall time of the run.
	Duration string `json:"duration,omitempty"`
}
