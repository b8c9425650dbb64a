package output

import (
	"encoding/csv"
	"io"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
)

// WriteCSV writes the header row and data rows as text.
func WriteCSV(w io.Writer, table *models.DataTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Header); err != nil {
		return err
	}
	record := make([]string, table.Width())
	for _, row := range table.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = row[i].String()
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
