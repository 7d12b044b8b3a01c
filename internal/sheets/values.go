package sheets

import (
	"fmt"
	"time"

	"github.com/gerhard-ee/sheetsync/internal/database"
)

// Grid converts a result set into the cell grid the Sheets API
// accepts: one header row followed by the data rows.
func Grid(rs *database.ResultSet) [][]interface{} {
	values := make([][]interface{}, 0, len(rs.Rows)+1)

	header := make([]interface{}, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = col
	}
	values = append(values, header)

	for _, row := range rs.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = cellValue(v)
		}
		values = append(values, cells)
	}

	return values
}

// cellValue converts a scanned database value into a type the Sheets
// JSON encoder accepts.
func cellValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		return string(val)
	case string, bool, int, int32, int64, float32, float64:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
