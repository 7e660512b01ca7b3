// utils/csv.go - CSV export formatting
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column describes one exported column: a header and an accessor pulling the
// value out of a row.
type Column[T any] struct {
	Header string
	Value  func(row T) interface{}
}

// ToCSV serializes rows using the column spec. The header row always comes
// first. Numeric values are written raw (no currency formatting) so the
// export stays machine-readable. Free-text values are not quoted or escaped;
// embedded commas will misparse downstream.
func ToCSV[T any](rows []T, columns []Column[T]) string {
	var b strings.Builder

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	b.WriteString(strings.Join(headers, ","))
	b.WriteString("\n")

	for _, row := range rows {
		fields := make([]string, len(columns))
		for i, col := range columns {
			fields[i] = formatCSVValue(col.Value(row))
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}

	return b.String()
}

func formatCSVValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprint(val)
	}
}

// ExportFilename builds the download name for a report, e.g.
// "department-analytics-2026-08-28.csv".
func ExportFilename(report string, t time.Time) string {
	return fmt.Sprintf("%s-%s.csv", report, t.Format("2006-01-02"))
}
