package utils

import (
	"strings"
	"testing"
	"time"
)

type exportRow struct {
	Name    string
	Amount  float64
	Overdue int
}

func exportColumns() []Column[exportRow] {
	return []Column[exportRow]{
		{Header: "name", Value: func(r exportRow) interface{} { return r.Name }},
		{Header: "amount", Value: func(r exportRow) interface{} { return r.Amount }},
		{Header: "overdue", Value: func(r exportRow) interface{} { return r.Overdue }},
	}
}

func TestToCSVHeaderComesFirst(t *testing.T) {
	out := ToCSV(nil, exportColumns())
	if out != "name,amount,overdue\n" {
		t.Fatalf("empty export must still carry the header row, got %q", out)
	}
}

func TestToCSVWritesRawNumerics(t *testing.T) {
	rows := []exportRow{
		{Name: "CSE", Amount: 240000.5, Overdue: 12},
		{Name: "ECE", Amount: 180000, Overdue: 0},
	}
	out := ToCSV(rows, exportColumns())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[1] != "CSE,240000.5,12" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if lines[2] != "ECE,180000,0" {
		t.Fatalf("integral float must not grow a decimal point: %q", lines[2])
	}
}

func TestToCSVRoundTripsUnderNaiveSplit(t *testing.T) {
	rows := []exportRow{
		{Name: "Asha Verma", Amount: 1500, Overdue: 1},
		{Name: "Rahul Nair", Amount: 2000, Overdue: 0},
	}
	columns := exportColumns()
	out := ToCSV(rows, columns)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for i, row := range rows {
		fields := strings.Split(lines[i+1], ",")
		if len(fields) != len(columns) {
			t.Fatalf("row %d split into %d fields, want %d", i, len(fields), len(columns))
		}
		if fields[0] != row.Name {
			t.Fatalf("row %d name mismatch: %q", i, fields[0])
		}
	}
}

func TestFormatCSVValueHandlesNilAndTime(t *testing.T) {
	if got := formatCSVValue(nil); got != "" {
		t.Fatalf("nil must render empty, got %q", got)
	}
	due := time.Date(2026, 9, 15, 10, 30, 0, 0, time.Local)
	if got := formatCSVValue(due); got != "2026-09-15" {
		t.Fatalf("time must render date-only, got %q", got)
	}
	if got := formatCSVValue(true); got != "true" {
		t.Fatalf("bool mismatch: %q", got)
	}
}

func TestExportFilename(t *testing.T) {
	when := time.Date(2026, 8, 28, 23, 59, 0, 0, time.Local)
	if got := ExportFilename("department-analytics", when); got != "department-analytics-2026-08-28.csv" {
		t.Fatalf("unexpected filename: %q", got)
	}
}
