package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Numeric is a float64 that tolerates the MySQL driver handing back DECIMAL
// aggregates as strings or []byte. Coercion happens once here, at the scan
// boundary, instead of ad hoc at every consumption site. NULL scans as 0 so
// downstream sums never see a missing value.
type Numeric float64

func (n *Numeric) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*n = 0
	case float64:
		*n = Numeric(v)
	case float32:
		*n = Numeric(v)
	case int64:
		*n = Numeric(v)
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("cannot scan %q into Numeric: %w", string(v), err)
		}
		*n = Numeric(f)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("cannot scan %q into Numeric: %w", v, err)
		}
		*n = Numeric(f)
	default:
		return fmt.Errorf("cannot scan %T into Numeric", value)
	}
	return nil
}

func (n Numeric) Value() (driver.Value, error) {
	return float64(n), nil
}

func (n Numeric) Float64() float64 {
	return float64(n)
}

// AnalyticsRow is one pre-aggregated summary scoped to a department or a fee
// type, depending on which analytics query produced it. GroupID/GroupName
// identify the scope.
type AnalyticsRow struct {
	GroupID              int     `gorm:"column:group_id" json:"group_id"`
	GroupName            string  `gorm:"column:group_name" json:"group_name"`
	StudentCount         int64   `gorm:"column:student_count" json:"student_count"`
	RecordCount          int64   `gorm:"column:record_count" json:"record_count"`
	TotalFees            Numeric `gorm:"column:total_fees" json:"total_fees"`
	TotalCollected       Numeric `gorm:"column:total_collected" json:"total_collected"`
	TotalPending         Numeric `gorm:"column:total_pending" json:"total_pending"`
	CollectionPercentage Numeric `gorm:"column:collection_percentage" json:"collection_percentage"`
	OverdueCount         int64   `gorm:"column:overdue_count" json:"overdue_count"`
	AvgFeePerStudent     Numeric `gorm:"column:avg_fee_per_student" json:"avg_fee_per_student"`
}

// AnalyticsTotals is the reduction of a set of AnalyticsRows.
type AnalyticsTotals struct {
	TotalFees      float64 `json:"total_fees"`
	TotalCollected float64 `json:"total_collected"`
	TotalPending   float64 `json:"total_pending"`
	TotalStudents  int64   `json:"total_students"`
	TotalRecords   int64   `json:"total_records"`
	OverdueCount   int64   `json:"overdue_count"`
}
