package services

import (
	"strings"
	"time"
)

// Date columns a filter window may apply to.
const (
	DateFieldCreatedAt   = "created_at"
	DateFieldDueDate     = "due_date"
	DateFieldPaymentDate = "payment_date"
)

// FeeRecordFilter is the canonical query-parameter object shared by the fee
// record listing and the analytics queries. Nil means "no constraint" — the
// query builders skip the predicate entirely. Empty strings and empty slices
// must never reach the builders: the backend would treat an empty IN () as an
// exclusionary filter, not as "everything".
type FeeRecordFilter struct {
	FromDate      *string  `json:"from_date" form:"from_date"`
	ToDate        *string  `json:"to_date" form:"to_date"`
	DateField     string   `json:"date_field" form:"date_field"`
	DepartmentIDs []int    `json:"department_ids" form:"department_ids"`
	Statuses      []string `json:"statuses" form:"statuses"`
	MinAmount     *float64 `json:"min_amount" form:"min_amount"`
	MaxAmount     *float64 `json:"max_amount" form:"max_amount"`
	SortBy        string   `json:"sort_by" form:"sort_by"`
	SortOrder     string   `json:"sort_order" form:"sort_order"`
}

// DefaultFeeRecordFilter returns the filter applied on first load: a trailing
// 30-day window, inclusive, on created_at, newest first.
func DefaultFeeRecordFilter(now time.Time) *FeeRecordFilter {
	from := now.AddDate(0, 0, -30).Format("2006-01-02")
	to := now.Format("2006-01-02")
	return &FeeRecordFilter{
		FromDate:  &from,
		ToDate:    &to,
		DateField: DateFieldCreatedAt,
		SortBy:    DateFieldCreatedAt,
		SortOrder: "desc",
	}
}

// Normalize canonicalizes raw UI input in place: blank strings and empty
// slices collapse to nil, the date field falls back to created_at, and the
// sort order falls back to desc.
func (f *FeeRecordFilter) Normalize() {
	f.FromDate = normalizeDate(f.FromDate)
	f.ToDate = normalizeDate(f.ToDate)

	switch f.DateField {
	case DateFieldCreatedAt, DateFieldDueDate, DateFieldPaymentDate:
	default:
		f.DateField = DateFieldCreatedAt
	}

	if len(f.DepartmentIDs) == 0 {
		f.DepartmentIDs = nil
	}

	statuses := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		s = strings.TrimSpace(s)
		if s != "" {
			statuses = append(statuses, s)
		}
	}
	if len(statuses) == 0 {
		f.Statuses = nil
	} else {
		f.Statuses = statuses
	}

	f.SortBy = strings.TrimSpace(f.SortBy)

	f.SortOrder = strings.ToLower(strings.TrimSpace(f.SortOrder))
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		f.SortOrder = "desc"
	}
}

func normalizeDate(d *string) *string {
	if d == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SortColumn returns the validated sort column, falling back to def when the
// requested column is not in the allowed set.
func (f *FeeRecordFilter) SortColumn(allowed map[string]bool, def string) string {
	if allowed[f.SortBy] {
		return f.SortBy
	}
	return def
}
