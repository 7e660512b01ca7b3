package services

import (
	"sort"

	"college-portal-api/models"
)

// SummaryTotals reduces a set of analytics rows into overall totals. An empty
// input yields all zeros.
func SummaryTotals(rows []models.AnalyticsRow) models.AnalyticsTotals {
	var t models.AnalyticsTotals
	for _, row := range rows {
		t.TotalFees += row.TotalFees.Float64()
		t.TotalCollected += row.TotalCollected.Float64()
		t.TotalPending += row.TotalPending.Float64()
		t.TotalStudents += row.StudentCount
		t.TotalRecords += row.RecordCount
		t.OverdueCount += row.OverdueCount
	}
	return t
}

// CollectionRate returns collected/fees as a percentage, 0 when no fees have
// been assigned. The zero guard keeps NaN out of every consumer.
func CollectionRate(t models.AnalyticsTotals) float64 {
	if t.TotalFees == 0 {
		return 0
	}
	return t.TotalCollected / t.TotalFees * 100
}

// TopByCollection returns the n rows with the highest collection percentage.
// Ties keep input order.
func TopByCollection(rows []models.AnalyticsRow, n int) []models.AnalyticsRow {
	sorted := make([]models.AnalyticsRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CollectionPercentage > sorted[j].CollectionPercentage
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// BottomByCollection returns the n rows with the lowest collection
// percentage. Rows with no assigned fees are excluded — a fee type nobody was
// billed for is not underperforming. Ties keep input order.
func BottomByCollection(rows []models.AnalyticsRow, n int) []models.AnalyticsRow {
	filtered := make([]models.AnalyticsRow, 0, len(rows))
	for _, row := range rows {
		if row.TotalFees != 0 {
			filtered = append(filtered, row)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CollectionPercentage < filtered[j].CollectionPercentage
	})
	if n > len(filtered) {
		n = len(filtered)
	}
	return filtered[:n]
}

// RankedRow is a leaderboard entry; Rank starts at 1.
type RankedRow struct {
	Rank int `json:"rank"`
	models.AnalyticsRow
}

// RankByCollection sorts all rows descending by collection percentage and
// assigns 1-based ranks.
func RankByCollection(rows []models.AnalyticsRow) []RankedRow {
	sorted := TopByCollection(rows, len(rows))
	ranked := make([]RankedRow, len(sorted))
	for i, row := range sorted {
		ranked[i] = RankedRow{Rank: i + 1, AnalyticsRow: row}
	}
	return ranked
}
