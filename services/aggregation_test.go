package services

import (
	"testing"

	"college-portal-api/models"
)

func row(name string, fees, collected, pct float64) models.AnalyticsRow {
	return models.AnalyticsRow{
		GroupName:            name,
		TotalFees:            models.Numeric(fees),
		TotalCollected:       models.Numeric(collected),
		TotalPending:         models.Numeric(fees - collected),
		CollectionPercentage: models.Numeric(pct),
	}
}

func TestSummaryTotalsEmptyInputIsZero(t *testing.T) {
	totals := SummaryTotals(nil)
	if totals.TotalFees != 0 || totals.TotalCollected != 0 || totals.TotalPending != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
	if totals.TotalStudents != 0 || totals.TotalRecords != 0 || totals.OverdueCount != 0 {
		t.Fatalf("expected zero counts, got %+v", totals)
	}
}

func TestSummaryTotalsPreservesPerRowInvariant(t *testing.T) {
	rows := []models.AnalyticsRow{
		row("CSE", 1000, 950, 95),
		row("ECE", 800, 640, 80),
		row("ME", 500, 50, 10),
	}
	totals := SummaryTotals(rows)
	if totals.TotalFees != 2300 {
		t.Fatalf("expected total fees 2300, got %v", totals.TotalFees)
	}
	if totals.TotalCollected > totals.TotalFees {
		t.Fatalf("collected %v exceeds fees %v although every row collects <= its fees",
			totals.TotalCollected, totals.TotalFees)
	}
}

func TestCollectionRateGuardsDivisionByZero(t *testing.T) {
	rate := CollectionRate(models.AnalyticsTotals{TotalFees: 0, TotalCollected: 0})
	if rate != 0 {
		t.Fatalf("expected 0 for empty scope, got %v", rate)
	}

	rate = CollectionRate(models.AnalyticsTotals{TotalFees: 2000, TotalCollected: 500})
	if rate != 25 {
		t.Fatalf("expected 25, got %v", rate)
	}
}

func TestTopAndBottomByCollection(t *testing.T) {
	rows := []models.AnalyticsRow{
		row("A", 1000, 950, 95),
		row("B", 800, 640, 80),
		row("C", 500, 50, 10),
		row("D", 0, 0, 0), // nothing billed
		row("E", 1000, 600, 60),
	}

	top := TopByCollection(rows, 3)
	if len(top) != 3 || top[0].GroupName != "A" || top[1].GroupName != "B" || top[2].GroupName != "E" {
		t.Fatalf("unexpected top 3: %+v", top)
	}

	bottom := BottomByCollection(rows, 3)
	if len(bottom) != 3 {
		t.Fatalf("expected 3 bottom rows, got %d", len(bottom))
	}
	for _, r := range bottom {
		if r.GroupName == "D" {
			t.Fatalf("zero-fee row must not appear in bottom ranking")
		}
	}
	if bottom[0].GroupName != "C" || bottom[1].GroupName != "E" || bottom[2].GroupName != "B" {
		t.Fatalf("unexpected bottom 3 order: %+v", bottom)
	}

	// n larger than the eligible set truncates instead of failing
	if got := BottomByCollection(rows, 10); len(got) != 4 {
		t.Fatalf("expected 4 eligible rows, got %d", len(got))
	}
}

func TestTopByCollectionTiesKeepInputOrder(t *testing.T) {
	rows := []models.AnalyticsRow{
		row("first", 100, 50, 50),
		row("second", 200, 100, 50),
		row("third", 100, 90, 90),
	}
	top := TopByCollection(rows, 3)
	if top[0].GroupName != "third" || top[1].GroupName != "first" || top[2].GroupName != "second" {
		t.Fatalf("stable sort violated: %+v", top)
	}
}

func TestTopByCollectionDoesNotMutateInput(t *testing.T) {
	rows := []models.AnalyticsRow{
		row("low", 100, 10, 10),
		row("high", 100, 90, 90),
	}
	TopByCollection(rows, 2)
	if rows[0].GroupName != "low" || rows[1].GroupName != "high" {
		t.Fatalf("input slice was reordered: %+v", rows)
	}
}

func TestRankByCollection(t *testing.T) {
	rows := []models.AnalyticsRow{
		row("B", 800, 640, 80),
		row("A", 1000, 950, 95),
		row("C", 500, 50, 10),
	}
	ranked := RankByCollection(rows)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked rows, got %d", len(ranked))
	}
	if ranked[0].Rank != 1 || ranked[0].GroupName != "A" {
		t.Fatalf("unexpected leader: %+v", ranked[0])
	}
	if ranked[2].Rank != 3 || ranked[2].GroupName != "C" {
		t.Fatalf("unexpected last place: %+v", ranked[2])
	}
}
