package services

import (
	"regexp"
	"testing"
	"time"
)

func TestMarkOverdueReportsAffectedCount(t *testing.T) {
	sweepPattern := regexp.MustCompile(`(?s)UPDATE fee_records\s+SET status = 'Overdue'.*` +
		`WHERE status IN \('Pending', 'Partial'\).*due_date < \?.*deleted_at IS NULL`)

	steps := []*queryStep{
		{kind: kindExec, pattern: sweepPattern, result: scriptedResult{rowsAffected: 4}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewOverdueSweepService(db)
	count, err := svc.MarkOverdue(time.Date(2026, 8, 28, 2, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("MarkOverdue returned error: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 records marked overdue, got %d", count)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
