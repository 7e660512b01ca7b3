package services

import (
	"errors"
	"regexp"
	"testing"
)

func TestBulkUpdateRejectsEmptyPatchBeforeAnySQL(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewFeeBulkService(db)
	_, err := svc.BulkUpdate(1, []int{10, 11}, FeeBulkPatch{})
	if !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("no SQL may be issued for an empty patch: %v", err)
	}
}

func TestBulkUpdateRejectsEmptySelection(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	status := "Paid"
	svc := NewFeeBulkService(db)
	_, err := svc.BulkUpdate(1, nil, FeeBulkPatch{Status: &status})
	if !errors.Is(err, ErrNoRecordsSelected) {
		t.Fatalf("expected ErrNoRecordsSelected, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("no SQL may be issued for an empty selection: %v", err)
	}
}

func TestBulkUpdateRejectsInvalidInput(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewFeeBulkService(db)

	badStatus := "Settled"
	if _, err := svc.BulkUpdate(1, []int{10}, FeeBulkPatch{Status: &badStatus}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	badDate := "next tuesday"
	if _, err := svc.BulkUpdate(1, []int{10}, FeeBulkPatch{DueDate: &badDate}); !errors.Is(err, ErrInvalidDueDate) {
		t.Fatalf("expected ErrInvalidDueDate, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("validation failures must not reach the database: %v", err)
	}
}

func TestBulkUpdateIssuesSingleStatementAndReportsBackendCount(t *testing.T) {
	updatePattern := regexp.MustCompile("UPDATE `fee_records` SET .*`status`.*WHERE fee_record_id IN")

	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: updatePattern,
			result:  scriptedResult{rowsAffected: 3},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	status := "Paid"
	svc := NewFeeBulkService(db)
	result, err := svc.BulkUpdate(7, []int{10, 11, 12}, FeeBulkPatch{Status: &status})
	if err != nil {
		t.Fatalf("BulkUpdate returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.UpdatedCount != 3 {
		t.Fatalf("expected backend-reported count 3, got %d", result.UpdatedCount)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestBulkUpdateRepeatedPatchYieldsSameOutcome(t *testing.T) {
	updatePattern := regexp.MustCompile("UPDATE `fee_records` SET .*`status`.*WHERE fee_record_id IN")

	steps := []*queryStep{
		{kind: kindExec, pattern: updatePattern, result: scriptedResult{rowsAffected: 2}},
		{kind: kindExec, pattern: updatePattern, result: scriptedResult{rowsAffected: 2}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	status := "Paid"
	svc := NewFeeBulkService(db)

	first, err := svc.BulkUpdate(7, []int{10, 11}, FeeBulkPatch{Status: &status})
	if err != nil {
		t.Fatalf("first BulkUpdate: %v", err)
	}
	second, err := svc.BulkUpdate(7, []int{10, 11}, FeeBulkPatch{Status: &status})
	if err != nil {
		t.Fatalf("second BulkUpdate: %v", err)
	}

	if first.UpdatedCount != second.UpdatedCount || first.Success != second.Success {
		t.Fatalf("repeat of the same patch diverged: %+v vs %+v", first, second)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
