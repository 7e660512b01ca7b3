package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"college-portal-api/models"

	"gorm.io/gorm"
)

// Validation failures surfaced before any SQL is issued.
var (
	ErrNoRecordsSelected = errors.New("no fee records selected")
	ErrEmptyPatch        = errors.New("nothing to update: set a status or a due date")
	ErrInvalidStatus     = errors.New("invalid fee status")
	ErrInvalidDueDate    = errors.New("due date must be YYYY-MM-DD")
)

// FeeBulkPatch is the single change applied to every selected record. At
// least one field must be set.
type FeeBulkPatch struct {
	Status  *string `json:"status"`
	DueDate *string `json:"due_date"`
}

// BulkUpdateResult mirrors the bulk update procedure's wire shape.
type BulkUpdateResult struct {
	Success      bool   `json:"success"`
	UpdatedCount int64  `json:"updated_count"`
	Error        string `json:"error,omitempty"`
}

type FeeBulkService struct {
	db *gorm.DB
}

func NewFeeBulkService(db *gorm.DB) *FeeBulkService {
	return &FeeBulkService{db: db}
}

// BulkUpdate applies one patch to all selected records in a single UPDATE.
// The statement is all-or-nothing; the reported count is whatever the
// database affected, and reconciliation is left to the caller's reload. A
// repeat call with the same patch is a no-op beyond touching updated_at.
func (s *FeeBulkService) BulkUpdate(userID int, recordIDs []int, patch FeeBulkPatch) (*BulkUpdateResult, error) {
	if len(recordIDs) == 0 {
		return nil, ErrNoRecordsSelected
	}
	if patch.Status == nil && patch.DueDate == nil {
		return nil, ErrEmptyPatch
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if patch.Status != nil {
		if !models.IsValidFeeStatus(*patch.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *patch.Status
	}
	if patch.DueDate != nil {
		due, err := time.ParseInLocation("2006-01-02", *patch.DueDate, time.Local)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		updates["due_date"] = due
	}

	result := s.db.Model(&models.FeeRecord{}).
		Where("fee_record_id IN ? AND deleted_at IS NULL", recordIDs).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("bulk update failed: %w", result.Error)
	}

	log.Printf("bulk fee update by user %d: %d of %d records affected", userID, result.RowsAffected, len(recordIDs))

	return &BulkUpdateResult{
		Success:      true,
		UpdatedCount: result.RowsAffected,
	}, nil
}
