package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"college-portal-api/models"

	"gorm.io/gorm"
)

var (
	ErrFeeRecordNotFound   = errors.New("fee record not found")
	ErrScholarshipNotFound = errors.New("scholarship not found")
	ErrAlreadyLinked       = errors.New("fee record already has a linked scholarship")
	ErrNotReceived         = errors.New("scholarship has not been received by the institution")
)

// ScholarshipLinkService pairs scholarships with the fee records they offset.
// The link is 1:1 and only funds already received by the institution may be
// applied.
type ScholarshipLinkService struct {
	db *gorm.DB
}

func NewScholarshipLinkService(db *gorm.DB) *ScholarshipLinkService {
	return &ScholarshipLinkService{db: db}
}

// Connect links one scholarship to one fee record explicitly.
func (s *ScholarshipLinkService) Connect(feeRecordID, scholarshipID int) error {
	var record models.FeeRecord
	if err := s.db.Where("fee_record_id = ? AND deleted_at IS NULL", feeRecordID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeeRecordNotFound
		}
		return fmt.Errorf("load fee record: %w", err)
	}
	if record.ScholarshipID != nil {
		return ErrAlreadyLinked
	}

	var scholarship models.Scholarship
	if err := s.db.Where("scholarship_id = ? AND deleted_at IS NULL", scholarshipID).
		First(&scholarship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScholarshipNotFound
		}
		return fmt.Errorf("load scholarship: %w", err)
	}
	if !scholarship.ReceivedByInstitution {
		return ErrNotReceived
	}

	result := s.db.Model(&models.FeeRecord{}).
		Where("fee_record_id = ?", feeRecordID).
		Updates(map[string]interface{}{
			"scholarship_id": scholarshipID,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("link scholarship: %w", result.Error)
	}
	return nil
}

// AutoConnect sweeps every unlinked fee record against every received
// scholarship, matching on student and academic year. A record with exactly
// one qualifying candidate gets linked; zero or several candidates leave the
// record untouched — ambiguity is never auto-resolved. Returns the number of
// links made.
func (s *ScholarshipLinkService) AutoConnect() (int, error) {
	var records []models.FeeRecord
	if err := s.db.Where("scholarship_id IS NULL AND deleted_at IS NULL").
		Order("fee_record_id ASC").
		Find(&records).Error; err != nil {
		return 0, fmt.Errorf("load unlinked fee records: %w", err)
	}

	var scholarships []models.Scholarship
	if err := s.db.Where("received_by_institution = ? AND deleted_at IS NULL", true).
		Order("scholarship_id ASC").
		Find(&scholarships).Error; err != nil {
		return 0, fmt.Errorf("load received scholarships: %w", err)
	}

	// Scholarships already applied to some record are out of the pool.
	var linkedIDs []int
	if err := s.db.Model(&models.FeeRecord{}).
		Where("scholarship_id IS NOT NULL AND deleted_at IS NULL").
		Pluck("scholarship_id", &linkedIDs).Error; err != nil {
		return 0, fmt.Errorf("load linked scholarship ids: %w", err)
	}
	used := make(map[int]bool, len(linkedIDs))
	for _, id := range linkedIDs {
		used[id] = true
	}

	type key struct {
		studentID    int
		academicYear string
	}
	candidates := make(map[key][]models.Scholarship)
	for _, sch := range scholarships {
		if used[sch.ScholarshipID] {
			continue
		}
		k := key{sch.StudentID, sch.AcademicYear}
		candidates[k] = append(candidates[k], sch)
	}

	linked := 0
	for _, record := range records {
		matches := candidates[key{record.StudentID, record.AcademicYear}]

		available := make([]models.Scholarship, 0, len(matches))
		for _, m := range matches {
			if !used[m.ScholarshipID] {
				available = append(available, m)
			}
		}
		if len(available) != 1 {
			continue
		}

		sch := available[0]
		result := s.db.Model(&models.FeeRecord{}).
			Where("fee_record_id = ? AND scholarship_id IS NULL", record.FeeRecordID).
			Updates(map[string]interface{}{
				"scholarship_id": sch.ScholarshipID,
				"updated_at":     time.Now(),
			})
		if result.Error != nil {
			return linked, fmt.Errorf("link fee record %d: %w", record.FeeRecordID, result.Error)
		}
		if result.RowsAffected == 0 {
			continue
		}
		used[sch.ScholarshipID] = true
		linked++
	}

	if linked > 0 {
		log.Printf("auto-connect linked %d scholarships to fee records", linked)
	}
	return linked, nil
}
