package services

import (
	"fmt"
	"strings"

	"college-portal-api/models"

	"gorm.io/gorm"
)

// FeeAnalyticsService owns the parameterized fee queries: per-department and
// per-fee-type summaries, the filtered record listing, and the flat export
// rows. All predicates come from a normalized FeeRecordFilter; nil fields are
// skipped entirely so an unset filter can never turn into an empty IN ().
type FeeAnalyticsService struct {
	db *gorm.DB
}

func NewFeeAnalyticsService(db *gorm.DB) *FeeAnalyticsService {
	return &FeeAnalyticsService{db: db}
}

var analyticsSortFields = map[string]bool{
	"group_name":            true,
	"student_count":         true,
	"record_count":          true,
	"total_fees":            true,
	"total_collected":       true,
	"total_pending":         true,
	"collection_percentage": true,
	"overdue_count":         true,
}

var recordSortFields = map[string]bool{
	"created_at":   true,
	"due_date":     true,
	"payment_date": true,
	"final_amount": true,
	"paid_amount":  true,
	"status":       true,
}

// DepartmentSummaries returns one aggregated row per department for the
// filter window.
func (s *FeeAnalyticsService) DepartmentSummaries(f *FeeRecordFilter) ([]models.AnalyticsRow, error) {
	return s.summaries(f,
		"d.department_id", "d.department_name",
		"JOIN departments d ON d.department_id = fr.department_id AND d.deleted_at IS NULL")
}

// FeeTypeSummaries returns one aggregated row per fee type for the filter
// window.
func (s *FeeAnalyticsService) FeeTypeSummaries(f *FeeRecordFilter) ([]models.AnalyticsRow, error) {
	return s.summaries(f,
		"ft.fee_type_id", "ft.fee_type_name",
		"JOIN fee_types ft ON ft.fee_type_id = fr.fee_type_id AND ft.deleted_at IS NULL")
}

func (s *FeeAnalyticsService) summaries(f *FeeRecordFilter, idCol, nameCol, join string) ([]models.AnalyticsRow, error) {
	f.Normalize()

	selectClause := fmt.Sprintf(`%s AS group_id, %s AS group_name,
		COUNT(DISTINCT fr.student_id) AS student_count,
		COUNT(fr.fee_record_id) AS record_count,
		COALESCE(SUM(fr.final_amount), 0) AS total_fees,
		COALESCE(SUM(fr.paid_amount), 0) AS total_collected,
		COALESCE(SUM(fr.final_amount - fr.paid_amount), 0) AS total_pending,
		CASE WHEN SUM(fr.final_amount) > 0
			THEN SUM(fr.paid_amount) / SUM(fr.final_amount) * 100 ELSE 0 END AS collection_percentage,
		SUM(CASE WHEN fr.status = 'Overdue' THEN 1 ELSE 0 END) AS overdue_count,
		CASE WHEN COUNT(DISTINCT fr.student_id) > 0
			THEN SUM(fr.final_amount) / COUNT(DISTINCT fr.student_id) ELSE 0 END AS avg_fee_per_student`,
		idCol, nameCol)

	query := s.db.Table("fee_records fr").
		Select(selectClause).
		Joins(join).
		Where("fr.deleted_at IS NULL")
	query = applyFeeFilter(query, f, "fr.")
	query = query.Group(idCol + ", " + nameCol)

	sortCol := f.SortColumn(analyticsSortFields, "collection_percentage")
	query = query.Order(sortCol + " " + strings.ToUpper(f.SortOrder))

	var rows []models.AnalyticsRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics query failed: %w", err)
	}
	return rows, nil
}

// Records returns the filtered, sorted, paginated fee record page plus the
// unpaginated total.
func (s *FeeAnalyticsService) Records(f *FeeRecordFilter, limit, offset int) ([]models.FeeRecord, int64, error) {
	f.Normalize()

	query := s.db.Model(&models.FeeRecord{}).Where("deleted_at IS NULL")
	query = applyFeeFilter(query, f, "")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("record count failed: %w", err)
	}

	sortCol := f.SortColumn(recordSortFields, "created_at")
	var records []models.FeeRecord
	if err := query.
		Preload("Student").Preload("Department").Preload("FeeType").
		Order(sortCol + " " + strings.ToUpper(f.SortOrder)).
		Offset(offset).Limit(limit).
		Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("record query failed: %w", err)
	}
	return records, total, nil
}

// FeeRecordExportRow is the flat shape serialized by the CSV export.
type FeeRecordExportRow struct {
	FeeRecordID    int            `gorm:"column:fee_record_id"`
	StudentName    string         `gorm:"column:student_name"`
	RollNumber     string         `gorm:"column:roll_number"`
	DepartmentCode string         `gorm:"column:department_code"`
	FeeTypeName    string         `gorm:"column:fee_type_name"`
	AcademicYear   string         `gorm:"column:academic_year"`
	Semester       int            `gorm:"column:semester"`
	FinalAmount    models.Numeric `gorm:"column:final_amount"`
	PaidAmount     models.Numeric `gorm:"column:paid_amount"`
	Outstanding    models.Numeric `gorm:"column:outstanding"`
	Status         string         `gorm:"column:status"`
	DueDate        string         `gorm:"column:due_date"`
}

// ExportRows returns the filtered record set joined with student, department
// and fee type names, in export order.
func (s *FeeAnalyticsService) ExportRows(f *FeeRecordFilter) ([]FeeRecordExportRow, error) {
	f.Normalize()

	query := s.db.Table("fee_records fr").
		Select(`fr.fee_record_id,
			CONCAT(u.first_name, ' ', u.last_name) AS student_name,
			COALESCE(u.roll_number, '') AS roll_number,
			d.code AS department_code,
			ft.fee_type_name AS fee_type_name,
			fr.academic_year, fr.semester,
			fr.final_amount, fr.paid_amount,
			fr.final_amount - fr.paid_amount AS outstanding,
			fr.status,
			COALESCE(DATE_FORMAT(fr.due_date, '%Y-%m-%d'), '') AS due_date`).
		Joins("JOIN users u ON u.user_id = fr.student_id").
		Joins("JOIN departments d ON d.department_id = fr.department_id").
		Joins("JOIN fee_types ft ON ft.fee_type_id = fr.fee_type_id").
		Where("fr.deleted_at IS NULL")
	query = applyFeeFilter(query, f, "fr.")

	sortCol := f.SortColumn(recordSortFields, "created_at")
	query = query.Order("fr." + sortCol + " " + strings.ToUpper(f.SortOrder))

	var rows []FeeRecordExportRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("export query failed: %w", err)
	}
	return rows, nil
}

// applyFeeFilter adds the canonical predicates to a fee_records query. The
// prefix is the table alias ("fr." or "") of the call site. Date windows are
// inclusive on both ends; DATE() strips the time part so a to-date of today
// covers records created later the same day.
func applyFeeFilter(query *gorm.DB, f *FeeRecordFilter, prefix string) *gorm.DB {
	dateCol := prefix + f.DateField

	if f.FromDate != nil {
		query = query.Where("DATE("+dateCol+") >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		query = query.Where("DATE("+dateCol+") <= ?", *f.ToDate)
	}
	if f.DepartmentIDs != nil {
		query = query.Where(prefix+"department_id IN ?", f.DepartmentIDs)
	}
	if f.Statuses != nil {
		query = query.Where(prefix+"status IN ?", f.Statuses)
	}
	if f.MinAmount != nil {
		query = query.Where(prefix+"final_amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		query = query.Where(prefix+"final_amount <= ?", *f.MaxAmount)
	}
	return query
}
