package models

import (
	"time"
)

// Fee record statuses as stored in fee_records.status.
const (
	FeeStatusPaid    = "Paid"
	FeeStatusPartial = "Partial"
	FeeStatusPending = "Pending"
	FeeStatusOverdue = "Overdue"
)

// IsValidFeeStatus reports whether s is one of the recognised fee statuses.
func IsValidFeeStatus(s string) bool {
	switch s {
	case FeeStatusPaid, FeeStatusPartial, FeeStatusPending, FeeStatusOverdue:
		return true
	}
	return false
}

type FeeType struct {
	FeeTypeID     int        `gorm:"primaryKey;column:fee_type_id" json:"fee_type_id"`
	FeeTypeName   string     `gorm:"column:fee_type_name" json:"fee_type_name"`
	DefaultAmount float64    `gorm:"column:default_amount" json:"default_amount"`
	IsActive      bool       `gorm:"column:is_active" json:"is_active"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt     *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

type FeeRecord struct {
	FeeRecordID    int        `gorm:"primaryKey;column:fee_record_id" json:"fee_record_id"`
	StudentID      int        `gorm:"column:student_id" json:"student_id"`
	DepartmentID   int        `gorm:"column:department_id" json:"department_id"`
	FeeTypeID      int        `gorm:"column:fee_type_id" json:"fee_type_id"`
	AcademicYear   string     `gorm:"column:academic_year" json:"academic_year"`
	Semester       int        `gorm:"column:semester" json:"semester"`
	OriginalAmount float64    `gorm:"column:original_amount" json:"original_amount"`
	FinalAmount    float64    `gorm:"column:final_amount" json:"final_amount"`
	PaidAmount     float64    `gorm:"column:paid_amount" json:"paid_amount"`
	Status         string     `gorm:"column:status" json:"status"`
	DueDate        *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	PaymentDate    *time.Time `gorm:"column:payment_date" json:"payment_date,omitempty"`
	ScholarshipID  *int       `gorm:"column:scholarship_id" json:"scholarship_id,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt      *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	Student     User         `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Department  Department   `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	FeeType     FeeType      `gorm:"foreignKey:FeeTypeID" json:"fee_type,omitempty"`
	Scholarship *Scholarship `gorm:"foreignKey:ScholarshipID" json:"scholarship,omitempty"`
}

// TableName overrides
func (FeeType) TableName() string {
	return "fee_types"
}

func (FeeRecord) TableName() string {
	return "fee_records"
}

// Outstanding returns the unpaid balance. The backend does not enforce
// paid_amount <= final_amount, so this can go negative on bad data.
func (r *FeeRecord) Outstanding() float64 {
	return r.FinalAmount - r.PaidAmount
}
