package models

import (
	"time"
)

// Scholarship program types. The portal only tracks these two schemes.
const (
	ScholarshipTypePMSS = "PMSS"
	ScholarshipTypeFG   = "FG"
)

// IsValidScholarshipType reports whether t is a recognised program type.
func IsValidScholarshipType(t string) bool {
	return t == ScholarshipTypePMSS || t == ScholarshipTypeFG
}

type Scholarship struct {
	ScholarshipID         int        `gorm:"primaryKey;column:scholarship_id" json:"scholarship_id"`
	StudentID             int        `gorm:"column:student_id" json:"student_id"`
	ScholarshipType       string     `gorm:"column:scholarship_type" json:"scholarship_type"`
	EligibleAmount        float64    `gorm:"column:eligible_amount" json:"eligible_amount"`
	Applied               bool       `gorm:"column:applied" json:"applied"`
	ApplicationDate       *time.Time `gorm:"column:application_date" json:"application_date,omitempty"`
	ReceivedByInstitution bool       `gorm:"column:received_by_institution" json:"received_by_institution"`
	ReceiptDate           *time.Time `gorm:"column:receipt_date" json:"receipt_date,omitempty"`
	AcademicYear          string     `gorm:"column:academic_year" json:"academic_year"`
	CreatedAt             time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt             *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	Student User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Scholarship) TableName() string {
	return "scholarships"
}
