package models

import (
	"time"
)

// Leave request statuses.
const (
	LeaveStatusPending  = "Pending"
	LeaveStatusApproved = "Approved"
	LeaveStatusRejected = "Rejected"
)

type LeaveRequest struct {
	LeaveRequestID int        `gorm:"primaryKey;column:leave_request_id" json:"leave_request_id"`
	StudentID      int        `gorm:"column:student_id" json:"student_id"`
	FromDate       time.Time  `gorm:"column:from_date" json:"from_date"`
	ToDate         time.Time  `gorm:"column:to_date" json:"to_date"`
	Reason         string     `gorm:"column:reason" json:"reason"`
	Status         string     `gorm:"column:status" json:"status"`
	ReviewedBy     *int       `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewComment  *string    `gorm:"column:review_comment" json:"review_comment,omitempty"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt      *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	Student  User  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Reviewer *User `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
