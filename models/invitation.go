package models

import (
	"time"
)

// Invitation is a pending account invite. The token is a one-time UUID mailed
// to the invitee; accepting it creates the user and stamps accepted_at.
type Invitation struct {
	InvitationID int        `gorm:"primaryKey;column:invitation_id" json:"invitation_id"`
	Email        string     `gorm:"column:email" json:"email"`
	RoleID       int        `gorm:"column:role_id" json:"role_id"`
	DepartmentID *int       `gorm:"column:department_id" json:"department_id,omitempty"`
	Token        string     `gorm:"column:token;unique" json:"-"`
	InvitedBy    int        `gorm:"column:invited_by" json:"invited_by"`
	ExpiresAt    time.Time  `gorm:"column:expires_at" json:"expires_at"`
	AcceptedAt   *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	Inviter User `gorm:"foreignKey:InvitedBy" json:"inviter,omitempty"`
}

func (Invitation) TableName() string {
	return "invitations"
}

// Expired reports whether the invite can no longer be accepted.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
