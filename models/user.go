package models

import (
	"time"
)

// Role IDs as seeded in the roles table.
const (
	RoleStudent  = 1
	RoleDeptHead = 2
	RoleAdmin    = 3
	RoleChairman = 4
)

type User struct {
	UserID       int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	FirstName    string     `gorm:"column:first_name" json:"first_name"`
	LastName     string     `gorm:"column:last_name" json:"last_name"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	Password     string     `gorm:"column:password" json:"-"`
	RoleID       int        `gorm:"column:role_id" json:"role_id"`
	DepartmentID *int       `gorm:"column:department_id" json:"department_id,omitempty"`
	RollNumber   *string    `gorm:"column:roll_number" json:"roll_number,omitempty"`
	Semester     *int       `gorm:"column:semester" json:"semester,omitempty"`
	IsActive     bool       `gorm:"column:is_active" json:"is_active"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	Role       Role        `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

type Role struct {
	RoleID    int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role      string     `gorm:"column:role" json:"role"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

type Department struct {
	DepartmentID   int        `gorm:"primaryKey;column:department_id" json:"department_id"`
	DepartmentName string     `gorm:"column:department_name" json:"department_name"`
	Code           string     `gorm:"column:code;unique" json:"code"`
	HeadUserID     *int       `gorm:"column:head_user_id" json:"head_user_id,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt      *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	Head *User `gorm:"foreignKey:HeadUserID" json:"head,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (Department) TableName() string {
	return "departments"
}

// FullName returns the display name used in exports and notifications.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
