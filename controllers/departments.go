package controllers

import (
	"net/http"

	"college-portal-api/config"
	"college-portal-api/models"

	"github.com/gin-gonic/gin"
)

// GetDepartments returns all departments with their student counts.
// GET /api/v1/departments
func GetDepartments(c *gin.Context) {
	type departmentRow struct {
		DepartmentID   int    `gorm:"column:department_id" json:"department_id"`
		DepartmentName string `gorm:"column:department_name" json:"department_name"`
		Code           string `gorm:"column:code" json:"code"`
		StudentCount   int64  `gorm:"column:student_count" json:"student_count"`
	}

	var rows []departmentRow
	err := config.DB.Table("departments d").
		Select(`d.department_id, d.department_name, d.code,
			COUNT(u.user_id) AS student_count`).
		Joins("LEFT JOIN users u ON u.department_id = d.department_id AND u.role_id = ? AND u.deleted_at IS NULL",
			models.RoleStudent).
		Where("d.deleted_at IS NULL").
		Group("d.department_id, d.department_name, d.code").
		Order("d.department_name ASC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"departments": rows,
	})
}
