package controllers

import (
	"net/http"
	"strconv"
	"time"

	"college-portal-api/config"
	"college-portal-api/models"
	"college-portal-api/utils"

	"github.com/gin-gonic/gin"
)

type CreateLeaveRequestRequest struct {
	FromDate string `json:"from_date" binding:"required"`
	ToDate   string `json:"to_date" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

// CreateLeaveRequest files a new leave request for the calling student.
// POST /api/v1/leave-requests
func CreateLeaveRequest(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req CreateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, err := time.ParseInLocation("2006-01-02", req.FromDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "From date must be YYYY-MM-DD"})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", req.ToDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "To date must be YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "To date cannot be before from date"})
		return
	}

	leave := models.LeaveRequest{
		StudentID: userID.(int),
		FromDate:  from,
		ToDate:    to,
		Reason:    utils.SanitizeInput(req.Reason),
		Status:    models.LeaveStatusPending,
	}

	if err := config.DB.Create(&leave).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create leave request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"leave_request": leave,
	})
}

// GetLeaveRequests lists leave requests scoped by role: students see their
// own, department heads their department, admins everything.
// GET /api/v1/leave-requests?status=Pending
func GetLeaveRequests(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	query := config.DB.Preload("Student").Preload("Reviewer").
		Where("leave_requests.deleted_at IS NULL")

	switch roleID.(int) {
	case models.RoleStudent:
		query = query.Where("leave_requests.student_id = ?", userID)
	case models.RoleDeptHead:
		deptID, ok := c.Get("departmentID")
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "No department assigned"})
			return
		}
		query = query.
			Joins("JOIN users stu ON stu.user_id = leave_requests.student_id").
			Where("stu.department_id = ?", deptID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("leave_requests.status = ?", status)
	}

	var requests []models.LeaveRequest
	if err := query.Order("leave_requests.created_at DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leave requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"leave_requests": requests,
		"total":          len(requests),
	})
}

type ReviewLeaveRequestRequest struct {
	Action  string `json:"action" binding:"required,oneof=approve reject"`
	Comment string `json:"comment"`
}

// ReviewLeaveRequest approves or rejects a pending request.
// PATCH /api/v1/leave-requests/:id/review
func ReviewLeaveRequest(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionReviewLeave) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	// Department heads may only review their own department's students.
	headDeptID := 0
	if roleID.(int) == models.RoleDeptHead {
		deptID, ok := c.Get("departmentID")
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "No department assigned"})
			return
		}
		headDeptID = deptID.(int)
	}

	requestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid leave request id"})
		return
	}

	var req ReviewLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var leave models.LeaveRequest
	if err := config.DB.Where("leave_request_id = ? AND deleted_at IS NULL", requestID).
		First(&leave).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
		return
	}
	if leave.Status != models.LeaveStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Leave request has already been reviewed"})
		return
	}

	if roleID.(int) == models.RoleDeptHead {
		var student models.User
		if err := config.DB.Where("user_id = ?", leave.StudentID).First(&student).Error; err != nil ||
			student.DepartmentID == nil || *student.DepartmentID != headDeptID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
	}

	status := models.LeaveStatusApproved
	if req.Action == "reject" {
		status = models.LeaveStatusRejected
	}

	now := time.Now()
	comment := utils.SanitizeInput(req.Comment)
	reviewer := userID.(int)
	updates := map[string]interface{}{
		"status":      status,
		"reviewed_by": reviewer,
		"reviewed_at": now,
		"updated_at":  now,
	}
	if comment != "" {
		updates["review_comment"] = comment
	}

	if err := config.DB.Model(&leave).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review leave request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  status,
		"message": "Leave request reviewed",
	})
}
