package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"college-portal-api/config"
	"college-portal-api/models"
	"college-portal-api/services"
	"college-portal-api/utils"

	"github.com/gin-gonic/gin"
)

// GetScholarships lists scholarships. Students only see their own; staff can
// filter by student, year, type and flags.
// GET /api/v1/scholarships
func GetScholarships(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	query := config.DB.Preload("Student").Where("deleted_at IS NULL")

	if roleID.(int) == models.RoleStudent {
		query = query.Where("student_id = ?", userID)
	} else if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if year := c.Query("academic_year"); year != "" {
		query = query.Where("academic_year = ?", year)
	}
	if sType := c.Query("type"); sType != "" {
		query = query.Where("scholarship_type = ?", sType)
	}
	if applied := c.Query("applied"); applied != "" {
		query = query.Where("applied = ?", applied == "true")
	}
	if received := c.Query("received"); received != "" {
		query = query.Where("received_by_institution = ?", received == "true")
	}

	var scholarships []models.Scholarship
	if err := query.Order("created_at DESC").Find(&scholarships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scholarships"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"scholarships": scholarships,
		"total":        len(scholarships),
	})
}

type InitializeEligibilityRequest struct {
	AcademicYear    string  `json:"academic_year" binding:"required"`
	ScholarshipType string  `json:"scholarship_type" binding:"required"`
	EligibleAmount  float64 `json:"eligible_amount" binding:"required,gt=0"`
}

// InitializeEligibility creates eligibility rows for every active student who
// does not yet have one for the given year and program. Re-running is safe:
// existing rows are skipped.
// POST /api/v1/scholarships/initialize
func InitializeEligibility(c *gin.Context) {
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionManageScholarships) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req InitializeEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidScholarshipType(req.ScholarshipType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scholarship type must be PMSS or FG"})
		return
	}

	var studentIDs []int
	if err := config.DB.Model(&models.User{}).
		Where(`role_id = ? AND is_active = 1 AND deleted_at IS NULL
			AND user_id NOT IN (
				SELECT student_id FROM scholarships
				WHERE academic_year = ? AND scholarship_type = ? AND deleted_at IS NULL)`,
			models.RoleStudent, req.AcademicYear, req.ScholarshipType).
		Pluck("user_id", &studentIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find eligible students"})
		return
	}

	if len(studentIDs) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"created_count": 0,
			"message":       "All active students already have eligibility rows",
		})
		return
	}

	scholarships := make([]models.Scholarship, 0, len(studentIDs))
	for _, id := range studentIDs {
		scholarships = append(scholarships, models.Scholarship{
			StudentID:       id,
			ScholarshipType: req.ScholarshipType,
			EligibleAmount:  req.EligibleAmount,
			AcademicYear:    req.AcademicYear,
		})
	}
	if err := config.DB.Create(&scholarships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create eligibility rows"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"created_count": len(scholarships),
	})
}

type UpdateScholarshipStatusRequest struct {
	Applied  *bool `json:"applied"`
	Received *bool `json:"received"`
}

// UpdateScholarshipStatus toggles the applied / received-by-institution flags,
// stamping the matching dates.
// PATCH /api/v1/scholarships/:id/status
func UpdateScholarshipStatus(c *gin.Context) {
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionManageScholarships) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	scholarshipID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scholarship id"})
		return
	}

	var req UpdateScholarshipStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Applied == nil && req.Received == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update: set applied or received"})
		return
	}

	var scholarship models.Scholarship
	if err := config.DB.Where("scholarship_id = ? AND deleted_at IS NULL", scholarshipID).
		First(&scholarship).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scholarship not found"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	if req.Applied != nil {
		updates["applied"] = *req.Applied
		if *req.Applied {
			updates["application_date"] = now
		} else {
			updates["application_date"] = nil
		}
	}
	if req.Received != nil {
		updates["received_by_institution"] = *req.Received
		if *req.Received {
			updates["receipt_date"] = now
		} else {
			updates["receipt_date"] = nil
		}
	}

	if err := config.DB.Model(&scholarship).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update scholarship"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Scholarship status updated",
	})
}

type ConnectScholarshipRequest struct {
	ScholarshipID int `json:"scholarship_id" binding:"required"`
}

// ConnectScholarship links one scholarship to one fee record.
// POST /api/v1/fee-records/:id/connect-scholarship
func ConnectScholarship(c *gin.Context) {
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionManageScholarships) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	feeRecordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fee record id"})
		return
	}

	var req ConnectScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewScholarshipLinkService(config.DB)
	if err := svc.Connect(feeRecordID, req.ScholarshipID); err != nil {
		switch {
		case errors.Is(err, services.ErrFeeRecordNotFound), errors.Is(err, services.ErrScholarshipNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAlreadyLinked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotReceived):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link scholarship"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Scholarship linked to fee record",
	})
}

// AutoConnectScholarships sweeps unlinked fee records and pairs unambiguous
// matches.
// POST /api/v1/scholarships/auto-connect
func AutoConnectScholarships(c *gin.Context) {
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionManageScholarships) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	svc := services.NewScholarshipLinkService(config.DB)
	linked, err := svc.AutoConnect()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Auto-connect failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"linked_count": linked,
	})
}
