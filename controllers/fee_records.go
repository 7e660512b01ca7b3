package controllers

import (
	"net/http"
	"strconv"
	"time"

	"college-portal-api/config"
	"college-portal-api/models"
	"college-portal-api/services"
	"college-portal-api/utils"

	"github.com/gin-gonic/gin"
)

// bindFeeFilter reads the canonical filter from the query string. Scoping by
// role happens here: department heads are pinned to their own department and
// students never reach this listing (they get their own records via the
// dashboard).
func bindFeeFilter(c *gin.Context) (*services.FeeRecordFilter, bool) {
	var filter services.FeeRecordFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	roleID, _ := c.Get("roleID")
	if roleID.(int) == models.RoleDeptHead {
		if deptID, ok := c.Get("departmentID"); ok {
			filter.DepartmentIDs = []int{deptID.(int)}
		}
	}

	return &filter, true
}

// GetDefaultFeeFilter returns the filter applied on first load / reset.
// GET /api/v1/fee-records/filters/default
func GetDefaultFeeFilter(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"filter": services.DefaultFeeRecordFilter(time.Now()),
	})
}

// GetFeeRecords returns the filtered, paginated fee record list.
// GET /api/v1/fee-records
func GetFeeRecords(c *gin.Context) {
	filter, ok := bindFeeFilter(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	svc := services.NewFeeAnalyticsService(config.DB)
	records, total, err := svc.Records(filter, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fee records"})
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"fee_records": records,
		"pagination": gin.H{
			"current_page": page,
			"per_page":     limit,
			"total_count":  total,
			"total_pages":  totalPages,
			"has_next":     page < int(totalPages),
			"has_prev":     page > 1,
		},
	})
}

type UpdateFeeRecordRequest struct {
	Status     *string  `json:"status"`
	DueDate    *string  `json:"due_date"`
	PaidAmount *float64 `json:"paid_amount"`
}

// UpdateFeeRecord edits a single record.
// PUT /api/v1/fee-records/:id
func UpdateFeeRecord(c *gin.Context) {
	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fee record id"})
		return
	}

	var req UpdateFeeRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var record models.FeeRecord
	if err := config.DB.Where("fee_record_id = ? AND deleted_at IS NULL", recordID).
		First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fee record not found"})
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Status != nil {
		if !models.IsValidFeeStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fee status"})
			return
		}
		updates["status"] = *req.Status
	}
	if req.DueDate != nil {
		due, err := time.ParseInLocation("2006-01-02", *req.DueDate, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Due date must be YYYY-MM-DD"})
			return
		}
		updates["due_date"] = due
	}
	if req.PaidAmount != nil {
		if *req.PaidAmount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Paid amount cannot be negative"})
			return
		}
		updates["paid_amount"] = *req.PaidAmount
	}

	if err := config.DB.Model(&record).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fee record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fee record updated",
	})
}

type BulkUpdateFeeRecordsRequest struct {
	RecordIDs []int                 `json:"record_ids" binding:"required"`
	Patch     services.FeeBulkPatch `json:"patch"`
}

// BulkUpdateFeeRecords applies one status/due-date change to a selection.
// POST /api/v1/fee-records/bulk-update
func BulkUpdateFeeRecords(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionBulkUpdateFees) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req BulkUpdateFeeRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewFeeBulkService(config.DB)
	result, err := svc.BulkUpdate(userID.(int), req.RecordIDs, req.Patch)
	if err != nil {
		switch err {
		case services.ErrNoRecordsSelected, services.ErrEmptyPatch,
			services.ErrInvalidStatus, services.ErrInvalidDueDate:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Bulk update failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportFeeRecords downloads the currently filtered record set as CSV.
// GET /api/v1/fee-records/export
func ExportFeeRecords(c *gin.Context) {
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionExportReports) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	filter, ok := bindFeeFilter(c)
	if !ok {
		return
	}

	svc := services.NewFeeAnalyticsService(config.DB)
	rows, err := svc.ExportRows(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	columns := []utils.Column[services.FeeRecordExportRow]{
		{Header: "Record ID", Value: func(r services.FeeRecordExportRow) interface{} { return r.FeeRecordID }},
		{Header: "Student", Value: func(r services.FeeRecordExportRow) interface{} { return r.StudentName }},
		{Header: "Roll Number", Value: func(r services.FeeRecordExportRow) interface{} { return r.RollNumber }},
		{Header: "Department", Value: func(r services.FeeRecordExportRow) interface{} { return r.DepartmentCode }},
		{Header: "Fee Type", Value: func(r services.FeeRecordExportRow) interface{} { return r.FeeTypeName }},
		{Header: "Academic Year", Value: func(r services.FeeRecordExportRow) interface{} { return r.AcademicYear }},
		{Header: "Semester", Value: func(r services.FeeRecordExportRow) interface{} { return r.Semester }},
		{Header: "Final Amount", Value: func(r services.FeeRecordExportRow) interface{} { return r.FinalAmount.Float64() }},
		{Header: "Paid Amount", Value: func(r services.FeeRecordExportRow) interface{} { return r.PaidAmount.Float64() }},
		{Header: "Outstanding", Value: func(r services.FeeRecordExportRow) interface{} { return r.Outstanding.Float64() }},
		{Header: "Status", Value: func(r services.FeeRecordExportRow) interface{} { return r.Status }},
		{Header: "Due Date", Value: func(r services.FeeRecordExportRow) interface{} { return r.DueDate }},
	}

	csv := utils.ToCSV(rows, columns)
	filename := utils.ExportFilename("fee-records", time.Now())

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// RunOverdueSweep marks past-due records overdue on demand.
// POST /api/v1/fee-records/mark-overdue
func RunOverdueSweep(c *gin.Context) {
	svc := services.NewOverdueSweepService(config.DB)
	count, err := svc.MarkOverdue(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Overdue sweep failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"marked_count": count,
	})
}
