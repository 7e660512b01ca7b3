package controllers

import (
	"net/http"
	"sync"
	"time"

	"college-portal-api/config"
	"college-portal-api/models"
	"college-portal-api/services"

	"github.com/gin-gonic/gin"
)

var (
	dashboardCacheOnce sync.Once
	dashboardCache     *services.DashboardCache
)

func getDashboardCache() *services.DashboardCache {
	dashboardCacheOnce.Do(func() {
		analytics := services.NewFeeAnalyticsService(config.DB)
		dashboardCache = services.NewDashboardCache(analytics, 2*time.Minute)
	})
	return dashboardCache
}

// GetDashboardStats returns dashboard statistics for the caller's role.
// GET /api/v1/dashboard/stats
func GetDashboardStats(c *gin.Context) {
	userIDVal, userExists := c.Get("userID")
	roleIDVal, roleExists := c.Get("roleID")
	if !userExists || !roleExists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "authentication context missing",
		})
		return
	}

	userID := userIDVal.(int)
	roleID := roleIDVal.(int)

	var stats map[string]interface{}
	var err error
	switch roleID {
	case models.RoleAdmin, models.RoleChairman:
		stats, err = getInstitutionDashboard()
	case models.RoleDeptHead:
		deptID, ok := c.Get("departmentID")
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "No department assigned"})
			return
		}
		stats, err = getDepartmentDashboard(deptID.(int))
	default:
		stats, err = getStudentDashboard(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}

	stats["current_date"] = time.Now().Format("2006-01-02")

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

// RefreshDashboard forces a recompute of the cached snapshot.
// POST /api/v1/dashboard/refresh
func RefreshDashboard(c *gin.Context) {
	snap, err := getDashboardCache().Refresh()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"snapshot": snap,
	})
}

// getInstitutionDashboard is the admin/chairman view: the cached
// institution-wide snapshot plus workload counters.
func getInstitutionDashboard() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	snap, err := getDashboardCache().Snapshot()
	if err != nil {
		return nil, err
	}
	stats["collection"] = snap

	var pendingLeave int64
	config.DB.Model(&models.LeaveRequest{}).
		Where("status = ? AND deleted_at IS NULL", models.LeaveStatusPending).
		Count(&pendingLeave)
	stats["pending_leave_requests"] = pendingLeave

	var openInvitations int64
	config.DB.Model(&models.Invitation{}).
		Where("accepted_at IS NULL AND expires_at > ? AND deleted_at IS NULL", time.Now()).
		Count(&openInvitations)
	stats["open_invitations"] = openInvitations

	var unlinkedScholarships int64
	config.DB.Model(&models.Scholarship{}).
		Where("received_by_institution = 1 AND deleted_at IS NULL AND scholarship_id NOT IN (SELECT scholarship_id FROM fee_records WHERE scholarship_id IS NOT NULL AND deleted_at IS NULL)").
		Count(&unlinkedScholarships)
	stats["unlinked_received_scholarships"] = unlinkedScholarships

	return stats, nil
}

// getDepartmentDashboard is the HOD view: the department's own summary for
// the default window plus its pending leave queue.
func getDepartmentDashboard(departmentID int) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	filter := services.DefaultFeeRecordFilter(time.Now())
	filter.DepartmentIDs = []int{departmentID}

	svc := services.NewFeeAnalyticsService(config.DB)
	rows, err := svc.DepartmentSummaries(filter)
	if err != nil {
		return nil, err
	}
	totals := services.SummaryTotals(rows)
	stats["department_summary"] = rows
	stats["totals"] = totals
	stats["collection_rate"] = services.CollectionRate(totals)

	var pendingLeave int64
	config.DB.Table("leave_requests lr").
		Joins("JOIN users u ON u.user_id = lr.student_id").
		Where("u.department_id = ? AND lr.status = ? AND lr.deleted_at IS NULL",
			departmentID, models.LeaveStatusPending).
		Count(&pendingLeave)
	stats["pending_leave_requests"] = pendingLeave

	return stats, nil
}

// getStudentDashboard is the student view: own fees, scholarships and leave.
func getStudentDashboard(userID int) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var feeSummary struct {
		RecordCount  int64   `json:"record_count"`
		TotalFees    float64 `json:"total_fees"`
		TotalPaid    float64 `json:"total_paid"`
		Outstanding  float64 `json:"outstanding"`
		OverdueCount int64   `json:"overdue_count"`
	}
	err := config.DB.Table("fee_records").
		Select(`COUNT(*) AS record_count,
			COALESCE(SUM(final_amount), 0) AS total_fees,
			COALESCE(SUM(paid_amount), 0) AS total_paid,
			COALESCE(SUM(final_amount - paid_amount), 0) AS outstanding,
			SUM(CASE WHEN status = 'Overdue' THEN 1 ELSE 0 END) AS overdue_count`).
		Where("student_id = ? AND deleted_at IS NULL", userID).
		Scan(&feeSummary).Error
	if err != nil {
		return nil, err
	}
	stats["fees"] = feeSummary

	var scholarships []models.Scholarship
	if err := config.DB.Where("student_id = ? AND deleted_at IS NULL", userID).
		Order("academic_year DESC").
		Find(&scholarships).Error; err != nil {
		return nil, err
	}
	stats["scholarships"] = scholarships

	var recentLeave []models.LeaveRequest
	if err := config.DB.Where("student_id = ? AND deleted_at IS NULL", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&recentLeave).Error; err != nil {
		return nil, err
	}
	stats["recent_leave_requests"] = recentLeave

	return stats, nil
}
