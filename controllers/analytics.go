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

func analyticsExportColumns(scope string) []utils.Column[models.AnalyticsRow] {
	return []utils.Column[models.AnalyticsRow]{
		{Header: scope, Value: func(r models.AnalyticsRow) interface{} { return r.GroupName }},
		{Header: "Students", Value: func(r models.AnalyticsRow) interface{} { return r.StudentCount }},
		{Header: "Records", Value: func(r models.AnalyticsRow) interface{} { return r.RecordCount }},
		{Header: "Total Fees", Value: func(r models.AnalyticsRow) interface{} { return r.TotalFees.Float64() }},
		{Header: "Collected", Value: func(r models.AnalyticsRow) interface{} { return r.TotalCollected.Float64() }},
		{Header: "Pending", Value: func(r models.AnalyticsRow) interface{} { return r.TotalPending.Float64() }},
		{Header: "Collection %", Value: func(r models.AnalyticsRow) interface{} { return r.CollectionPercentage.Float64() }},
		{Header: "Overdue", Value: func(r models.AnalyticsRow) interface{} { return r.OverdueCount }},
	}
}

// GetDepartmentAnalytics returns per-department collection summaries for the
// filter window, plus overall totals and top/bottom performers.
// GET /api/v1/analytics/departments
func GetDepartmentAnalytics(c *gin.Context) {
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionViewAnalytics) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	filter, ok := bindFeeFilter(c)
	if !ok {
		return
	}

	svc := services.NewFeeAnalyticsService(config.DB)
	rows, err := svc.DepartmentSummaries(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch department analytics"})
		return
	}

	n, _ := strconv.Atoi(c.DefaultQuery("highlight", "3"))
	totals := services.SummaryTotals(rows)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"departments":     rows,
		"totals":          totals,
		"collection_rate": services.CollectionRate(totals),
		"top":             services.TopByCollection(rows, n),
		"bottom":          services.BottomByCollection(rows, n),
	})
}

// GetFeeTypeAnalytics returns per-fee-type collection summaries.
// GET /api/v1/analytics/fee-types
func GetFeeTypeAnalytics(c *gin.Context) {
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionViewAnalytics) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	filter, ok := bindFeeFilter(c)
	if !ok {
		return
	}

	svc := services.NewFeeAnalyticsService(config.DB)
	rows, err := svc.FeeTypeSummaries(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fee type analytics"})
		return
	}

	n, _ := strconv.Atoi(c.DefaultQuery("highlight", "3"))
	totals := services.SummaryTotals(rows)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"fee_types":       rows,
		"totals":          totals,
		"collection_rate": services.CollectionRate(totals),
		"top":             services.TopByCollection(rows, n),
		"bottom":          services.BottomByCollection(rows, n),
	})
}

// GetCollectionLeaderboard returns departments ranked by collection
// percentage for the filter window.
// GET /api/v1/analytics/leaderboard
func GetCollectionLeaderboard(c *gin.Context) {
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionViewAnalytics) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	filter, ok := bindFeeFilter(c)
	if !ok {
		return
	}

	svc := services.NewFeeAnalyticsService(config.DB)
	rows, err := svc.DepartmentSummaries(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"leaderboard":  services.RankByCollection(rows),
		"generated_at": time.Now(),
	})
}

// ExportDepartmentAnalytics downloads the department summary as CSV.
// GET /api/v1/analytics/departments/export
func ExportDepartmentAnalytics(c *gin.Context) {
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
	rows, err := svc.DepartmentSummaries(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export"})
		return
	}

	csv := utils.ToCSV(rows, analyticsExportColumns("Department"))
	filename := utils.ExportFilename("department-analytics", time.Now())

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
