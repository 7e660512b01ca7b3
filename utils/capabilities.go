// utils/capabilities.go - Central role capability table
package utils

import (
	"college-portal-api/models"
)

// Actions guarded by CanPerform. Route-level RequireRole stays the
// authoritative check; this table keeps controller-side guards in one place
// instead of scattering role-slice comparisons.
const (
	ActionViewAnalytics      = "view_analytics"
	ActionBulkUpdateFees     = "bulk_update_fees"
	ActionExportReports      = "export_reports"
	ActionManageUsers        = "manage_users"
	ActionManageScholarships = "manage_scholarships"
	ActionReviewLeave        = "review_leave"
)

var capabilities = map[string][]int{
	ActionViewAnalytics:      {models.RoleDeptHead, models.RoleAdmin, models.RoleChairman},
	ActionBulkUpdateFees:     {models.RoleAdmin, models.RoleChairman},
	ActionExportReports:      {models.RoleDeptHead, models.RoleAdmin, models.RoleChairman},
	ActionManageUsers:        {models.RoleAdmin, models.RoleChairman},
	ActionManageScholarships: {models.RoleAdmin, models.RoleChairman},
	ActionReviewLeave:        {models.RoleDeptHead, models.RoleAdmin},
}

// CanPerform reports whether the role is allowed to perform the action.
// Unknown actions are always denied.
func CanPerform(roleID int, action string) bool {
	for _, allowed := range capabilities[action] {
		if roleID == allowed {
			return true
		}
	}
	return false
}
