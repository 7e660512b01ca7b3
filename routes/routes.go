package routes

import (
	"college-portal-api/controllers"
	"college-portal-api/middleware"
	"college-portal-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Invitation redemption (token-gated, no session yet)
			public.POST("/users/accept-invitation", controllers.AcceptInvitation)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "College Portal API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Common endpoints (all authenticated users)
			protected.GET("/departments", controllers.GetDepartments)

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
				dashboard.POST("/refresh",
					middleware.RequireRole(models.RoleAdmin, models.RoleChairman),
					controllers.RefreshDashboard)
			}

			// Fee records
			feeRecords := protected.Group("/fee-records")
			feeRecords.Use(middleware.RequireRole(models.RoleDeptHead, models.RoleAdmin, models.RoleChairman))
			{
				feeRecords.GET("", controllers.GetFeeRecords)
				feeRecords.GET("/filters/default", controllers.GetDefaultFeeFilter)
				feeRecords.GET("/export", controllers.ExportFeeRecords)

				// Mutations are admin/chairman only
				feeRecords.PUT("/:id",
					middleware.RequireRole(models.RoleAdmin, models.RoleChairman),
					controllers.UpdateFeeRecord)
				feeRecords.POST("/bulk-update",
					middleware.RequireRole(models.RoleAdmin, models.RoleChairman),
					controllers.BulkUpdateFeeRecords)
				feeRecords.POST("/mark-overdue",
					middleware.RequireRole(models.RoleAdmin, models.RoleChairman),
					controllers.RunOverdueSweep)
				feeRecords.POST("/:id/connect-scholarship",
					middleware.RequireRole(models.RoleAdmin, models.RoleChairman),
					controllers.ConnectScholarship)
			}

			// Analytics
			analytics := protected.Group("/analytics")
			analytics.Use(middleware.RequireRole(models.RoleDeptHead, models.RoleAdmin, models.RoleChairman))
			{
				analytics.GET("/departments", controllers.GetDepartmentAnalytics)
				analytics.GET("/departments/export", controllers.ExportDepartmentAnalytics)
				analytics.GET("/fee-types", controllers.GetFeeTypeAnalytics)
				analytics.GET("/leaderboard", controllers.GetCollectionLeaderboard)
			}

			// Scholarships
			scholarships := protected.Group("/scholarships")
			{
				scholarships.GET("", controllers.GetScholarships)

				// Administration is admin/chairman only
				scholarships.POST("/initialize",
					middleware.RequireRole(models.RoleAdmin, models.RoleChairman),
					controllers.InitializeEligibility)
				scholarships.PATCH("/:id/status",
					middleware.RequireRole(models.RoleAdmin, models.RoleChairman),
					controllers.UpdateScholarshipStatus)
				scholarships.POST("/auto-connect",
					middleware.RequireRole(models.RoleAdmin, models.RoleChairman),
					controllers.AutoConnectScholarships)
			}

			// Leave requests
			leave := protected.Group("/leave-requests")
			{
				leave.GET("", controllers.GetLeaveRequests)
				leave.POST("",
					middleware.RequireRole(models.RoleStudent),
					controllers.CreateLeaveRequest)
				leave.PATCH("/:id/review",
					middleware.RequireRole(models.RoleDeptHead, models.RoleAdmin),
					controllers.ReviewLeaveRequest)
			}

			// User management (admin/chairman)
			users := protected.Group("/users")
			users.Use(middleware.RequireRole(models.RoleAdmin, models.RoleChairman))
			{
				users.GET("", controllers.GetUsers)
				users.POST("/invite", controllers.InviteUser)
				users.DELETE("/:id", controllers.DeactivateUser)
			}
		}
	}
}
