package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"college-portal-api/config"
	"college-portal-api/models"
	"college-portal-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GetUsers returns the user list, filterable by role and department.
// GET /api/v1/users?role_id=1&department_id=2&search=...
func GetUsers(c *gin.Context) {
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionManageUsers) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	query := config.DB.Preload("Role").Preload("Department").
		Where("deleted_at IS NULL")

	if filterRole := c.Query("role_id"); filterRole != "" {
		query = query.Where("role_id = ?", filterRole)
	}
	if deptID := c.Query("department_id"); deptID != "" {
		query = query.Where("department_id = ?", deptID)
	}
	if search := c.Query("search"); search != "" {
		term := "%" + search + "%"
		query = query.Where("CONCAT(first_name, ' ', last_name) LIKE ? OR email LIKE ? OR roll_number LIKE ?",
			term, term, term)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"total":   len(users),
	})
}

type InviteUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	RoleID       int    `json:"role_id" binding:"required"`
	DepartmentID *int   `json:"department_id"`
}

// InviteUser creates a pending invitation and mails the invite link.
// POST /api/v1/users/invite
func InviteUser(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionManageUsers) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var req InviteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.RoleID < models.RoleStudent || req.RoleID > models.RoleChairman {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	// Reject duplicate accounts and still-open invites
	var existing int64
	config.DB.Model(&models.User{}).
		Where("email = ? AND deleted_at IS NULL", req.Email).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A user with this email already exists"})
		return
	}
	config.DB.Model(&models.Invitation{}).
		Where("email = ? AND accepted_at IS NULL AND expires_at > ? AND deleted_at IS NULL", req.Email, time.Now()).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "An invitation for this email is already pending"})
		return
	}

	invitation := models.Invitation{
		Email:        req.Email,
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
		Token:        uuid.NewString(),
		InvitedBy:    userID.(int),
		ExpiresAt:    time.Now().Add(7 * 24 * time.Hour),
	}

	if err := config.DB.Create(&invitation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	// Mail delivery failure is non-fatal; the token can be resent.
	portalURL := os.Getenv("PORTAL_URL")
	link := fmt.Sprintf("%s/accept-invitation?token=%s", portalURL, invitation.Token)
	body := fmt.Sprintf(`<p>You have been invited to the college portal.</p>
<p><a href="%s">Accept your invitation</a> (valid for 7 days)</p>`, link)
	if err := config.SendMail([]string{req.Email}, "College Portal Invitation", body); err != nil {
		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"invitation": invitation,
			"warning":    "Invitation created but email could not be sent",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"invitation": invitation,
	})
}

type AcceptInvitationRequest struct {
	Token     string `json:"token" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

// AcceptInvitation redeems an invite token and activates the account.
// POST /api/v1/users/accept-invitation (public)
func AcceptInvitation(c *gin.Context) {
	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invitation models.Invitation
	if err := config.DB.Where("token = ? AND accepted_at IS NULL AND deleted_at IS NULL", req.Token).
		First(&invitation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found or already used"})
		return
	}
	if invitation.Expired(time.Now()) {
		c.JSON(http.StatusGone, gin.H{"error": "Invitation has expired"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        invitation.Email,
		Password:     string(hashed),
		RoleID:       invitation.RoleID,
		DepartmentID: invitation.DepartmentID,
		IsActive:     true,
	}

	tx := config.DB.Begin()
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	now := time.Now()
	if err := tx.Model(&invitation).Update("accepted_at", now).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem invitation"})
		return
	}
	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
		"message": "Account created, you can now log in",
	})
}

// DeactivateUser soft-deletes a user account.
// DELETE /api/v1/users/:id
func DeactivateUser(c *gin.Context) {
	roleID, _ := c.Get("roleID")
	if !utils.CanPerform(roleID.(int), utils.ActionManageUsers) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	userID, _ := c.Get("userID")
	if targetID == userID.(int) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot deactivate your own account"})
		return
	}

	now := time.Now()
	result := config.DB.Model(&models.User{}).
		Where("user_id = ? AND deleted_at IS NULL", targetID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deactivated",
	})
}
