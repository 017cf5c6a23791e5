package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/logger"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/models"
)

var processStart = time.Now()

type AdminHandler struct {
	DB *gorm.DB
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Order("created_at desc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"statistics": h.userStatistics(),
	})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats := h.userStatistics()

	var totalFiles int64
	h.DB.Model(&models.Upload{}).Count(&totalFiles)

	var newUsersToday int64
	h.DB.Model(&models.User{}).Where("created_at >= ?", time.Now().Add(-24*time.Hour)).Count(&newUsersToday)

	var recentLogins int64
	h.DB.Model(&models.User{}).Where("last_login >= ?", time.Now().Add(-7*24*time.Hour)).Count(&recentLogins)

	stats["systemStats"] = gin.H{
		"serverUptime": int64(time.Since(processStart).Seconds()),
		"totalFiles":   totalFiles,
	}
	stats["userStats"] = gin.H{
		"newUsersToday": newUsersToday,
		"recentLogins":  recentLogins,
	}

	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}

func (h *AdminHandler) ToggleStatus(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if user.ID == caller {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot deactivate your own account"})
		return
	}

	user.IsActive = !user.IsActive
	if err := h.DB.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	verb := "deactivated"
	if user.IsActive {
		verb = "activated"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "user " + verb + " successfully",
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"isActive": user.IsActive,
		},
	})
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if user.ID == caller {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot change your own role"})
		return
	}

	if err := h.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "user role updated to " + req.Role,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  req.Role,
		},
	})
}

// DeleteUser removes the user and everything they own in one transaction.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if user.ID == caller {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot delete your own account"})
		return
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Analysis{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Upload{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	}); err != nil {
		logger.L().Error("user delete failed", zap.String("id", user.ID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

func (h *AdminHandler) userStatistics() gin.H {
	var total, active, admins int64
	h.DB.Model(&models.User{}).Count(&total)
	h.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&active)
	h.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)

	return gin.H{
		"totalUsers":    total,
		"activeUsers":   active,
		"inactiveUsers": total - active,
		"adminUsers":    admins,
		"regularUsers":  total - admins,
	}
}
