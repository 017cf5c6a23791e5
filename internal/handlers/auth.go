package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/config"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/email"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/logger"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/models"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/utils"
)

type AuthHandler struct {
	DB   *gorm.DB
	Cfg  config.Config
	Mail email.Sender
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type resetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	OTP      string `json:"otp" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=6"`
}

func NewAuthHandler(db *gorm.DB, cfg config.Config, mail email.Sender) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Mail: mail}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password error"})
		return
	}

	role := models.RoleUser
	if req.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user creation failed"})
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Email, user.Role, h.Cfg.JwtSecret, h.Cfg.JwtHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if req.Role != "" && req.Role != user.Role {
		c.JSON(http.StatusForbidden, gin.H{"error": "role mismatch"})
		return
	}

	now := time.Now()
	if err := h.DB.Model(&user).Updates(map[string]any{
		"last_login":  now,
		"login_count": gorm.Expr("login_count + 1"),
	}).Error; err != nil {
		logger.L().Error("login bookkeeping failed", zap.Error(err))
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Email, user.Role, h.Cfg.JwtSecret, h.Cfg.JwtHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

const forgotPasswordMessage = "If an account with that email exists, an OTP has been sent."

// ForgotPassword answers the same way whether or not the account exists.
// Resends hit this handler too and overwrite the previous code.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
		return
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "otp generation failed"})
		return
	}

	expiresAt := time.Now().Add(time.Duration(h.Cfg.OtpMinutes) * time.Minute)
	if err := h.DB.Model(&user).Updates(map[string]any{
		"reset_otp":         code,
		"reset_otp_expires": expiresAt,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "otp storage failed"})
		return
	}

	subject := "Password Reset OTP"
	body := "Your OTP for password reset is: " + code + "\n" +
		"This OTP will expire in 10 minutes.\n" +
		"If you did not request this, please ignore this email and your password will remain unchanged."
	if err := h.Mail.Send(user.Email, subject, body); err != nil {
		logger.L().Error("otp mail failed", zap.String("email", user.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "email failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ? AND reset_otp = ? AND reset_otp_expires > ?",
		req.Email, req.OTP, time.Now()).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "otp invalid or expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "otp verified"})
}

// ResetPassword re-validates the code itself; a prior VerifyOTP call is
// advisory only. The conditional update clears the code in the same
// statement so two racing resets cannot both consume it.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	newHash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "password error"})
		return
	}

	result := h.DB.Model(&models.User{}).
		Where("email = ? AND reset_otp = ? AND reset_otp_expires > ?", req.Email, req.OTP, time.Now()).
		Updates(map[string]any{
			"password_hash":     newHash,
			"reset_otp":         nil,
			"reset_otp_expires": nil,
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "otp invalid or expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset successful"})
}
