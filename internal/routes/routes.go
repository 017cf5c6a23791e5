package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/ai"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/config"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/email"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/handlers"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/middleware"
)

// Deps carries the outbound collaborators so tests can substitute them.
type Deps struct {
	Mail email.Sender
	AI   *ai.Client
}

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config, deps Deps) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	if deps.Mail == nil {
		deps.Mail = email.NewSMTPSender(email.Config{
			Host:     cfg.SmtpHost,
			Port:     cfg.SmtpPort,
			Username: cfg.SmtpUser,
			Password: cfg.SmtpPass,
			From:     cfg.SmtpFrom,
		})
	}
	if deps.AI == nil {
		deps.AI = ai.NewClient(cfg.OpenRouterKey, cfg.OpenRouterModel,
			time.Duration(cfg.AiTimeoutSeconds)*time.Second)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "excel-analytics-backend"})
	})
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := handlers.NewAuthHandler(db, cfg, deps.Mail)
	userHandler := handlers.NewUserHandler(db)
	fileHandler := handlers.NewFileHandler(db, cfg.MaxUploadBytes)
	aiHandler := handlers.NewAIHandler(deps.AI)
	analysisHandler := handlers.NewAnalysisHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	api := router.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/forgot-password", authHandler.ForgotPassword)
		api.POST("/auth/resend-otp", authHandler.ForgotPassword)
		api.POST("/auth/verify-otp", authHandler.VerifyOTP)
		api.POST("/auth/reset-password", authHandler.ResetPassword)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		protected.PUT("/user/update", userHandler.UpdateProfile)
		protected.PUT("/user/change-password", userHandler.ChangePassword)

		protected.POST("/file/upload", fileHandler.Upload)
		protected.GET("/file", fileHandler.List)
		protected.DELETE("/file/:id", fileHandler.Delete)

		protected.POST("/ai/summarize", aiHandler.Summarize)

		protected.POST("/analysis", analysisHandler.Create)
		protected.GET("/analysis", analysisHandler.List)
		protected.DELETE("/analysis/:id", analysisHandler.Delete)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminRequired(db))
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/stats", adminHandler.Stats)
		admin.PUT("/users/:id/status", adminHandler.ToggleStatus)
		admin.PUT("/users/:id/role", adminHandler.ChangeRole)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
