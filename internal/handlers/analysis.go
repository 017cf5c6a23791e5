package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/models"
)

type AnalysisHandler struct {
	DB *gorm.DB
}

type createAnalysisRequest struct {
	UploadID  string `json:"uploadId" binding:"required,uuid"`
	Summary   string `json:"summary" binding:"required"`
	ChartType string `json:"chartType" binding:"required"`
	XAxis     string `json:"xAxis" binding:"required"`
	YAxis     string `json:"yAxis" binding:"required"`
	Title     string `json:"title"`
}

func NewAnalysisHandler(db *gorm.DB) *AnalysisHandler {
	return &AnalysisHandler{DB: db}
}

func (h *AnalysisHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	uploadID := uuid.MustParse(req.UploadID)
	var upload models.Upload
	if err := h.DB.Where("id = ? AND user_id = ?", uploadID, userID).First(&upload).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
		return
	}

	analysis := models.Analysis{
		UserID:    userID,
		UploadID:  uploadID,
		Summary:   req.Summary,
		ChartType: req.ChartType,
		XAxis:     req.XAxis,
		YAxis:     req.YAxis,
		Title:     req.Title,
	}
	if err := h.DB.Create(&analysis).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "analysis saved", "analysis": analysis})
}

func (h *AnalysisHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var analyses []models.Analysis
	if err := h.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&analyses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, analyses)
}

func (h *AnalysisHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var analysis models.Analysis
	if err := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&analysis).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}

	if err := h.DB.Delete(&analysis).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "analysis deleted"})
}
