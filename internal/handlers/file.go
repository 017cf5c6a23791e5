package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/excel"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/logger"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/models"
)

type FileHandler struct {
	DB       *gorm.DB
	MaxBytes int64
}

// uploadBodyMargin covers multipart framing on top of the file size cap.
const uploadBodyMargin = 1 << 20

func NewFileHandler(db *gorm.DB, maxBytes int64) *FileHandler {
	return &FileHandler{DB: db, MaxBytes: maxBytes}
}

// Upload ingests one workbook: decode the first sheet, persist the parsed
// rows, echo them back. The whole file is held in memory; the size cap
// keeps that sane.
func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes+uploadBodyMargin)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file"})
		return
	}
	if fileHeader.Size > h.MaxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file"})
		return
	}
	defer file.Close()

	sheet, err := excel.Parse(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not parse spreadsheet"})
		return
	}

	upload := models.Upload{
		UserID:   userID,
		Filename: fileHeader.Filename,
		Parsed:   sheet.Rows,
	}
	if err := h.DB.Create(&upload).Error; err != nil {
		logger.L().Error("upload persist failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "file parsed",
		"headers":  sheet.Headers,
		"rows":     len(sheet.Rows),
		"parsed":   sheet.Rows,
		"uploadId": upload.ID,
	})
}

func (h *FileHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var uploads []models.Upload
	if err := h.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&uploads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, uploads)
}

func (h *FileHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var upload models.Upload
	if err := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&upload).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "upload not found"})
		return
	}

	if err := h.DB.Delete(&upload).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "upload deleted"})
}
