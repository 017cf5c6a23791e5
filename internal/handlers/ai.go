package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/ai"
	"github.com/akshay2172/Excel-Analytics-Platform/internal/logger"
)

type AIHandler struct {
	Client *ai.Client
}

type summarizeRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{Client: client}
}

func (h *AIHandler) Summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	summary, err := h.Client.Summarize(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, ai.ErrUpstreamTimeout) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "upstream timeout"})
			return
		}
		logger.L().Error("summarize failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI summarization failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
