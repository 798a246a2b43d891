package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/services"
)

// PrizeHandler handles prize configuration HTTP requests.
type PrizeHandler struct {
	prizeService services.PrizeService
}

// NewPrizeHandler creates a new PrizeHandler.
func NewPrizeHandler(prizeService services.PrizeService) *PrizeHandler {
	return &PrizeHandler{prizeService: prizeService}
}

// GetPrizes handles GET /prizes
func (h *PrizeHandler) GetPrizes(c *gin.Context) {
	prizes, err := h.prizeService.GetPrizes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load prizes: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prizes": prizes, "count": len(prizes)})
}

// ReplacePrizes handles PUT /prizes
func (h *PrizeHandler) ReplacePrizes(c *gin.Context) {
	var prizes []*models.PrizeConfig
	if err := c.ShouldBindJSON(&prizes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.prizeService.ReplacePrizes(c.Request.Context(), prizes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(prizes)})
}
