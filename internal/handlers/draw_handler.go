package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luckydraw/draw-backend/internal/engine"
	"github.com/luckydraw/draw-backend/internal/services"
	"github.com/luckydraw/draw-backend/internal/utils"
)

// DrawHandler handles draw-related HTTP requests.
type DrawHandler struct {
	drawService services.DrawService
}

// NewDrawHandler creates a new DrawHandler.
func NewDrawHandler(drawService services.DrawService) *DrawHandler {
	return &DrawHandler{drawService: drawService}
}

// DrawPrize handles POST /draws/prize/:prizeId
func (h *DrawHandler) DrawPrize(c *gin.Context) {
	var request services.DrawRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	winners, err := h.drawService.DrawPrize(c.Request.Context(), c.Param("prizeId"), request)
	if err != nil {
		status := http.StatusInternalServerError
		if engine.IsConfigError(err) {
			status = http.StatusBadRequest
		} else if errors.Is(err, services.ErrPrizeNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"winners": winners, "count": len(winners)})
}

// DrawAll handles POST /draws/all
func (h *DrawHandler) DrawAll(c *gin.Context) {
	var request services.DrawRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	winners, err := h.drawService.DrawAll(c.Request.Context(), request)
	if err != nil {
		status := http.StatusInternalServerError
		if engine.IsConfigError(err) {
			status = http.StatusBadRequest
		}
		// Prizes drawn before the failure are already committed; return
		// them alongside the error.
		c.JSON(status, gin.H{"error": err.Error(), "winners": winners, "count": len(winners)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"winners": winners, "count": len(winners)})
}

// GetAvailablePrizes handles GET /draws/available
func (h *DrawHandler) GetAvailablePrizes(c *gin.Context) {
	prizes, err := h.drawService.AvailablePrizes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list available prizes: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, prizes)
}

// GetState handles GET /draws/state
func (h *DrawHandler) GetState(c *gin.Context) {
	state, err := h.drawService.GetState(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draw state: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetWinners handles GET /draws/winners
func (h *DrawHandler) GetWinners(c *gin.Context) {
	winners, err := h.drawService.GetWinners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load winners: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"winners": winners, "count": len(winners)})
}

// ExportWinners handles GET /draws/winners/export
func (h *DrawHandler) ExportWinners(c *gin.Context) {
	winners, err := h.drawService.GetWinners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load winners: " + err.Error()})
		return
	}
	payload, err := utils.WinnersCSV(winners)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render CSV: " + err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="results.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// Reset handles POST /draws/reset
func (h *DrawHandler) Reset(c *gin.Context) {
	if err := h.drawService.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset draw state: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
