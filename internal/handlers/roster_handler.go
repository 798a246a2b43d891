package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luckydraw/draw-backend/internal/models"
	"github.com/luckydraw/draw-backend/internal/services"
)

// RosterHandler handles participant and exclusion roster HTTP requests.
type RosterHandler struct {
	rosterService services.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// GetRoster handles GET /participants
func (h *RosterHandler) GetRoster(c *gin.Context) {
	people, err := h.rosterService.GetRoster(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load roster: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": people, "count": len(people)})
}

// ReplaceRoster handles PUT /participants
func (h *RosterHandler) ReplaceRoster(c *gin.Context) {
	var people []*models.Person
	if err := c.ShouldBindJSON(&people); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.rosterService.ReplaceRoster(c.Request.Context(), people); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(people)})
}

// ImportRosterCSV handles POST /participants/import
func (h *RosterHandler) ImportRosterCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A CSV file upload named 'file' is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload: " + err.Error()})
		return
	}

	count, err := h.rosterService.ImportRosterCSV(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

// GetExcluded handles GET /participants/excluded
func (h *RosterHandler) GetExcluded(c *gin.Context) {
	people, err := h.rosterService.GetExcluded(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exclusion list: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": people, "count": len(people)})
}

// ReplaceExcluded handles PUT /participants/excluded
func (h *RosterHandler) ReplaceExcluded(c *gin.Context) {
	var people []*models.Person
	if err := c.ShouldBindJSON(&people); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.rosterService.ReplaceExcluded(c.Request.Context(), people); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(people)})
}
