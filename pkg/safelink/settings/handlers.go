package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles admin settings requests
type Handler struct {
	store *Store
}

// NewHandler creates a new settings handler
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// UpdateSettingsRequest represents the request to update global settings
type UpdateSettingsRequest struct {
	WaitTime    int    `json:"wait_time"`
	PageTitle   string `json:"page_title"`
	AdsenseCode string `json:"adsense_code"`
}

// Get returns the current global settings
// @Summary Get settings
// @Tags settings
// @Produce json
// @Success 200 {object} Settings
// @Router /settings [get]
func (h *Handler) Get(c *gin.Context) {
	current, err := h.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, current)
}

// Update overwrites the global settings
// @Summary Update settings
// @Description Ad markup is sanitized against the AdSense allow-list on save
// @Tags settings
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "New settings"
// @Success 200 {object} Settings
// @Router /settings [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Save(Settings{
		WaitTime:    req.WaitTime,
		PageTitle:   req.PageTitle,
		AdsenseCode: req.AdsenseCode,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings", "detail": err.Error()})
		return
	}

	saved, err := h.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// RegisterRoutes registers settings routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.Get)
	rg.PUT("/settings", h.Update)
}
