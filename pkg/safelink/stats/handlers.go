package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fdciabdul/go-safelink/pkg/safelink/models"
)

// Handler handles statistics requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new stats handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// TopLink is one row of the top-performing list
type TopLink struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	DestinationURL string `json:"destination_url"`
	Slug           string `json:"slug"`
	Clicks         uint   `json:"clicks"`
}

// StatsResponse represents aggregate link statistics
type StatsResponse struct {
	TotalLinks    int64     `json:"total_links"`
	TotalClicks   int64     `json:"total_clicks"`
	AverageClicks float64   `json:"average_clicks"`
	TopLinks      []TopLink `json:"top_links"`
}

// Get returns totals and the ten most-clicked links
// @Summary Link statistics
// @Tags stats
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /stats [get]
func (h *Handler) Get(c *gin.Context) {
	var resp StatsResponse

	if err := h.db.Model(&models.Link{}).Count(&resp.TotalLinks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats", "detail": err.Error()})
		return
	}
	if err := h.db.Model(&models.Link{}).
		Select("COALESCE(SUM(clicks), 0)").Scan(&resp.TotalClicks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats", "detail": err.Error()})
		return
	}
	if resp.TotalLinks > 0 {
		resp.AverageClicks = float64(resp.TotalClicks) / float64(resp.TotalLinks)
	}

	var top []models.Link
	if err := h.db.Order("clicks DESC").Limit(10).Find(&top).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats", "detail": err.Error()})
		return
	}
	resp.TopLinks = make([]TopLink, len(top))
	for i, link := range top {
		resp.TopLinks[i] = TopLink{
			ID:             link.ID,
			Title:          link.Title,
			DestinationURL: link.DestinationURL,
			Slug:           link.Slug,
			Clicks:         link.Clicks,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterRoutes registers stats routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Get)
}
