package shortcode

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes shortcode expansion to the admin surface
type Handler struct {
	expander *Expander
}

// NewHandler creates a new shortcode handler
func NewHandler(expander *Expander) *Handler {
	return &Handler{expander: expander}
}

// RenderRequest carries content with embedded [safelink] shortcodes
type RenderRequest struct {
	Content string `json:"content" binding:"required"`
}

// RenderResponse carries the content with shortcodes expanded to anchors
type RenderResponse struct {
	Rendered string `json:"rendered"`
}

// Render expands shortcodes in a content blob
// @Summary Render shortcodes
// @Description Expand [safelink] shortcodes into cloaked anchors. Legacy
// @Description url-mode shortcodes ensure a link row exists for the URL.
// @Tags shortcode
// @Accept json
// @Produce json
// @Param request body RenderRequest true "Content to expand"
// @Success 200 {object} RenderResponse
// @Router /shortcode/render [post]
func (h *Handler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, RenderResponse{Rendered: h.expander.Expand(req.Content)})
}

// RegisterRoutes registers shortcode routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/shortcode/render", h.Render)
}
