package links

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fdciabdul/go-safelink/pkg/safelink/models"
)

// Handler handles admin link management requests
type Handler struct {
	store    *Store
	baseURL  string
	pageSize int
}

// NewHandler creates a new links handler
func NewHandler(store *Store, baseURL string, pageSize int) *Handler {
	return &Handler{store: store, baseURL: baseURL, pageSize: pageSize}
}

// CreateLinkRequest represents the request to create a link
type CreateLinkRequest struct {
	Title          string `json:"title" binding:"required"`
	DestinationURL string `json:"destination_url" binding:"required,url"`
	Slug           string `json:"slug"`
	CustomTitle    string `json:"custom_title"`
	CustomWaitTime int    `json:"custom_wait_time"`
	Status         string `json:"status"`
}

// UpdateLinkRequest represents the request to update a link. A slug field
// is accepted but ignored: slugs never change after creation.
type UpdateLinkRequest struct {
	Title          string `json:"title" binding:"required"`
	DestinationURL string `json:"destination_url" binding:"required,url"`
	Slug           string `json:"slug"`
	CustomTitle    string `json:"custom_title"`
	CustomWaitTime int    `json:"custom_wait_time"`
	Status         string `json:"status"`
}

// BulkStatusRequest selects links for a status flip
type BulkStatusRequest struct {
	IDs    []uint `json:"ids" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// BulkDeleteRequest selects links for deletion
type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// LinkResponse represents a link in API responses
type LinkResponse struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	DestinationURL string `json:"destination_url"`
	Slug           string `json:"slug"`
	SafelinkURL    string `json:"safelink_url"`
	Created        string `json:"created"`
	Clicks         uint   `json:"clicks"`
	Status         string `json:"status"`
	CustomTitle    string `json:"custom_title"`
	CustomWaitTime int    `json:"custom_wait_time"`
}

// ListResponse carries one page of links plus the filtered total
type ListResponse struct {
	Items      []LinkResponse `json:"items"`
	TotalCount int64          `json:"total_count"`
}

func (h *Handler) linkToResponse(link *models.Link) LinkResponse {
	return LinkResponse{
		ID:             link.ID,
		Title:          link.Title,
		DestinationURL: link.DestinationURL,
		Slug:           link.Slug,
		SafelinkURL:    strings.TrimSuffix(h.baseURL, "/") + "/go/" + link.Slug,
		Created:        link.Created.Format("2006-01-02T15:04:05Z"),
		Clicks:         link.Clicks,
		Status:         link.Status,
		CustomTitle:    link.CustomTitle,
		CustomWaitTime: link.CustomWaitTime,
	}
}

// respondError maps store errors onto the admin-facing taxonomy: validation
// and duplicate-slug failures are surfaced verbatim, missing rows are 404,
// and persistence failures become a generic message with the underlying
// detail attached for diagnostics.
func respondError(c *gin.Context, err error) {
	var verr *ValidationError
	var serr *StoreError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{"error": "Slug already exists. Please choose a different one."})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
	case errors.Is(err, ErrSlugSpaceExhausted):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate a unique slug"})
	case errors.As(err, &serr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed", "detail": serr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}

// Create creates a new link
// @Summary Create a link
// @Description Create a new cloaked link; the slug is generated when absent
// @Tags links
// @Accept json
// @Produce json
// @Param request body CreateLinkRequest true "Link details"
// @Success 201 {object} LinkResponse
// @Router /links [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var slug string
	if req.Slug == "" {
		generated, err := h.store.GenerateSlug()
		if err != nil {
			respondError(c, err)
			return
		}
		slug = generated
	} else {
		slug = CanonicalizeSlug(req.Slug)
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slug has no usable characters"})
			return
		}
	}

	link, err := h.store.Insert(InsertParams{
		Title:          req.Title,
		DestinationURL: req.DestinationURL,
		Slug:           slug,
		CustomTitle:    req.CustomTitle,
		CustomWaitTime: req.CustomWaitTime,
		Status:         req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.linkToResponse(link))
}

// Get returns a single link by id
// @Summary Get a link
// @Tags links
// @Produce json
// @Param id path int true "Link ID"
// @Success 200 {object} LinkResponse
// @Router /links/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	link, err := h.store.GetByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.linkToResponse(link))
}

// Update updates a link's mutable fields
// @Summary Update a link
// @Description Update title, destination, overrides and status; slug is immutable
// @Tags links
// @Accept json
// @Produce json
// @Param id path int true "Link ID"
// @Param request body UpdateLinkRequest true "Updated link details"
// @Success 200 {object} LinkResponse
// @Router /links/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Update(uint(id), UpdateParams{
		Title:          req.Title,
		DestinationURL: req.DestinationURL,
		CustomTitle:    req.CustomTitle,
		CustomWaitTime: req.CustomWaitTime,
		Status:         req.Status,
	}); err != nil {
		respondError(c, err)
		return
	}

	link, err := h.store.GetByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.linkToResponse(link))
}

// Delete removes a link
// @Summary Delete a link
// @Tags links
// @Produce json
// @Param id path int true "Link ID"
// @Success 200 {object} map[string]string "Link deleted"
// @Router /links/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	if err := h.store.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted"})
}

// List returns a page of links
// @Summary List links
// @Description Search, sort and paginate links. Unrecognized sort parameters
// @Description fall back to created/desc so stale admin URLs keep working.
// @Tags links
// @Produce json
// @Param q query string false "Search text (matches title, destination URL or slug)"
// @Param orderby query string false "Sort field: title, clicks, created or status"
// @Param order query string false "Sort direction: asc or desc"
// @Param page query int false "1-indexed page"
// @Success 200 {object} ListResponse
// @Router /links [get]
func (h *Handler) List(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	items, total, err := h.store.List(ListQuery{
		Search:    c.Query("q"),
		SortField: c.Query("orderby"),
		SortDir:   c.Query("order"),
		Page:      page,
		PageSize:  h.pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]LinkResponse, len(items))
	for i := range items {
		responses[i] = h.linkToResponse(&items[i])
	}
	c.JSON(http.StatusOK, ListResponse{Items: responses, TotalCount: total})
}

// BulkStatus activates or deactivates a set of links
// @Summary Bulk status update
// @Tags links
// @Accept json
// @Produce json
// @Param request body BulkStatusRequest true "Link IDs and target status"
// @Success 200 {object} map[string]string
// @Router /links/bulk/status [post]
func (h *Handler) BulkStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.BulkUpdateStatus(req.IDs, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// BulkDelete removes a set of links
// @Summary Bulk delete
// @Tags links
// @Accept json
// @Produce json
// @Param request body BulkDeleteRequest true "Link IDs"
// @Success 200 {object} map[string]string
// @Router /links/bulk/delete [post]
func (h *Handler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.BulkDelete(req.IDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Links deleted"})
}

// RegisterRoutes registers link management routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/links", h.Create)
	rg.GET("/links", h.List)
	rg.GET("/links/:id", h.Get)
	rg.PUT("/links/:id", h.Update)
	rg.DELETE("/links/:id", h.Delete)
	rg.POST("/links/bulk/status", h.BulkStatus)
	rg.POST("/links/bulk/delete", h.BulkDelete)
}
