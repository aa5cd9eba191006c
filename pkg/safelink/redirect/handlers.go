package redirect

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the public /go/<slug> surface
type Handler struct {
	resolver *Resolver
	homeURL  string
}

// NewHandler creates a new redirect handler
func NewHandler(resolver *Resolver, homeURL string) *Handler {
	return &Handler{resolver: resolver, homeURL: homeURL}
}

// Go resolves a slug and either renders the interstitial wait page or sends
// the visitor home. Every failure path is the home redirect; this endpoint
// never serves an error page.
func (h *Handler) Go(c *gin.Context) {
	decision := h.resolver.Resolve(c.Request.Context(), c.Param("slug"))
	if decision.FallbackHome {
		c.Redirect(http.StatusFound, h.homeURL)
		return
	}

	c.HTML(http.StatusOK, "interstitial.html", gin.H{
		"Title":          decision.Title,
		"WaitSeconds":    decision.WaitSeconds,
		"AdMarkup":       decision.AdMarkup,
		"DestinationURL": decision.DestinationURL,
	})
}

// Home handles /go with no slug at all.
func (h *Handler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, h.homeURL)
}

// RegisterRoutes registers the public redirect routes. Trailing slashes are
// folded onto the slug route by gin's RedirectTrailingSlash. This should be
// called after all other routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/go", h.Home)
	r.GET("/go/:slug", h.Go)
}
