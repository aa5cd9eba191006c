package redirect

import (
	"context"
	"errors"
	"html/template"
	"log/slog"

	"github.com/fdciabdul/go-safelink/pkg/safelink/cache"
	"github.com/fdciabdul/go-safelink/pkg/safelink/links"
	"github.com/fdciabdul/go-safelink/pkg/safelink/models"
	"github.com/fdciabdul/go-safelink/pkg/safelink/settings"
)

// Decision is the outcome of resolving one inbound slug. Either
// FallbackHome is set, or the Show fields carry everything the interstitial
// page needs.
type Decision struct {
	FallbackHome   bool
	DestinationURL string
	Title          string
	WaitSeconds    int
	AdMarkup       template.HTML
}

func fallbackHome() Decision {
	return Decision{FallbackHome: true}
}

// Resolver maps inbound slugs to redirect decisions and records clicks.
// It is purely per-request: no state survives between resolutions beyond
// the store itself.
type Resolver struct {
	links    *links.Store
	settings *settings.Store
	cache    *cache.LinkCache
	logger   *slog.Logger
}

func NewResolver(linkStore *links.Store, settingsStore *settings.Store, linkCache *cache.LinkCache, logger *slog.Logger) *Resolver {
	return &Resolver{links: linkStore, settings: settingsStore, cache: linkCache, logger: logger}
}

// Resolve looks up slug and decides what the visitor gets. Unknown slugs,
// inactive links and store failures all collapse to the home fallback: an
// anonymous visitor never sees an error page, and cannot distinguish a
// disabled link from one that never existed. Clicks are counted only for
// links that actually resolve.
func (r *Resolver) Resolve(ctx context.Context, slug string) Decision {
	if slug == "" {
		return fallbackHome()
	}

	link, hit := r.cache.Get(ctx, slug)
	if !hit {
		stored, err := r.links.GetBySlug(slug)
		if err != nil {
			if !errors.Is(err, links.ErrNotFound) {
				r.logger.Error("link lookup failed", "slug", slug, "error", err)
			}
			return fallbackHome()
		}
		link = stored
		r.cache.Set(ctx, link)
	}

	if !link.IsActive() {
		return fallbackHome()
	}

	// Best effort: a failed increment must not cost the visitor their
	// redirect.
	if err := r.links.IncrementClicks(link.ID); err != nil {
		r.logger.Error("click increment failed", "slug", slug, "error", err)
	}

	cfg, err := r.settings.Load()
	if err != nil {
		r.logger.Error("settings load failed, using defaults", "error", err)
		cfg = settings.Defaults()
	}

	return Decision{
		DestinationURL: link.DestinationURL,
		Title:          effectiveTitle(link, cfg),
		WaitSeconds:    effectiveWaitTime(link, cfg),
		AdMarkup:       template.HTML(cfg.AdsenseCode),
	}
}

func effectiveTitle(link *models.Link, cfg settings.Settings) string {
	if link.CustomTitle != "" {
		return link.CustomTitle
	}
	return cfg.PageTitle
}

func effectiveWaitTime(link *models.Link, cfg settings.Settings) int {
	if link.CustomWaitTime > 0 {
		return link.CustomWaitTime
	}
	return cfg.WaitTime
}
