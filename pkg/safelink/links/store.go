package links

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fdciabdul/go-safelink/pkg/safelink/cache"
	"github.com/fdciabdul/go-safelink/pkg/safelink/models"
)

var (
	// ErrNotFound is returned when an id or slug matches no row.
	ErrNotFound = errors.New("link not found")
	// ErrDuplicateSlug is returned when a requested slug is already taken.
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrSlugSpaceExhausted is returned when slug generation gives up.
	ErrSlugSpaceExhausted = errors.New("no free slug found")
)

// ValidationError reports a missing or malformed field. The message is safe
// to surface verbatim to admin callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StoreError wraps an underlying persistence failure. Admin callers get a
// generic failure with the underlying message attached for diagnostics.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("links: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Store is the single-entity repository for links. All slug-row mutations
// invalidate the cache before returning, so the redirect path never serves
// a stale row after an admin edit.
type Store struct {
	db    *gorm.DB
	cache *cache.LinkCache
}

func NewStore(db *gorm.DB, c *cache.LinkCache) *Store {
	return &Store{db: db, cache: c}
}

// InsertParams carries the caller-supplied fields for a new link. Slug must
// already be generated or canonicalized; Insert does not adjust it.
type InsertParams struct {
	Title          string
	DestinationURL string
	Slug           string
	CustomTitle    string
	CustomWaitTime int
	Status         string
}

// Insert creates a new link and returns the stored row.
func (s *Store) Insert(p InsertParams) (*models.Link, error) {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.DestinationURL) == "" {
		return nil, &ValidationError{"Title and URL are required"}
	}
	if p.Slug == "" {
		return nil, &ValidationError{"Slug is required"}
	}
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	if !models.ValidStatus(p.Status) {
		return nil, &ValidationError{"Status must be active or inactive"}
	}

	exists, err := s.SlugExists(p.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSlug
	}

	link := models.Link{
		Title:          p.Title,
		DestinationURL: p.DestinationURL,
		Slug:           p.Slug,
		CustomTitle:    p.CustomTitle,
		CustomWaitTime: p.CustomWaitTime,
		Status:         p.Status,
	}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, &StoreError{"insert", err}
	}
	return &link, nil
}

// UpdateParams carries the mutable field set. Slug is deliberately absent:
// it is immutable after creation.
type UpdateParams struct {
	Title          string
	DestinationURL string
	CustomTitle    string
	CustomWaitTime int
	Status         string
}

// Update overwrites the mutable fields of the link with the given id.
func (s *Store) Update(id uint, p UpdateParams) error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.DestinationURL) == "" {
		return &ValidationError{"Title and URL are required"}
	}
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	if !models.ValidStatus(p.Status) {
		return &ValidationError{"Status must be active or inactive"}
	}

	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return &StoreError{"update", err}
	}

	updates := map[string]interface{}{
		"title":            p.Title,
		"destination_url":  p.DestinationURL,
		"custom_title":     p.CustomTitle,
		"custom_wait_time": p.CustomWaitTime,
		"status":           p.Status,
	}
	if err := s.db.Model(&link).Updates(updates).Error; err != nil {
		return &StoreError{"update", err}
	}

	s.cache.Invalidate(context.Background(), link.Slug)
	return nil
}

// Delete removes the link with the given id. Deleting an absent id returns
// ErrNotFound so callers can tell a no-op from a removal.
func (s *Store) Delete(id uint) error {
	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return &StoreError{"delete", err}
	}
	if err := s.db.Delete(&link).Error; err != nil {
		return &StoreError{"delete", err}
	}
	s.cache.Invalidate(context.Background(), link.Slug)
	return nil
}

// GetByID returns the link with the given id.
func (s *Store) GetByID(id uint) (*models.Link, error) {
	var link models.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{"get", err}
	}
	return &link, nil
}

// GetBySlug returns the link with the given slug.
func (s *Store) GetBySlug(slug string) (*models.Link, error) {
	var link models.Link
	if err := s.db.Where("slug = ?", slug).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{"get", err}
	}
	return &link, nil
}

// SlugExists reports whether a row already uses slug.
func (s *Store) SlugExists(slug string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Link{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, &StoreError{"slug lookup", err}
	}
	return count > 0, nil
}

// IncrementClicks adds one to the click counter as a single relative update
// so concurrent redirects never lose increments.
func (s *Store) IncrementClicks(id uint) error {
	res := s.db.Model(&models.Link{}).Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + 1"))
	if res.Error != nil {
		return &StoreError{"increment clicks", res.Error}
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkUpdateStatus sets the status of every link in ids.
func (s *Store) BulkUpdateStatus(ids []uint, status string) error {
	if !models.ValidStatus(status) {
		return &ValidationError{"Status must be active or inactive"}
	}
	if len(ids) == 0 {
		return nil
	}
	slugs, err := s.slugsFor(ids)
	if err != nil {
		return err
	}
	if err := s.db.Model(&models.Link{}).Where("id IN ?", ids).
		Update("status", status).Error; err != nil {
		return &StoreError{"bulk status", err}
	}
	s.cache.Invalidate(context.Background(), slugs...)
	return nil
}

// BulkDelete removes every link in ids. Absent ids are skipped.
func (s *Store) BulkDelete(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	slugs, err := s.slugsFor(ids)
	if err != nil {
		return err
	}
	if err := s.db.Where("id IN ?", ids).Delete(&models.Link{}).Error; err != nil {
		return &StoreError{"bulk delete", err}
	}
	s.cache.Invalidate(context.Background(), slugs...)
	return nil
}

func (s *Store) slugsFor(ids []uint) ([]string, error) {
	var slugs []string
	if err := s.db.Model(&models.Link{}).Where("id IN ?", ids).
		Pluck("slug", &slugs).Error; err != nil {
		return nil, &StoreError{"slug lookup", err}
	}
	return slugs, nil
}

// shortcodeTitlePrefix marks rows created by legacy shortcode expansion.
const shortcodeTitlePrefix = "Shortcode generated: "

// EnsureForURL returns the shortcode-generated link for url, creating it on
// first use. Re-rendering the same legacy embed reuses the existing row
// instead of inserting a new one per render.
func (s *Store) EnsureForURL(url, customTitle string) (*models.Link, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &ValidationError{"URL is required"}
	}

	var link models.Link
	err := s.db.Where("destination_url = ? AND title LIKE ?", url, shortcodeTitlePrefix+"%").
		Order("id").First(&link).Error
	if err == nil {
		return &link, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &StoreError{"ensure", err}
	}

	slug, err := s.GenerateSlug()
	if err != nil {
		return nil, err
	}
	title := url
	if len(title) > 50 {
		title = title[:50]
	}
	return s.Insert(InsertParams{
		Title:          shortcodeTitlePrefix + title + "...",
		DestinationURL: url,
		Slug:           slug,
		CustomTitle:    customTitle,
		Status:         models.StatusActive,
	})
}
