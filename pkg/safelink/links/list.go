package links

import (
	"strings"

	"github.com/fdciabdul/go-safelink/pkg/safelink/models"
)

// DefaultPageSize matches the reference admin table.
const DefaultPageSize = 20

const (
	defaultSortField = "created"
	defaultSortDir   = "desc"
)

var sortFields = map[string]bool{
	"title":   true,
	"clicks":  true,
	"created": true,
	"status":  true,
}

// ListQuery describes one page of the admin list. Pagination is 1-indexed.
// Sort parameters outside the allow-list fall back to created/desc rather
// than erroring, so malformed admin URLs still render a list.
type ListQuery struct {
	Search    string
	SortField string
	SortDir   string
	Page      int
	PageSize  int
}

func (q ListQuery) normalized() ListQuery {
	if !sortFields[q.SortField] {
		q.SortField = defaultSortField
	}
	dir := strings.ToLower(q.SortDir)
	if dir != "asc" && dir != "desc" {
		dir = defaultSortDir
	}
	q.SortDir = dir
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// List returns one page of links plus the total count under the same
// filter. Search matches case-insensitively as a substring against title,
// destination URL or slug.
func (s *Store) List(q ListQuery) ([]models.Link, int64, error) {
	q = q.normalized()

	tx := s.db.Model(&models.Link{})
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(destination_url) LIKE ? OR LOWER(slug) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, &StoreError{"list count", err}
	}

	var items []models.Link
	offset := (q.Page - 1) * q.PageSize
	if err := tx.Order(q.SortField + " " + q.SortDir).
		Limit(q.PageSize).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, 0, &StoreError{"list", err}
	}
	return items, total, nil
}
