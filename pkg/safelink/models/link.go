package models

import "time"

// Link status values. The resolver only redirects active links.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Link represents a cloaked destination URL addressed by its slug.
// Slug is assigned at creation and never changes; Clicks is mutated only
// through the store's atomic increment.
type Link struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Title          string    `gorm:"not null" json:"title"`
	DestinationURL string    `gorm:"not null" json:"destination_url"`
	Slug           string    `gorm:"uniqueIndex;not null" json:"slug"`
	Created        time.Time `gorm:"column:created;autoCreateTime" json:"created"`
	Clicks         uint      `gorm:"not null;default:0" json:"clicks"`
	Status         string    `gorm:"not null;default:active" json:"status"`
	CustomTitle    string    `gorm:"default:''" json:"custom_title"`
	CustomWaitTime int       `gorm:"default:0" json:"custom_wait_time"`
}

// TableName keeps the reference table name.
func (Link) TableName() string {
	return "safelinks"
}

// IsActive reports whether the resolver may redirect this link.
func (l *Link) IsActive() bool {
	return l.Status == StatusActive
}

// ValidStatus reports whether s is a recognized link status.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
