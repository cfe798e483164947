package db

import "gorm.io/gorm"

// PageStatus is the publication state of a page.
type PageStatus string

const (
	PageStatusDraft     PageStatus = "DRAFT"
	PageStatusPublished PageStatus = "PUBLISHED"
)

// Page is a standalone content page such as About. System pages are
// platform-managed and cannot be deleted.
type Page struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"uniqueIndex:idx_user_page_slug;not null"`
	Title          string     `json:"title" gorm:"not null"`
	Slug           string     `json:"slug" gorm:"uniqueIndex:idx_user_page_slug;not null"`
	Content        string     `json:"content" gorm:"type:text"`
	Template       string     `json:"template" gorm:"default:'default'"`
	Status         PageStatus `json:"status" gorm:"default:'DRAFT'"`
	SortOrder      int        `json:"sort_order" gorm:"default:0"`
	SeoTitle       *string    `json:"seo_title"`
	SeoDescription *string    `json:"seo_description"`
	IsSystem       bool       `json:"is_system" gorm:"default:false"`
}
