package db

import (
	"time"

	"gorm.io/gorm"
)

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
)

// Post is a blog article owned by a single tenant.
type Post struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_post_slug;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"uniqueIndex:idx_user_post_slug;not null"`
	Content     string     `json:"content" gorm:"type:text"`
	Excerpt     string     `json:"excerpt"`
	Status      PostStatus `json:"status" gorm:"default:'DRAFT'"`
	PublishedAt *time.Time `json:"published_at"`

	CategoryID *uint     `json:"category_id" gorm:"index"`
	Category   *Category `json:"category,omitempty"`
	Tags       []Tag     `json:"tags" gorm:"many2many:post_tags;"`
}
