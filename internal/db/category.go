package db

import "gorm.io/gorm"

// Category groups posts for a single tenant. The slug is only unique
// within its owner, enforced by the compound index.
type Category struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"uniqueIndex:idx_user_category_slug;not null"`
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex:idx_user_category_slug;not null"`
	Description string `json:"description"`
	Color       string `json:"color" gorm:"size:7"`
	SortOrder   int    `json:"sort_order" gorm:"default:0"`

	Posts []Post `json:"-" gorm:"foreignKey:CategoryID"`

	// PostCount is populated by service queries, not stored.
	PostCount int64 `json:"post_count" gorm:"-"`
}
