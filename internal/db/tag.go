package db

import "time"

// Tag is a per-tenant label. Names are stored normalized (lowercase,
// whitespace collapsed to hyphens) and unique per owner.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_user_tag_name;not null"`
	Name      string    `json:"name" gorm:"uniqueIndex:idx_user_tag_name;not null"`
	CreatedAt time.Time `json:"created_at"`

	Posts []Post `json:"-" gorm:"many2many:post_tags;"`

	PostCount int64 `json:"post_count" gorm:"-"`
}
