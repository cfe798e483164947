package service

import (
	"errors"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

// TagService wraps tenant-scoped tag operations.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// Create returns the tag with the normalized name, inserting it only
// if the tenant does not have it yet. Tags are re-asserted constantly
// by authors, so a duplicate is never an error.
func (s *TagService) Create(userID uint, name string) (*db.Tag, error) {
	normalized := NormalizeTagName(name)
	if normalized == "" {
		return nil, errors.New("tag name is required")
	}

	var existing db.Tag
	err := s.db.Where("user_id = ? AND name = ?", userID, normalized).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := db.Tag{UserID: userID, Name: normalized}
	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// List returns the tenant's tags newest first, with post usage counts.
func (s *TagService) List(userID uint) ([]db.Tag, error) {
	if userID == 0 {
		return []db.Tag{}, nil
	}

	var tags []db.Tag
	if err := s.db.
		Model(&db.Tag{}).
		Select("tags.*, COUNT(post_tags.post_id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("tags.user_id = ?", userID).
		Group("tags.id").
		Order("tags.created_at desc").
		Order("tags.id desc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete removes a tag and its post associations.
func (s *TagService) Delete(id, userID uint) error {
	var tag db.Tag
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	if err := s.db.Model(&tag).Association("Posts").Clear(); err != nil {
		return err
	}

	return s.db.Delete(&tag).Error
}
