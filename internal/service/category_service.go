package service

import (
	"errors"
	"strings"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryExists   = errors.New("category already exists for this name")
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryService wraps tenant-scoped category operations.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// CategoryInput represents fields accepted when creating a category.
type CategoryInput struct {
	UserID      uint
	Name        string
	Description string
	Color       string
}

// CategoryUpdateInput carries a partial update. Nil pointers leave the
// corresponding column untouched.
type CategoryUpdateInput struct {
	Name        *string
	Description NullableString
	Color       *string
	SortOrder   *int
}

// Create inserts a category with a slug derived from its name. The
// slug must be unique within the owning tenant.
func (s *CategoryService) Create(input CategoryInput) (*db.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	slug := Slugify(name)

	var existing db.Category
	if err := s.db.Where("user_id = ? AND slug = ?", input.UserID, slug).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	category := db.Category{
		UserID:      input.UserID,
		Name:        name,
		Slug:        slug,
		Description: input.Description,
		Color:       input.Color,
		SortOrder:   s.nextSortOrder(input.UserID),
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	category.PostCount = 0

	return &category, nil
}

// List returns the tenant's categories ordered by sort order, each
// enriched with its associated post count. A zero userID yields an
// empty slice, never an error.
func (s *CategoryService) List(userID uint) ([]db.Category, error) {
	if userID == 0 {
		return []db.Category{}, nil
	}

	var categories []db.Category
	if err := s.db.
		Model(&db.Category{}).
		Select("categories.*, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN posts ON posts.category_id = categories.id AND posts.deleted_at IS NULL").
		Where("categories.user_id = ?", userID).
		Group("categories.id").
		Order("categories.sort_order asc").
		Order("categories.name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Get fetches a category owned by the given tenant. A mismatch is
// indistinguishable from nonexistence.
func (s *CategoryService) Get(id, userID uint) (*db.Category, error) {
	var category db.Category
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Update applies the provided fields. Renames regenerate the slug
// without re-checking collisions.
func (s *CategoryService) Update(id, userID uint, input CategoryUpdateInput) (*db.Category, error) {
	category, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("category name is required")
		}
		if name != category.Name {
			category.Name = name
			category.Slug = Slugify(name)
		}
	}
	if input.Description.Present {
		if input.Description.Value != nil {
			category.Description = *input.Description.Value
		} else {
			category.Description = ""
		}
	}
	if input.Color != nil {
		category.Color = *input.Color
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&db.Post{}).Where("category_id = ?", category.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	category.PostCount = count

	return category, nil
}

// Delete removes the category and detaches its posts.
func (s *CategoryService) Delete(id, userID uint) error {
	category, err := s.Get(id, userID)
	if err != nil {
		return err
	}

	if err := s.db.Model(&db.Post{}).
		Where("category_id = ?", category.ID).
		Update("category_id", nil).Error; err != nil {
		return err
	}

	return s.db.Unscoped().Delete(category).Error
}

func (s *CategoryService) nextSortOrder(userID uint) int {
	var maxSort int
	s.db.Model(&db.Category{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(sort_order), -1)").
		Scan(&maxSort)
	return maxSort + 1
}
