package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostExists   = errors.New("post already exists for this title")
	ErrPostNotFound = errors.New("post not found")
)

// PostService wraps tenant-scoped blog post operations.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// PostInput represents fields accepted when creating a post.
type PostInput struct {
	UserID     uint
	Title      string
	Content    string
	Excerpt    string
	Status     db.PostStatus
	CategoryID *uint
	TagNames   []string
}

// PostUpdateInput carries a partial update.
type PostUpdateInput struct {
	Title      *string
	Content    *string
	Excerpt    *string
	Status     *db.PostStatus
	CategoryID NullableUint
	TagNames   []string
}

// PostFilter narrows List results.
type PostFilter struct {
	Status     db.PostStatus
	CategoryID uint
}

// NullableUint mirrors NullableString for numeric foreign keys, so a
// category can be detached with an explicit null.
type NullableUint struct {
	Present bool
	Value   *uint
}

// UnmarshalJSON flips Present whenever the field appears.
func (n *NullableUint) UnmarshalJSON(data []byte) error {
	n.Present = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Create inserts a post with a slug derived from its title, unique
// within the owning tenant. Tag names are asserted idempotently.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("post title is required")
	}

	slug := Slugify(title)

	var existing db.Post
	if err := s.db.Where("user_id = ? AND slug = ?", input.UserID, slug).First(&existing).Error; err == nil {
		return nil, ErrPostExists
	}

	status := input.Status
	if status == "" {
		status = db.PostStatusDraft
	}

	post := db.Post{
		UserID:     input.UserID,
		Title:      title,
		Slug:       slug,
		Content:    input.Content,
		Excerpt:    strings.TrimSpace(input.Excerpt),
		Status:     status,
		CategoryID: input.CategoryID,
	}
	if status == db.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	if err := s.replaceTags(&post, input.TagNames); err != nil {
		return nil, err
	}

	return s.Get(post.ID, input.UserID)
}

// List returns the tenant's posts newest first, optionally filtered
// by status and category.
func (s *PostService) List(userID uint, filter PostFilter) ([]db.Post, error) {
	if userID == 0 {
		return []db.Post{}, nil
	}

	query := s.db.Preload("Tags").Preload("Category").Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	var posts []db.Post
	if err := query.Order("created_at desc").Order("id desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches a post owned by the given tenant with its associations.
func (s *PostService) Get(id, userID uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Tags").Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug fetches a post through the tenant's compound unique index.
func (s *PostService) GetBySlug(userID uint, slug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Tags").Preload("Category").
		Where("user_id = ? AND slug = ?", userID, slug).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Update applies the provided fields. A title change regenerates the
// slug without re-checking collisions; publishing stamps PublishedAt
// once.
func (s *PostService) Update(id, userID uint, input PostUpdateInput) (*db.Post, error) {
	post, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.New("post title is required")
		}
		if title != post.Title {
			post.Title = title
			post.Slug = Slugify(title)
		}
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*input.Excerpt)
	}
	if input.Status != nil {
		if *input.Status == db.PostStatusPublished && post.Status != db.PostStatusPublished {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Status = *input.Status
	}
	if input.CategoryID.Present {
		post.CategoryID = input.CategoryID.Value
		post.Category = nil
	}

	if err := s.db.Save(post).Error; err != nil {
		return nil, err
	}

	if input.TagNames != nil {
		if err := s.replaceTags(post, input.TagNames); err != nil {
			return nil, err
		}
	}

	return s.Get(post.ID, userID)
}

// Delete removes a post and its tag associations.
func (s *PostService) Delete(id, userID uint) error {
	post, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	if err := s.db.Model(post).Association("Tags").Clear(); err != nil {
		return err
	}
	return s.db.Unscoped().Delete(post).Error
}

func (s *PostService) replaceTags(post *db.Post, names []string) error {
	if names == nil {
		return nil
	}

	tagService := NewTagService(s.db)
	tags := make([]db.Tag, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		tag, err := tagService.Create(post.UserID, name)
		if err != nil {
			return err
		}
		tags = append(tags, *tag)
	}

	return s.db.Model(post).Association("Tags").Replace(tags)
}
