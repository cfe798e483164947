package service

import (
	"errors"
	"strings"
	"sync"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageExists    = errors.New("page already exists for this title")
	ErrPageNotFound  = errors.New("page not found")
	ErrPageProtected = errors.New("system pages cannot be deleted")
)

// PageService wraps tenant-scoped page operations.
type PageService struct {
	db *gorm.DB
}

// NewPageService creates a PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// PageInput represents fields accepted when creating a page.
type PageInput struct {
	UserID         uint
	Title          string
	Content        string
	Template       string
	Status         db.PageStatus
	SeoTitle       *string
	SeoDescription *string
	IsSystem       bool
}

// PageUpdateInput carries a partial update. Nil pointers leave the
// column untouched; the nullable SEO fields additionally distinguish
// explicit null (clear) from absence.
type PageUpdateInput struct {
	Title          *string
	Content        *string
	Template       *string
	Status         *db.PageStatus
	SortOrder      *int
	SeoTitle       NullableString
	SeoDescription NullableString
}

// PageOrder pairs a page id with its desired sort position.
type PageOrder struct {
	ID    uint `json:"id"`
	Order int  `json:"order"`
}

// Create inserts a page with a slug derived from its title, unique
// within the owning tenant.
func (s *PageService) Create(input PageInput) (*db.Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("page title is required")
	}

	slug := Slugify(title)

	var existing db.Page
	if err := s.db.Where("user_id = ? AND slug = ?", input.UserID, slug).First(&existing).Error; err == nil {
		return nil, ErrPageExists
	}

	status := input.Status
	if status == "" {
		status = db.PageStatusDraft
	}
	template := input.Template
	if template == "" {
		template = "default"
	}

	page := db.Page{
		UserID:         input.UserID,
		Title:          title,
		Slug:           slug,
		Content:        input.Content,
		Template:       template,
		Status:         status,
		SortOrder:      s.nextSortOrder(input.UserID),
		SeoTitle:       input.SeoTitle,
		SeoDescription: input.SeoDescription,
		IsSystem:       input.IsSystem,
	}
	if err := s.db.Create(&page).Error; err != nil {
		return nil, err
	}

	return &page, nil
}

// List returns the tenant's pages ordered by sort order. A zero
// userID yields an empty slice, never an error.
func (s *PageService) List(userID uint) ([]db.Page, error) {
	if userID == 0 {
		return []db.Page{}, nil
	}

	var pages []db.Page
	if err := s.db.
		Where("user_id = ?", userID).
		Order("sort_order asc").
		Order("id asc").
		Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Get fetches a page owned by the given tenant. Ownership mismatch is
// reported as not found.
func (s *PageService) Get(id, userID uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetBySlug fetches a page through the tenant's compound unique index.
func (s *PageService) GetBySlug(userID uint, slug string) (*db.Page, error) {
	var page db.Page
	if err := s.db.Where("user_id = ? AND slug = ?", userID, slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Update applies the provided fields. A title change regenerates the
// slug without re-checking collisions.
func (s *PageService) Update(id, userID uint, input PageUpdateInput) (*db.Page, error) {
	page, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, errors.New("page title is required")
		}
		if title != page.Title {
			page.Title = title
			page.Slug = Slugify(title)
		}
	}
	if input.Content != nil {
		page.Content = *input.Content
	}
	if input.Template != nil {
		page.Template = *input.Template
	}
	if input.Status != nil {
		page.Status = *input.Status
	}
	if input.SortOrder != nil {
		page.SortOrder = *input.SortOrder
	}
	if input.SeoTitle.Present {
		page.SeoTitle = input.SeoTitle.Value
	}
	if input.SeoDescription.Present {
		page.SeoDescription = input.SeoDescription.Value
	}

	if err := s.db.Save(page).Error; err != nil {
		return nil, err
	}

	return page, nil
}

// Delete removes a page unless it is system-managed.
func (s *PageService) Delete(id, userID uint) error {
	page, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	if page.IsSystem {
		return ErrPageProtected
	}
	return s.db.Unscoped().Delete(page).Error
}

// Reorder applies each id→order pair concurrently with no enclosing
// transaction. Ids are trusted as supplied and a partial failure
// leaves a mix of old and new sort orders; the first error wins.
func (s *PageService) Reorder(userID uint, orders []PageOrder) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, order := range orders {
		wg.Add(1)
		go func(o PageOrder) {
			defer wg.Done()
			err := s.db.Model(&db.Page{}).
				Where("id = ?", o.ID).
				Update("sort_order", o.Order).Error
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(order)
	}
	wg.Wait()

	return firstErr
}

func (s *PageService) nextSortOrder(userID uint) int {
	var maxSort int
	s.db.Model(&db.Page{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(sort_order), -1)").
		Scan(&maxSort)
	return maxSort + 1
}
