package handler

import (
	"github.com/inkpress/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers. Everything is
// constructed once in main and injected; handlers never reach for
// globals.
type API struct {
	db          *gorm.DB
	categories  *service.CategoryService
	tags        *service.TagService
	pages       *service.PageService
	posts       *service.PostService
	subscribers *service.SubscriberService
	campaigns   *service.CampaignService
	writer      service.ContentGenerator
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, writer service.ContentGenerator) *API {
	return &API{
		db:          db,
		categories:  service.NewCategoryService(db),
		tags:        service.NewTagService(db),
		pages:       service.NewPageService(db),
		posts:       service.NewPostService(db),
		subscribers: service.NewSubscriberService(db),
		campaigns:   service.NewCampaignService(db),
		writer:      writer,
	}
}
