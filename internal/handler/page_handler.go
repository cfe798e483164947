package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/service"
)

type pageCreateRequest struct {
	UserID         uint    `json:"userId"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	Template       string  `json:"template"`
	Status         string  `json:"status"`
	SeoTitle       *string `json:"seoTitle"`
	SeoDescription *string `json:"seoDescription"`
	IsSystem       bool    `json:"isSystem"`
}

func (r *pageCreateRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("userId is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if err := validatePageStatus(r.Status); err != nil {
		return err
	}
	return nil
}

type pageUpdateRequest struct {
	Title          *string                `json:"title"`
	Content        *string                `json:"content"`
	Template       *string                `json:"template"`
	Status         *string                `json:"status"`
	SortOrder      *int                   `json:"sortOrder"`
	SeoTitle       service.NullableString `json:"seoTitle"`
	SeoDescription service.NullableString `json:"seoDescription"`
}

func (r *pageUpdateRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if r.Status != nil {
		if err := validatePageStatus(*r.Status); err != nil {
			return err
		}
	}
	return nil
}

type pageReorderRequest struct {
	UserID uint                `json:"userId"`
	Orders []service.PageOrder `json:"orders"`
}

func (r *pageReorderRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("userId is required")
	}
	if len(r.Orders) == 0 {
		return errors.New("orders are required")
	}
	return nil
}

func validatePageStatus(status string) error {
	switch db.PageStatus(status) {
	case "", db.PageStatusDraft, db.PageStatusPublished:
		return nil
	default:
		return errors.New("status must be DRAFT or PUBLISHED")
	}
}

// CreatePage handles POST /pages.
func (a *API) CreatePage(c *gin.Context) {
	var req pageCreateRequest
	if !bindJSON(c, &req, "invalid page payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := a.pages.Create(service.PageInput{
		UserID:         req.UserID,
		Title:          req.Title,
		Content:        req.Content,
		Template:       req.Template,
		Status:         db.PageStatus(req.Status),
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		IsSystem:       req.IsSystem,
	})
	if err != nil {
		if errors.Is(err, service.ErrPageExists) {
			respondError(c, http.StatusConflict, "page already exists for this title")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not create page")
		return
	}

	c.JSON(http.StatusCreated, page)
}

// GetPages handles GET /pages?userId=.
func (a *API) GetPages(c *gin.Context) {
	pages, err := a.pages.List(tenantID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not fetch pages")
		return
	}
	c.JSON(http.StatusOK, pages)
}

// GetPage handles GET /pages/:id?userId=.
func (a *API) GetPage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	page, err := a.pages.Get(id, tenantID(c))
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not fetch page")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetPageBySlug handles GET /pages/by-slug/:slug?userId=. The
// response carries the sanitized rendered HTML alongside the raw
// content.
func (a *API) GetPageBySlug(c *gin.Context) {
	page, err := a.pages.GetBySlug(tenantID(c), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not fetch page")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page": page,
		"html": renderContent(page.Content),
	})
}

// UpdatePage handles PUT /pages/:id?userId=.
func (a *API) UpdatePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	var req pageUpdateRequest
	if !bindJSON(c, &req, "invalid page payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var status *db.PageStatus
	if req.Status != nil {
		s := db.PageStatus(*req.Status)
		status = &s
	}

	page, err := a.pages.Update(id, tenantID(c), service.PageUpdateInput{
		Title:          req.Title,
		Content:        req.Content,
		Template:       req.Template,
		Status:         status,
		SortOrder:      req.SortOrder,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
	})
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not update page")
		return
	}

	c.JSON(http.StatusOK, page)
}

// DeletePage handles DELETE /pages/:id?userId=.
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid page id")
		return
	}

	if err := a.pages.Delete(id, tenantID(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrPageNotFound):
			respondError(c, http.StatusNotFound, "page not found")
		case errors.Is(err, service.ErrPageProtected):
			respondError(c, http.StatusConflict, "system pages cannot be deleted")
		default:
			respondError(c, http.StatusInternalServerError, "could not delete page")
		}
		return
	}

	respondSuccess(c)
}

// ReorderPages handles POST /pages/reorder.
func (a *API) ReorderPages(c *gin.Context) {
	var req pageReorderRequest
	if !bindJSON(c, &req, "invalid reorder payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.pages.Reorder(req.UserID, req.Orders); err != nil {
		respondError(c, http.StatusInternalServerError, "could not reorder pages")
		return
	}

	respondSuccess(c)
}
