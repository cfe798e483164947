package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/service"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type categoryCreateRequest struct {
	UserID      uint   `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Validate runs the explicit request checks before the service call.
func (r *categoryCreateRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("userId is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.Color != "" && !colorPattern.MatchString(r.Color) {
		return errors.New("color must be a hex value like #1A2B3C")
	}
	return nil
}

type categoryUpdateRequest struct {
	Name        *string                `json:"name"`
	Description service.NullableString `json:"description"`
	Color       *string                `json:"color"`
	SortOrder   *int                   `json:"sortOrder"`
}

func (r *categoryUpdateRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if r.Color != nil && *r.Color != "" && !colorPattern.MatchString(*r.Color) {
		return errors.New("color must be a hex value like #1A2B3C")
	}
	return nil
}

// CreateCategory handles POST /categories.
func (a *API) CreateCategory(c *gin.Context) {
	var req categoryCreateRequest
	if !bindJSON(c, &req, "invalid category payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := a.categories.Create(service.CategoryInput{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			respondError(c, http.StatusConflict, "category already exists for this name")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategories handles GET /categories?userId=.
func (a *API) GetCategories(c *gin.Context) {
	categories, err := a.categories.List(tenantID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not fetch categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// UpdateCategory handles PUT /categories/:id?userId=.
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	var req categoryUpdateRequest
	if !bindJSON(c, &req, "invalid category payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := a.categories.Update(id, tenantID(c), service.CategoryUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not update category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /categories/:id?userId=.
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := a.categories.Delete(id, tenantID(c)); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not delete category")
		return
	}

	respondSuccess(c)
}
