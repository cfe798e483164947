package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/service"
)

type tagCreateRequest struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
}

func (r *tagCreateRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("userId is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// CreateTag handles POST /categories/tags. Re-asserting an existing
// tag returns the existing row, never a conflict.
func (a *API) CreateTag(c *gin.Context) {
	var req tagCreateRequest
	if !bindJSON(c, &req, "invalid tag payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := a.tags.Create(req.UserID, req.Name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not create tag")
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// GetTags handles GET /categories/tags?userId=.
func (a *API) GetTags(c *gin.Context) {
	tags, err := a.tags.List(tenantID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not fetch tags")
		return
	}
	c.JSON(http.StatusOK, tags)
}

// DeleteTag handles DELETE /categories/tags/:id?userId=.
func (a *API) DeleteTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := a.tags.Delete(id, tenantID(c)); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			respondError(c, http.StatusNotFound, "tag not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not delete tag")
		return
	}

	respondSuccess(c)
}
