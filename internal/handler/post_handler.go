package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/service"
)

type postCreateRequest struct {
	UserID     uint     `json:"userId"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt"`
	Status     string   `json:"status"`
	CategoryID *uint    `json:"categoryId"`
	Tags       []string `json:"tags"`
}

func (r *postCreateRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("userId is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if err := validatePostStatus(r.Status); err != nil {
		return err
	}
	return nil
}

type postUpdateRequest struct {
	Title      *string              `json:"title"`
	Content    *string              `json:"content"`
	Excerpt    *string              `json:"excerpt"`
	Status     *string              `json:"status"`
	CategoryID service.NullableUint `json:"categoryId"`
	Tags       []string             `json:"tags"`
}

func (r *postUpdateRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if r.Status != nil {
		if err := validatePostStatus(*r.Status); err != nil {
			return err
		}
	}
	return nil
}

func validatePostStatus(status string) error {
	switch db.PostStatus(status) {
	case "", db.PostStatusDraft, db.PostStatusPublished:
		return nil
	default:
		return errors.New("status must be DRAFT or PUBLISHED")
	}
}

// CreatePost handles POST /posts.
func (a *API) CreatePost(c *gin.Context) {
	var req postCreateRequest
	if !bindJSON(c, &req, "invalid post payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := a.posts.Create(service.PostInput{
		UserID:     req.UserID,
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		Status:     db.PostStatus(req.Status),
		CategoryID: req.CategoryID,
		TagNames:   req.Tags,
	})
	if err != nil {
		if errors.Is(err, service.ErrPostExists) {
			respondError(c, http.StatusConflict, "post already exists for this title")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPosts handles GET /posts?userId=&status=&categoryId=.
func (a *API) GetPosts(c *gin.Context) {
	filter := service.PostFilter{
		Status: db.PostStatus(strings.TrimSpace(c.Query("status"))),
	}
	if raw := strings.TrimSpace(c.Query("categoryId")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}

	posts, err := a.posts.List(tenantID(c), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not fetch posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost handles GET /posts/:id?userId=.
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := a.posts.Get(id, tenantID(c))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not fetch post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetPostBySlug handles GET /posts/by-slug/:slug?userId=, returning
// the sanitized rendered HTML alongside the raw content.
func (a *API) GetPostBySlug(c *gin.Context) {
	post, err := a.posts.GetBySlug(tenantID(c), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not fetch post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post": post,
		"html": renderContent(post.Content),
	})
}

// UpdatePost handles PUT /posts/:id?userId=.
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var req postUpdateRequest
	if !bindJSON(c, &req, "invalid post payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var status *db.PostStatus
	if req.Status != nil {
		s := db.PostStatus(*req.Status)
		status = &s
	}

	post, err := a.posts.Update(id, tenantID(c), service.PostUpdateInput{
		Title:      req.Title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		Status:     status,
		CategoryID: req.CategoryID,
		TagNames:   req.Tags,
	})
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not update post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost handles DELETE /posts/:id?userId=.
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := a.posts.Delete(id, tenantID(c)); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not delete post")
		return
	}

	respondSuccess(c)
}
