package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/db"
)

func TestCreateCategory(t *testing.T) {
	api, _, cleanup := setupTestAPI(t)
	defer cleanup()

	w, c := jsonRequest(t, http.MethodPost, "/categories", map[string]any{
		"userId": 1,
		"name":   "Hello World!",
		"color":  "#FF8800",
	})
	api.CreateCategory(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created db.Category
	decodeBody(t, w, &created)
	if created.Slug != "hello-world" {
		t.Fatalf("expected slug hello-world, got %q", created.Slug)
	}
}

func TestCreateCategoryDuplicateConflicts(t *testing.T) {
	api, _, cleanup := setupTestAPI(t)
	defer cleanup()

	payload := map[string]any{"userId": 1, "name": "Tech"}

	w, c := jsonRequest(t, http.MethodPost, "/categories", payload)
	api.CreateCategory(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	w, c = jsonRequest(t, http.MethodPost, "/categories", payload)
	api.CreateCategory(c)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
}

func TestCreateCategoryRejectsBadColor(t *testing.T) {
	api, _, cleanup := setupTestAPI(t)
	defer cleanup()

	w, c := jsonRequest(t, http.MethodPost, "/categories", map[string]any{
		"userId": 1,
		"name":   "Tech",
		"color":  "red",
	})
	api.CreateCategory(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestGetCategoriesMissingTenantReturnsEmptyList(t *testing.T) {
	api, gdb, cleanup := setupTestAPI(t)
	defer cleanup()

	seed := db.Category{UserID: 1, Name: "Tech", Slug: "tech"}
	if err := gdb.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	w, c := jsonRequest(t, http.MethodGet, "/categories", nil)
	api.GetCategories(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var list []db.Category
	decodeBody(t, w, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty list without userId, got %d rows", len(list))
	}
}

func TestUpdateCategoryWrongTenantIsNotFound(t *testing.T) {
	api, gdb, cleanup := setupTestAPI(t)
	defer cleanup()

	seed := db.Category{UserID: 1, Name: "Tech", Slug: "tech"}
	if err := gdb.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	id := strconv.Itoa(int(seed.ID))
	w, c := jsonRequest(t, http.MethodPut, "/categories/"+id+"?userId=2", map[string]any{"name": "Taken"})
	c.Params = gin.Params{gin.Param{Key: "id", Value: id}}
	api.UpdateCategory(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestDeleteCategory(t *testing.T) {
	api, gdb, cleanup := setupTestAPI(t)
	defer cleanup()

	seed := db.Category{UserID: 1, Name: "Tech", Slug: "tech"}
	if err := gdb.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	id := strconv.Itoa(int(seed.ID))
	w, c := jsonRequest(t, http.MethodDelete, "/categories/"+id+"?userId=1", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: id}}
	api.DeleteCategory(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp map[string]bool
	decodeBody(t, w, &resp)
	if !resp["success"] {
		t.Fatalf("expected success response, got %s", w.Body.String())
	}
}
