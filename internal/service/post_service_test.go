package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/inkpress/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPostServiceTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:post-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Category{}, &db.Tag{}, &db.Post{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func TestPostServiceCreateDerivesSlugAndTags(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{
		UserID:   1,
		Title:    "My First Post!",
		Content:  "# Hello",
		TagNames: []string{"Go", "go", "Web Dev"},
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if post.Slug != "my-first-post" {
		t.Fatalf("expected slug my-first-post, got %q", post.Slug)
	}
	if post.Status != db.PostStatusDraft {
		t.Fatalf("expected DRAFT default, got %q", post.Status)
	}
	// "Go" and "go" normalize to the same tag.
	if len(post.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(post.Tags))
	}
}

func TestPostServiceCreateDuplicateSlug(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	if _, err := svc.Create(PostInput{UserID: 1, Title: "Same Title"}); err != nil {
		t.Fatalf("create first post: %v", err)
	}
	if _, err := svc.Create(PostInput{UserID: 1, Title: "Same Title"}); !errors.Is(err, ErrPostExists) {
		t.Fatalf("expected ErrPostExists, got %v", err)
	}
	if _, err := svc.Create(PostInput{UserID: 2, Title: "Same Title"}); err != nil {
		t.Fatalf("create for other tenant: %v", err)
	}
}

func TestPostServicePublishStampsTimestamp(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{UserID: 1, Title: "Draft First"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.PublishedAt != nil {
		t.Fatalf("expected draft without published_at")
	}

	status := db.PostStatusPublished
	published, err := svc.Update(post.ID, 1, PostUpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("publish post: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatalf("expected published_at stamped")
	}
}

func TestPostServiceListFilters(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	category := db.Category{UserID: 1, Name: "Go", Slug: "go"}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	svc := NewPostService(gdb)
	if _, err := svc.Create(PostInput{UserID: 1, Title: "A", Status: db.PostStatusPublished, CategoryID: &category.ID}); err != nil {
		t.Fatalf("create post A: %v", err)
	}
	if _, err := svc.Create(PostInput{UserID: 1, Title: "B"}); err != nil {
		t.Fatalf("create post B: %v", err)
	}
	if _, err := svc.Create(PostInput{UserID: 2, Title: "C"}); err != nil {
		t.Fatalf("create post C: %v", err)
	}

	published, err := svc.List(1, PostFilter{Status: db.PostStatusPublished})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(published) != 1 || published[0].Title != "A" {
		t.Fatalf("unexpected published list: %+v", published)
	}

	byCategory, err := svc.List(1, PostFilter{CategoryID: category.ID})
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Title != "A" {
		t.Fatalf("unexpected category list: %+v", byCategory)
	}

	all, err := svc.List(1, PostFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 posts for tenant 1, got %d", len(all))
	}
}

func TestPostServiceGetBySlugScopedToTenant(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	if _, err := svc.Create(PostInput{UserID: 1, Title: "Scoped"}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if _, err := svc.GetBySlug(2, "scoped"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for foreign tenant, got %v", err)
	}
	if _, err := svc.GetBySlug(1, "scoped"); err != nil {
		t.Fatalf("get by slug: %v", err)
	}
}

func TestPostServiceUpdateDetachCategory(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	category := db.Category{UserID: 1, Name: "Go", Slug: "go"}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{UserID: 1, Title: "Attached", CategoryID: &category.ID})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	updated, err := svc.Update(post.ID, 1, PostUpdateInput{
		CategoryID: NullableUint{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.CategoryID != nil {
		t.Fatalf("expected category detached, got %v", *updated.CategoryID)
	}
}

func TestPostServiceDelete(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{UserID: 1, Title: "Gone", TagNames: []string{"tmp"}})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := svc.Delete(post.ID, 1); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if _, err := svc.Get(post.ID, 1); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
}
