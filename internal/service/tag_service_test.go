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

func setupTagServiceTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:tag-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Tag{}, &db.Post{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func TestTagServiceCreateIsIdempotent(t *testing.T) {
	gdb, cleanup := setupTagServiceTestDB(t)
	defer cleanup()

	svc := NewTagService(gdb)
	first, err := svc.Create(1, "JavaScript")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	second, err := svc.Create(1, "JavaScript")
	if err != nil {
		t.Fatalf("re-create tag: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same row, got ids %d and %d", first.ID, second.ID)
	}

	list, err := svc.List(1)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one tag, got %d", len(list))
	}
}

func TestTagServiceCreateNormalizesName(t *testing.T) {
	gdb, cleanup := setupTagServiceTestDB(t)
	defer cleanup()

	svc := NewTagService(gdb)
	tag, err := svc.Create(1, "  Machine   Learning ")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if tag.Name != "machine-learning" {
		t.Fatalf("expected normalized name, got %q", tag.Name)
	}

	// Symbols survive normalization, unlike slugs.
	cpp, err := svc.Create(1, "C++")
	if err != nil {
		t.Fatalf("create symbol tag: %v", err)
	}
	if cpp.Name != "c++" {
		t.Fatalf("expected c++, got %q", cpp.Name)
	}
}

func TestTagServiceSameNameDifferentTenants(t *testing.T) {
	gdb, cleanup := setupTagServiceTestDB(t)
	defer cleanup()

	svc := NewTagService(gdb)
	first, err := svc.Create(1, "go")
	if err != nil {
		t.Fatalf("create for tenant 1: %v", err)
	}
	second, err := svc.Create(2, "go")
	if err != nil {
		t.Fatalf("create for tenant 2: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct rows per tenant")
	}
}

func TestTagServiceDelete(t *testing.T) {
	gdb, cleanup := setupTagServiceTestDB(t)
	defer cleanup()

	svc := NewTagService(gdb)
	tag, err := svc.Create(1, "temp")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	if err := svc.Delete(tag.ID, 2); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound for wrong tenant, got %v", err)
	}

	if err := svc.Delete(tag.ID, 1); err != nil {
		t.Fatalf("delete tag: %v", err)
	}

	list, err := svc.List(1)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no tags, got %d", len(list))
	}
}
