package handler

import (
	"net/http"
	"testing"

	"github.com/inkpress/internal/db"
)

func TestSubscribeLifecycleOverHTTP(t *testing.T) {
	api, gdb, cleanup := setupTestAPI(t)
	defer cleanup()

	w, c := jsonRequest(t, http.MethodPost, "/subscribers", map[string]any{
		"userId": 1,
		"email":  "reader@example.com",
		"name":   "Reader",
	})
	api.CreateSubscriber(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created db.Subscriber
	decodeBody(t, w, &created)
	if created.Status != db.SubscriberStatusActive {
		t.Fatalf("expected ACTIVE status, got %q", created.Status)
	}

	// Subscribing the same address again conflicts.
	w, c = jsonRequest(t, http.MethodPost, "/subscribers", map[string]any{
		"userId": 1,
		"email":  "reader@example.com",
	})
	api.CreateSubscriber(c)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}

	w, c = jsonRequest(t, http.MethodPost, "/subscribers/unsubscribe", map[string]any{
		"userId": 1,
		"email":  "reader@example.com",
	})
	api.Unsubscribe(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	// Resubscribing revives the same row instead of inserting a new one.
	w, c = jsonRequest(t, http.MethodPost, "/subscribers", map[string]any{
		"userId": 1,
		"email":  "reader@example.com",
	})
	api.CreateSubscriber(c)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var revived db.Subscriber
	decodeBody(t, w, &revived)
	if revived.ID != created.ID {
		t.Fatalf("expected revived subscriber to keep id %d, got %d", created.ID, revived.ID)
	}
	if revived.Status != db.SubscriberStatusActive {
		t.Fatalf("expected ACTIVE status after revival, got %q", revived.Status)
	}

	var count int64
	if err := gdb.Model(&db.Subscriber{}).Count(&count).Error; err != nil {
		t.Fatalf("count subscribers: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single subscriber row, got %d", count)
	}
}

func TestSubscribeRejectsBadEmail(t *testing.T) {
	api, _, cleanup := setupTestAPI(t)
	defer cleanup()

	w, c := jsonRequest(t, http.MethodPost, "/subscribers", map[string]any{
		"userId": 1,
		"email":  "not-an-email",
	})
	api.CreateSubscriber(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestUnsubscribeByToken(t *testing.T) {
	api, gdb, cleanup := setupTestAPI(t)
	defer cleanup()

	sub := db.Subscriber{
		UserID:           1,
		Email:            "token@example.com",
		Status:           db.SubscriberStatusActive,
		UnsubscribeToken: "tok-123",
	}
	if err := gdb.Create(&sub).Error; err != nil {
		t.Fatalf("failed to seed subscriber: %v", err)
	}

	w, c := jsonRequest(t, http.MethodPost, "/subscribers/unsubscribe", map[string]any{
		"token": "tok-123",
	})
	api.Unsubscribe(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var reloaded db.Subscriber
	if err := gdb.First(&reloaded, sub.ID).Error; err != nil {
		t.Fatalf("reload subscriber: %v", err)
	}
	if reloaded.Status != db.SubscriberStatusUnsubscribed {
		t.Fatalf("expected UNSUBSCRIBED status, got %q", reloaded.Status)
	}
}

func TestGetSubscribersMissingTenantReturnsEmptyList(t *testing.T) {
	api, gdb, cleanup := setupTestAPI(t)
	defer cleanup()

	sub := db.Subscriber{UserID: 1, Email: "a@example.com", Status: db.SubscriberStatusActive, UnsubscribeToken: "tok-a"}
	if err := gdb.Create(&sub).Error; err != nil {
		t.Fatalf("failed to seed subscriber: %v", err)
	}

	w, c := jsonRequest(t, http.MethodGet, "/subscribers", nil)
	api.GetSubscribers(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var list []db.Subscriber
	decodeBody(t, w, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty list without userId, got %d entries", len(list))
	}
}
