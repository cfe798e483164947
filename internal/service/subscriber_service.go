package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

var (
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

// SubscriberService wraps tenant-scoped newsletter subscriber
// operations.
type SubscriberService struct {
	db *gorm.DB
}

// NewSubscriberService creates a SubscriberService instance.
func NewSubscriberService(gdb *gorm.DB) *SubscriberService {
	return &SubscriberService{db: gdb}
}

// SubscriberStats summarizes a tenant's subscriber base.
type SubscriberStats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	Unsubscribed int64 `json:"unsubscribed"`
	RecentMonth  int64 `json:"recent_month"`
}

// Subscribe registers an email for the tenant. A previously
// unsubscribed row is revived in place, keeping its id; an active one
// is a conflict.
func (s *SubscriberService) Subscribe(userID uint, email, name string) (*db.Subscriber, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errors.New("email is required")
	}

	var existing db.Subscriber
	err := s.db.Where("user_id = ? AND email = ?", userID, email).First(&existing).Error
	switch {
	case err == nil:
		if existing.Status == db.SubscriberStatusActive {
			return nil, ErrAlreadySubscribed
		}
		updates := map[string]interface{}{
			"status":          db.SubscriberStatusActive,
			"unsubscribed_at": nil,
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		existing.Status = db.SubscriberStatusActive
		existing.UnsubscribedAt = nil
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		subscriber := db.Subscriber{
			UserID:           userID,
			Email:            email,
			Name:             strings.TrimSpace(name),
			Status:           db.SubscriberStatusActive,
			UnsubscribeToken: uuid.NewString(),
		}
		if err := s.db.Create(&subscriber).Error; err != nil {
			return nil, err
		}
		return &subscriber, nil
	default:
		return nil, err
	}
}

// List returns the tenant's subscribers newest first, optionally
// filtered by status.
func (s *SubscriberService) List(userID uint, status db.SubscriberStatus) ([]db.Subscriber, error) {
	if userID == 0 {
		return []db.Subscriber{}, nil
	}

	query := s.db.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var subscribers []db.Subscriber
	if err := query.Order("created_at desc").Order("id desc").Find(&subscribers).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}

// Unsubscribe marks the tenant's subscriber with the given email as
// unsubscribed and stamps the time.
func (s *SubscriberService) Unsubscribe(userID uint, email string) (*db.Subscriber, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var subscriber db.Subscriber
	if err := s.db.Where("user_id = ? AND email = ?", userID, email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}

	return s.markUnsubscribed(&subscriber)
}

// UnsubscribeByToken resolves the subscriber through its opaque token,
// the form used in unsubscribe links.
func (s *SubscriberService) UnsubscribeByToken(token string) (*db.Subscriber, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrSubscriberNotFound
	}

	var subscriber db.Subscriber
	if err := s.db.Where("unsubscribe_token = ?", token).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}

	return s.markUnsubscribed(&subscriber)
}

// Delete removes the subscriber row entirely.
func (s *SubscriberService) Delete(id, userID uint) error {
	var subscriber db.Subscriber
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriberNotFound
		}
		return err
	}
	return s.db.Delete(&subscriber).Error
}

// Stats counts the tenant's subscribers by status plus the last
// thirty days of signups.
func (s *SubscriberService) Stats(userID uint) (*SubscriberStats, error) {
	stats := &SubscriberStats{}
	base := s.db.Model(&db.Subscriber{}).Where("user_id = ?", userID)

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", db.SubscriberStatusActive).
		Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", db.SubscriberStatusUnsubscribed).
		Count(&stats.Unsubscribed).Error; err != nil {
		return nil, err
	}
	monthAgo := time.Now().AddDate(0, 0, -30)
	if err := base.Session(&gorm.Session{}).
		Where("created_at >= ?", monthAgo).
		Count(&stats.RecentMonth).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *SubscriberService) markUnsubscribed(subscriber *db.Subscriber) (*db.Subscriber, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":          db.SubscriberStatusUnsubscribed,
		"unsubscribed_at": now,
	}
	if err := s.db.Model(subscriber).Updates(updates).Error; err != nil {
		return nil, err
	}
	subscriber.Status = db.SubscriberStatusUnsubscribed
	subscriber.UnsubscribedAt = &now
	return subscriber, nil
}
