package db

import "time"

// SubscriberStatus enumerates the states a subscriber can be in.
type SubscriberStatus string

const (
	SubscriberStatusActive       SubscriberStatus = "ACTIVE"
	SubscriberStatusUnsubscribed SubscriberStatus = "UNSUBSCRIBED"
)

// Subscriber is a newsletter recipient belonging to one tenant. An
// email can only appear once per owner; re-subscription revives the
// existing row instead of inserting a new one.
type Subscriber struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	UserID           uint             `json:"user_id" gorm:"uniqueIndex:idx_user_subscriber_email;not null"`
	Email            string           `json:"email" gorm:"uniqueIndex:idx_user_subscriber_email;not null"`
	Name             string           `json:"name" gorm:"size:255"`
	Status           SubscriberStatus `json:"status" gorm:"default:'ACTIVE'"`
	UnsubscribeToken string           `json:"-" gorm:"uniqueIndex"`
	UnsubscribedAt   *time.Time       `json:"unsubscribed_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
