package db

import (
	"time"

	"gorm.io/gorm"
)

// CampaignStatus enumerates campaign lifecycle states. SENT is
// terminal.
type CampaignStatus string

const (
	CampaignStatusDraft CampaignStatus = "DRAFT"
	CampaignStatusSent  CampaignStatus = "SENT"
)

// Campaign is an email campaign. Sending only records the transition
// and snapshots the recipient count; delivery happens elsewhere.
type Campaign struct {
	gorm.Model
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Subject     string         `json:"subject" gorm:"not null"`
	Content     string         `json:"content" gorm:"type:text"`
	ScheduledAt *time.Time     `json:"scheduled_at"`
	Status      CampaignStatus `json:"status" gorm:"default:'DRAFT'"`
	SentAt      *time.Time     `json:"sent_at"`
	Recipients  int            `json:"recipients" gorm:"default:0"`
	Opened      int            `json:"opened" gorm:"default:0"`
	Clicked     int            `json:"clicked" gorm:"default:0"`
}
