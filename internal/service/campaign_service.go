package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/inkpress/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrCampaignSent     = errors.New("campaign has already been sent")
)

// CampaignService wraps tenant-scoped email campaign operations.
// Sending a campaign is a status transition plus a recipient-count
// snapshot; no delivery happens at this layer.
type CampaignService struct {
	db *gorm.DB
}

// NewCampaignService creates a CampaignService instance.
func NewCampaignService(gdb *gorm.DB) *CampaignService {
	return &CampaignService{db: gdb}
}

// CampaignInput represents fields accepted when creating a campaign.
type CampaignInput struct {
	UserID      uint
	Subject     string
	Content     string
	ScheduledAt *time.Time
}

// CampaignStats aggregates delivery metrics over a tenant's sent
// campaigns.
type CampaignStats struct {
	TotalCampaigns  int64 `json:"total_campaigns"`
	SentCampaigns   int64 `json:"sent_campaigns"`
	TotalRecipients int64 `json:"total_recipients"`
	TotalOpened     int64 `json:"total_opened"`
	TotalClicked    int64 `json:"total_clicked"`
	AvgOpenRate     int   `json:"avg_open_rate"`
	AvgClickRate    int   `json:"avg_click_rate"`
}

// Create inserts a draft campaign.
func (s *CampaignService) Create(input CampaignInput) (*db.Campaign, error) {
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, errors.New("campaign subject is required")
	}

	campaign := db.Campaign{
		UserID:      input.UserID,
		Subject:     subject,
		Content:     input.Content,
		ScheduledAt: input.ScheduledAt,
		Status:      db.CampaignStatusDraft,
	}
	if err := s.db.Create(&campaign).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// List returns the tenant's campaigns newest first.
func (s *CampaignService) List(userID uint) ([]db.Campaign, error) {
	if userID == 0 {
		return []db.Campaign{}, nil
	}

	var campaigns []db.Campaign
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// Get fetches a campaign owned by the given tenant.
func (s *CampaignService) Get(id, userID uint) (*db.Campaign, error) {
	var campaign db.Campaign
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

// Send transitions a draft campaign to SENT, stamping the send time
// and snapshotting the current count of active subscribers in a
// single update. SENT is terminal.
func (s *CampaignService) Send(id, userID uint) (*db.Campaign, error) {
	campaign, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}
	if campaign.Status == db.CampaignStatusSent {
		return nil, ErrCampaignSent
	}

	var recipients int64
	if err := s.db.Model(&db.Subscriber{}).
		Where("user_id = ? AND status = ?", userID, db.SubscriberStatusActive).
		Count(&recipients).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     db.CampaignStatusSent,
		"sent_at":    now,
		"recipients": recipients,
	}
	if err := s.db.Model(campaign).Updates(updates).Error; err != nil {
		return nil, err
	}

	campaign.Status = db.CampaignStatusSent
	campaign.SentAt = &now
	campaign.Recipients = int(recipients)

	return campaign, nil
}

// Delete removes the campaign.
func (s *CampaignService) Delete(id, userID uint) error {
	campaign, err := s.Get(id, userID)
	if err != nil {
		return err
	}
	return s.db.Unscoped().Delete(campaign).Error
}

// Stats sums recipients, opens and clicks over the tenant's sent
// campaigns and derives percentage rates, rounding halves away from
// zero.
func (s *CampaignService) Stats(userID uint) (*CampaignStats, error) {
	stats := &CampaignStats{}

	if err := s.db.Model(&db.Campaign{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalCampaigns).Error; err != nil {
		return nil, err
	}

	var totals struct {
		Sent       int64
		Recipients int64
		Opened     int64
		Clicked    int64
	}
	if err := s.db.Model(&db.Campaign{}).
		Select("COUNT(*) AS sent, COALESCE(SUM(recipients), 0) AS recipients, COALESCE(SUM(opened), 0) AS opened, COALESCE(SUM(clicked), 0) AS clicked").
		Where("user_id = ? AND status = ?", userID, db.CampaignStatusSent).
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	stats.SentCampaigns = totals.Sent
	stats.TotalRecipients = totals.Recipients
	stats.TotalOpened = totals.Opened
	stats.TotalClicked = totals.Clicked
	if totals.Recipients > 0 {
		stats.AvgOpenRate = int(math.Round(100 * float64(totals.Opened) / float64(totals.Recipients)))
		stats.AvgClickRate = int(math.Round(100 * float64(totals.Clicked) / float64(totals.Recipients)))
	}

	return stats, nil
}
