package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/service"
)

type campaignCreateRequest struct {
	UserID      uint       `json:"userId"`
	Subject     string     `json:"subject"`
	Content     string     `json:"content"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

func (r *campaignCreateRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("userId is required")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return errors.New("subject is required")
	}
	return nil
}

// CreateCampaign handles POST /subscribers/campaigns.
func (a *API) CreateCampaign(c *gin.Context) {
	var req campaignCreateRequest
	if !bindJSON(c, &req, "invalid campaign payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	campaign, err := a.campaigns.Create(service.CampaignInput{
		UserID:      req.UserID,
		Subject:     req.Subject,
		Content:     req.Content,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not create campaign")
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

// GetCampaigns handles GET /subscribers/campaigns?userId=.
func (a *API) GetCampaigns(c *gin.Context) {
	campaigns, err := a.campaigns.List(tenantID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not fetch campaigns")
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

// GetCampaignStats handles GET /subscribers/campaigns/stats?userId=.
func (a *API) GetCampaignStats(c *gin.Context) {
	stats, err := a.campaigns.Stats(tenantID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not fetch campaign stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetCampaign handles GET /subscribers/campaigns/:id?userId=.
func (a *API) GetCampaign(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid campaign id")
		return
	}

	campaign, err := a.campaigns.Get(id, tenantID(c))
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			respondError(c, http.StatusNotFound, "campaign not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not fetch campaign")
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// SendCampaign handles POST /subscribers/campaigns/:id/send?userId=.
func (a *API) SendCampaign(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid campaign id")
		return
	}

	campaign, err := a.campaigns.Send(id, tenantID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			respondError(c, http.StatusNotFound, "campaign not found")
		case errors.Is(err, service.ErrCampaignSent):
			respondError(c, http.StatusConflict, "campaign has already been sent")
		default:
			respondError(c, http.StatusInternalServerError, "could not send campaign")
		}
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// DeleteCampaign handles DELETE /subscribers/campaigns/:id?userId=.
func (a *API) DeleteCampaign(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid campaign id")
		return
	}

	if err := a.campaigns.Delete(id, tenantID(c)); err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			respondError(c, http.StatusNotFound, "campaign not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not delete campaign")
		return
	}

	respondSuccess(c)
}
