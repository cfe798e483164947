package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/db"
	"github.com/inkpress/internal/service"
)

type subscribeRequest struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func (r *subscribeRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("userId is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		return errors.New("a valid email is required")
	}
	return nil
}

type unsubscribeRequest struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func (r *unsubscribeRequest) Validate() error {
	if r.Token != "" {
		return nil
	}
	if r.UserID == 0 {
		return errors.New("userId is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email or token is required")
	}
	return nil
}

// CreateSubscriber handles POST /subscribers. A previously
// unsubscribed email is revived; an active one conflicts.
func (a *API) CreateSubscriber(c *gin.Context) {
	var req subscribeRequest
	if !bindJSON(c, &req, "invalid subscriber payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	subscriber, err := a.subscribers.Subscribe(req.UserID, req.Email, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubscribed) {
			respondError(c, http.StatusConflict, "email is already subscribed")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not complete subscription")
		return
	}

	c.JSON(http.StatusCreated, subscriber)
}

// GetSubscribers handles GET /subscribers?userId=&status=.
func (a *API) GetSubscribers(c *gin.Context) {
	status := db.SubscriberStatus(strings.TrimSpace(c.Query("status")))
	subscribers, err := a.subscribers.List(tenantID(c), status)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not fetch subscribers")
		return
	}
	c.JSON(http.StatusOK, subscribers)
}

// GetSubscriberStats handles GET /subscribers/stats?userId=.
func (a *API) GetSubscriberStats(c *gin.Context) {
	stats, err := a.subscribers.Stats(tenantID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not fetch subscriber stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Unsubscribe handles POST /subscribers/unsubscribe, accepting either
// the tenant/email pair or the opaque token from an unsubscribe link.
func (a *API) Unsubscribe(c *gin.Context) {
	var req unsubscribeRequest
	if !bindJSON(c, &req, "invalid unsubscribe payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var err error
	if req.Token != "" {
		_, err = a.subscribers.UnsubscribeByToken(req.Token)
	} else {
		_, err = a.subscribers.Unsubscribe(req.UserID, req.Email)
	}
	if err != nil {
		if errors.Is(err, service.ErrSubscriberNotFound) {
			respondError(c, http.StatusNotFound, "subscriber not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not unsubscribe")
		return
	}

	respondSuccess(c)
}

// DeleteSubscriber handles DELETE /subscribers/:id?userId=.
func (a *API) DeleteSubscriber(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid subscriber id")
		return
	}

	if err := a.subscribers.Delete(id, tenantID(c)); err != nil {
		if errors.Is(err, service.ErrSubscriberNotFound) {
			respondError(c, http.StatusNotFound, "subscriber not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not delete subscriber")
		return
	}

	respondSuccess(c)
}
