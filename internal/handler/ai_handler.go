package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/service"
)

type generateRequest struct {
	UserID    uint   `json:"userId"`
	Topic     string `json:"topic"`
	MaxTokens int    `json:"maxTokens"`
}

func (r *generateRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return errors.New("topic is required")
	}
	return nil
}

// GenerateContent handles POST /ai/generate, a passthrough to the
// configured LLM API.
func (a *API) GenerateContent(c *gin.Context) {
	if a.writer == nil {
		respondError(c, http.StatusServiceUnavailable, "content generation is not configured")
		return
	}

	var req generateRequest
	if !bindJSON(c, &req, "invalid generate payload") {
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.writer.GenerateDraft(c.Request.Context(), service.DraftInput{
		Topic:     req.Topic,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		if errors.Is(err, service.ErrAIKeyMissing) {
			respondError(c, http.StatusServiceUnavailable, "content generation is not configured")
			return
		}
		respondError(c, http.StatusBadGateway, "content generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content":           result.Content,
		"prompt_tokens":     result.PromptTokens,
		"completion_tokens": result.CompletionTokens,
	})
}
