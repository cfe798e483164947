package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrAIKeyMissing = errors.New("ai api key is not configured")

// httpDoer abstracts the HTTP client so tests can stub the upstream
// API.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	defaultAIBaseURL       = "https://api.openai.com/v1"
	defaultAIModel         = "gpt-4o-mini"
	defaultDraftMaxTokens  = 1200
	defaultDraftTemp       = 0.7
	maxTopicRuneCount      = 500
	defaultWriterSystemMsg = "You are a blog writing assistant. Write a well-structured, engaging blog post in markdown for the topic the user provides. Use headings and short paragraphs."
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// DraftInput describes a content generation request.
type DraftInput struct {
	Topic string
	// MaxTokens caps the model output, 0 means the default.
	MaxTokens int
}

// DraftResult carries the generated content and token accounting.
type DraftResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// ContentGenerator is the capability the HTTP layer depends on, so
// tests can inject a fake writer.
type ContentGenerator interface {
	GenerateDraft(ctx context.Context, input DraftInput) (DraftResult, error)
}

// AIWriterService generates post drafts through an OpenAI-compatible
// chat-completions API. It is a passthrough: one request out, one
// content string back, no retries.
type AIWriterService struct {
	http    httpDoer
	baseURL string
	model   string
	apiKey  string
}

// NewAIWriterService constructs a writer against the given API
// credentials. Empty baseURL and model fall back to OpenAI defaults.
func NewAIWriterService(apiKey, baseURL, model string) *AIWriterService {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultAIBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = defaultAIModel
	}
	return &AIWriterService{
		http:    &http.Client{Timeout: 180 * time.Second},
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		model:   strings.TrimSpace(model),
		apiKey:  strings.TrimSpace(apiKey),
	}
}

// SetHTTPClient overrides the default HTTP client, mainly for tests.
func (s *AIWriterService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: 20 * time.Second}
		return
	}
	s.http = client
}

// SetBaseURL overrides the upstream API address.
func (s *AIWriterService) SetBaseURL(base string) {
	s.baseURL = strings.TrimRight(strings.TrimSpace(base), "/")
}

// GenerateDraft asks the model for a blog post about the given topic.
func (s *AIWriterService) GenerateDraft(ctx context.Context, input DraftInput) (DraftResult, error) {
	if s.apiKey == "" {
		return DraftResult{}, ErrAIKeyMissing
	}

	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return DraftResult{}, errors.New("topic is required")
	}
	topic = truncateRunes(topic, maxTopicRuneCount)

	maxTokens := input.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultDraftMaxTokens
	}

	payload := chatCompletionRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: defaultWriterSystemMsg},
			{Role: "user", Content: fmt.Sprintf("Write a blog post about: %s", topic)},
		},
		MaxTokens:   maxTokens,
		Temperature: defaultDraftTemp,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return DraftResult{}, fmt.Errorf("encode request: %w", err)
	}

	endpoint := s.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return DraftResult{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	client := s.http
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return DraftResult{}, fmt.Errorf("call completion api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return DraftResult{}, fmt.Errorf("read completion response: %w", err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return DraftResult{}, fmt.Errorf("decode completion response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		errMsg := strings.TrimSpace(completion.Error.Message)
		if errMsg == "" {
			errMsg = resp.Status
		}
		return DraftResult{}, fmt.Errorf("completion api error: %s", errMsg)
	}

	if len(completion.Choices) == 0 {
		return DraftResult{}, errors.New("completion api returned no choices")
	}

	return DraftResult{
		Content:          strings.TrimSpace(completion.Choices[0].Message.Content),
		PromptTokens:     completion.Usage.PromptTokens,
		CompletionTokens: completion.Usage.CompletionTokens,
	}, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
