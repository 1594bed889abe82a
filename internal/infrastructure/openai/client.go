package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/stylist/backend/internal/domain"
)

// DefaultModel is the chat model used when none is configured
const DefaultModel = openai.GPT4

// Client sends chat completions to an OpenAI-compatible endpoint
type Client struct {
	client *openai.Client
	apiKey string
	model  string
}

// NewClient creates a new chat client.
// An empty baseURL keeps the library default; a zero timeout keeps the
// library's default HTTP client.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	if timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: timeout}
	}
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client: openai.NewClientWithConfig(config),
		apiKey: apiKey,
		model:  model,
	}
}

// Generate implements domain.TextGenerator.
// It issues exactly one request and never retries.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	if c.apiKey == "" {
		return domain.Failed(domain.FailureAuth, domain.ErrMissingAPIKey)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: wireTemperature(req.Temperature),
	})
	if err != nil {
		kind := classifyError(err)
		log.Debug().Str("component", "openai").Str("failure", kind.String()).Err(err).Msg("chat completion failed")
		return domain.Failed(kind, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err))
	}

	if len(resp.Choices) == 0 {
		return domain.Failed(domain.FailureMalformedResponse,
			fmt.Errorf("%w: no choices in completion", domain.ErrMalformedResponse))
	}

	return domain.Succeeded(strings.TrimSpace(resp.Choices[0].Message.Content))
}

// classifyError maps library errors onto the failure kinds callers act on
func classifyError(err error) domain.FailureKind {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return domain.FailureMalformedResponse
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.FailureNetwork
	}

	return domain.FailureService
}

// wireTemperature keeps an explicit zero on the wire. The request field is
// omitempty, so 0 would otherwise fall back to the service default of 1.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

func classifyStatus(status int) domain.FailureKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.FailureAuth
	default:
		return domain.FailureService
	}
}
