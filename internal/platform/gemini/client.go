package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lumina-api/internal/config"
	"github.com/phrazzld/lumina-api/internal/generation"
	"github.com/phrazzld/lumina-api/internal/redact"
	"google.golang.org/genai"
)

// JSONMIMEType is requested for structured responses.
const JSONMIMEType = "application/json"

// dataPartHeader introduces the JSON data part of the system instruction.
const dataPartHeader = "Persona profile (JSON data):\n"

// modelsAPI is the subset of *genai.Models the client uses.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Client sends requests to the Gemini API.
type Client struct {
	logger  *slog.Logger
	models  modelsAPI
	model   string
	timeout time.Duration
}

var _ generation.Client = (*Client)(nil)

// NewClient creates a Client from the LLM configuration. It fails with
// generation.ErrInvalidConfig when no API key or model name is configured;
// callers that support offline mode should check cfg.Online() first.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %s",
			generation.ErrInvalidConfig, redact.Error(err))
	}

	return newClient(logger, client.Models, cfg), nil
}

func newClient(logger *slog.Logger, models modelsAPI, cfg config.LLMConfig) *Client {
	return &Client{
		logger:  logger.With("component", "gemini_client"),
		models:  models,
		model:   cfg.ModelName,
		timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}
}

// Generate sends req and returns the response text.
func (c *Client) Generate(ctx context.Context, req generation.Request) (string, error) {
	cfg, err := c.contentConfig(req)
	if err != nil {
		return "", err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	contents := []*genai.Content{genai.NewContentFromText(req.UserContent, genai.RoleUser)}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, contents, cfg)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.ErrorContext(ctx, "Gemini API call failed",
			"model", c.model,
			"duration_ms", elapsed.Milliseconds(),
			"error", redact.Error(err))
		return "", fmt.Errorf("%w: %s", generation.ErrTransport, redact.Error(err))
	}

	if err := checkResponse(resp); err != nil {
		c.logger.WarnContext(ctx, "Gemini API returned no usable candidate",
			"model", c.model,
			"duration_ms", elapsed.Milliseconds(),
			"error", err)
		return "", err
	}

	text := resp.Text()
	c.logger.DebugContext(ctx, "Gemini API call succeeded",
		"model", c.model,
		"structured", req.Structured(),
		"duration_ms", elapsed.Milliseconds(),
		"response_length", len(text))
	return text, nil
}

func (c *Client) contentConfig(req generation.Request) (*genai.GenerateContentConfig, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.SystemInstruction)}
	if len(req.Data) > 0 {
		data, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode data slot: %v", generation.ErrTransport, err)
		}
		parts = append(parts, genai.NewPartFromText(dataPartHeader+string(data)))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromParts(parts, genai.RoleUser),
	}
	if req.Structured() {
		cfg.ResponseMIMEType = JSONMIMEType
		cfg.ResponseSchema = toGenaiSchema(req.Shape)
	}
	return cfg, nil
}

func checkResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("%w: nil response", generation.ErrTransport)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return fmt.Errorf("%w: %w: prompt blocked (%s)",
			generation.ErrTransport, generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("%w: no candidates in response", generation.ErrTransport)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return fmt.Errorf("%w: %w", generation.ErrTransport, generation.ErrContentBlocked)
	}
	return nil
}
