package nlquery

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/gng-scout/athlete-directory-service/internal/logging"
)

const (
	defaultModel = openai.GPT3Dot5Turbo
	temperature  = 0.1
	maxTokens    = 200
)

var (
	ErrQueryRequired   = errors.New("nlquery: query is required")
	ErrNotConfigured   = errors.New("nlquery: openai api key not configured")
	ErrEmptyResponse   = errors.New("nlquery: no response from model")
	ErrInvalidResponse = errors.New("nlquery: invalid response format from model")
)

// Config selects the model endpoint.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Parser turns free-text athlete searches into Filters using a chat model.
type Parser struct {
	client completer
	model  string
	logger *slog.Logger
}

// NewParser builds a Parser. Without an API key every Parse call returns
// ErrNotConfigured.
func NewParser(cfg Config, logger *slog.Logger) *Parser {
	p := &Parser{model: cfg.Model, logger: logger}
	if p.model == "" {
		p.model = defaultModel
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return p
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	p.client = openai.NewClientWithConfig(clientCfg)
	return p
}

// Configured reports whether the parser can reach a model.
func (p *Parser) Configured() bool {
	return p != nil && p.client != nil
}

// Parse asks the model to extract filters from query.
func (p *Parser) Parse(ctx context.Context, query string) (Filters, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Filters{}, ErrQueryRequired
	}
	if !p.Configured() {
		return Filters{}, ErrNotConfigured
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(query)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return Filters{}, err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return Filters{}, ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	filters, err := decodeFilters(content)
	if err != nil {
		logger := logging.FromContext(ctx, p.logger)
		logging.Warn(logger, "unparseable model response", "content", content)
		return Filters{}, err
	}
	return filters, nil
}
