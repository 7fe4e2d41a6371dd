// Package ai talks to the chat-completion collaborator that rewrites messages
// and generates need insights. Everything here is transport; prompt building
// and response validation live in the services package.
package ai

import (
	"context"
	"errors"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultBaseURL = "https://api.deepseek.com/v1"
	defaultModel   = "deepseek-chat"
)

type Client struct {
	oc          *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// Option tweaks a Client.
type Option func(*Client)

func WithModel(model string) Option { return func(c *Client) { c.model = model } }

func WithTemperature(t float32) Option { return func(c *Client) { c.temperature = t } }

func WithMaxTokens(n int) Option { return func(c *Client) { c.maxTokens = n } }

// NewClient builds a client against any OpenAI-compatible endpoint.
func NewClient(apiKey, baseURL string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("api key required")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	c := &Client{
		oc:          openai.NewClientWithConfig(cfg),
		model:       defaultModel,
		temperature: 0.7,
		maxTokens:   800,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewClientFromEnv reads DEEPSEEK_API_KEY, DEEPSEEK_BASE_URL and
// DEEPSEEK_MODEL. A missing key is an error so misconfiguration surfaces at
// startup, not on the first request.
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		return nil, errors.New("DEEPSEEK_API_KEY not set")
	}
	opts := []Option{}
	if m := os.Getenv("DEEPSEEK_MODEL"); m != "" {
		opts = append(opts, WithModel(m))
	}
	return NewClient(apiKey, os.Getenv("DEEPSEEK_BASE_URL"), opts...)
}

// Complete sends one system+user exchange and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.oc.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	return resp.Choices[0].Message.Content, nil
}
