// Package llm wraps the OpenAI-compatible chat completions API used by the
// travel assistant.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Defaults applied when Config leaves a field zero.
const (
	DefaultModel      = "gpt-4o-mini"
	DefaultMaxTokens  = 500
	DefaultMaxHistory = 20
)

var (
	// ErrNotConfigured is returned by Complete when no API key is set.
	ErrNotConfigured = errors.New("llm: not configured")
	// ErrEmptyReply is returned when the provider answers without content.
	ErrEmptyReply = errors.New("llm: empty reply")
)

// Roles accepted in a Message.
const (
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// Message is one turn of conversation history.
type Message struct {
	Role    string
	Content string
}

// Config configures a Client.
type Config struct {
	APIKey      string
	BaseURL     string // empty means the provider default
	Model       string
	MaxTokens   int
	Temperature float32
	MaxHistory  int
	Timeout     time.Duration
}

// Client calls the completion API. A Client without an API key is valid but
// disabled; Complete returns ErrNotConfigured.
type Client struct {
	api        *openai.Client
	model      string
	maxTokens  int
	temp       float32
	maxHistory int
	timeout    time.Duration
	log        *zap.Logger
}

// New builds a Client from cfg.
func New(cfg Config, log *zap.Logger) *Client {
	c := &Client{
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		temp:       cfg.Temperature,
		maxHistory: cfg.MaxHistory,
		timeout:    cfg.Timeout,
		log:        log,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.maxTokens <= 0 {
		c.maxTokens = DefaultMaxTokens
	}
	if c.maxHistory <= 0 {
		c.maxHistory = DefaultMaxHistory
	}
	if c.temp == 0 {
		c.temp = 0.7
	}

	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		log.Info("chat assistant disabled (llm api key not configured)")
		return c
	}
	oc := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	c.api = openai.NewClientWithConfig(oc)
	return c
}

// Enabled reports whether the client has credentials.
func (c *Client) Enabled() bool {
	return c != nil && c.api != nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the system prompt followed by the most recent history turns
// and returns the assistant's reply.
func (c *Client) Complete(ctx context.Context, system string, history []Message) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	history = Recent(history, c.maxHistory)
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	if system != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		MaxTokens:   c.maxTokens,
		Temperature: c.temp,
	})
	if err != nil {
		return "", fmt.Errorf("llm: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", ErrEmptyReply
	}

	c.log.Debug("llm completion",
		zap.String("model", c.model),
		zap.Int("messages", len(msgs)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("took", time.Since(start)))
	return reply, nil
}

// Recent returns the last n messages of history.
func Recent(history []Message, n int) []Message {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
