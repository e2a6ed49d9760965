package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
)

// Client wraps the Anthropic API client used for crash summarization.
type Client struct {
	client  *anthropic.Client
	model   string
	timeout time.Duration
}

// NewClient creates a new AI client. Token resolution: parameter >
// ANTHROPIC_API_KEY environment variable.
func NewClient(model, apiToken string, timeout time.Duration) (*Client, error) {
	token := apiToken
	if token == "" {
		token = os.Getenv("ANTHROPIC_API_KEY")
	}
	if token == "" {
		return nil, errors.New("no API token provided: set --ai-token or ANTHROPIC_API_KEY")
	}

	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		client:  anthropic.NewClient(option.WithAPIKey(token)),
		model:   mapModelName(model),
		timeout: timeout,
	}, nil
}

// mapModelName converts friendly model names to model IDs.
func mapModelName(name string) string {
	switch strings.ToLower(name) {
	case "haiku":
		return "claude-3-5-haiku-latest"
	case "opus":
		return "claude-opus-4-20250514"
	default:
		return "claude-sonnet-4-20250514"
	}
}

// Summarize sends the rendered crash report for analysis and returns the
// model's assessment as plain text.
func (c *Client) Summarize(ctx context.Context, reportText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logrus.WithField("model", c.model).Debug("requesting crash summary")

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(c.model),
		MaxTokens: anthropic.F(int64(2048)),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildCrashPrompt(reportText))),
		}),
	})
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("empty response from API")
	}
	return sb.String(), nil
}
