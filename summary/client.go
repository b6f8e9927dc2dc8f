package summary

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"nicklife"
)

// chatAPI is the slice of the OpenAI client the summary needs.
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client turns a prompt into spoken feedback via the chat-completion API.
type Client struct {
	api         chatAPI
	model       string
	temperature float32
}

func NewClient(apiKey string, cfg nicklife.SummaryConfig) *Client {
	return &Client{
		api:         openai.NewClient(apiKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Complete sends the prompt as a single user message and returns the first
// choice's content.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("completion API returned an empty message")
	}
	return resp.Choices[0].Message.Content, nil
}
