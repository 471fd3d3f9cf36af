package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const instructionPrompt = "I'm going to send the below email. Summarize it in a way the recipient can understand better. Write the summary as if it's an email I'm about to send them (like a clear, professional note). Avoid bullet points. Output only the email-style summary. Here's the original email:\n\n"

// Client wraps the OpenAI SDK for email summarization.
type Client struct {
	apiKey string
	client *openai.Client
	model  openai.ChatModel
}

// New returns a summarization client. Without an API key the client degrades
// to a local truncation fallback so the rest of the app keeps working.
func New(apiKey string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		apiKey: apiKey,
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

// SummarizeEmail streams a completion for the email body and returns the
// concatenated text. Any transport or service error yields no partial result.
func (c *Client) SummarizeEmail(ctx context.Context, emailBody string) (string, error) {
	if strings.TrimSpace(emailBody) == "" {
		return "", fmt.Errorf("email body cannot be empty")
	}
	if c.client == nil {
		// fallback: return truncated content when API key is missing.
		if len(emailBody) > 200 {
			return emailBody[:200] + "...", nil
		}
		return emailBody, nil
	}

	req := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(instructionPrompt + emailBody),
					},
				},
			},
		},
		Temperature: openai.Float(0.3),
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	stream := c.client.Chat.Completions.NewStreaming(ctx, req)
	var sb strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) > 0 {
			sb.WriteString(chunk.Choices[0].Delta.Content)
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("summarization stream: %w", err)
	}

	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", fmt.Errorf("no completion received")
	}
	return summary, nil
}
