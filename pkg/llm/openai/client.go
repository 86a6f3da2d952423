package openai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lunahealth/cyclecare-go/pkg/llm"
)

// Client is an OpenAI-compatible inference client.
// It implements the llm.Provider interface over any endpoint speaking the
// chat-completions protocol, including vision inputs and JSON-object replies.
type Client struct {
	client *openai.Client
	model  string
}

// Config is the configuration for the OpenAI-compatible client.
// APIKey: API credential sent as a bearer token (may be empty; the AI clients
// fail fast before reaching this adapter when no credential is configured)
// Model: Model identifier to use for this capability
// BaseURL: API base URL, defaults to the OpenAI official address
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// NewClient creates a new OpenAI-compatible inference client.
//
// Args:
//   - cfg: Configuration containing APIKey, Model, and BaseURL
//
// Returns:
//   - *Client: Client instance
//   - error: Returns an error if initialization fails
func NewClient(cfg *Config) (*Client, error) {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	client := openai.NewClientWithConfig(config)

	return &Client{
		client: client,
		model:  cfg.Model,
	}, nil
}

// GenerateWithMessages generates text using message history.
// Messages carrying an ImageURL are sent as multi-part content with the image
// attached; WithJSONResponse requests a json_object response format.
//
// Args:
//   - ctx: Context for controlling the request lifecycle
//   - messages: Message history list, each message contains role and content
//   - opts: Optional generation parameters (temperature, max_tokens, top_p, JSON mode)
//
// Returns:
//   - string: Generated text content
//   - error: *llm.ServiceError on a non-success status, llm.ErrEmptyResponse
//     when the reply carries no choices
func (c *Client) GenerateWithMessages(ctx context.Context, messages []llm.Message, opts ...llm.GenerateOption) (string, error) {
	options := llm.ApplyGenerateOptions(opts)

	chatMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		if msg.ImageURL != "" {
			chatMessages[i] = openai.ChatCompletionMessage{
				Role: msg.Role,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: msg.Content,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: msg.ImageURL,
						},
					},
				},
			}
			continue
		}
		chatMessages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		Temperature: float32(options.Temperature),
		MaxTokens:   options.MaxTokens,
		TopP:        float32(options.TopP),
	}
	if options.JSONResponse {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", translateError(err)
	}

	if len(resp.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// translateError maps SDK errors onto the shared taxonomy.
// The SDK parses the JSON error envelope when the endpoint returns one; when
// it cannot, the request error message is the best-available detail.
func translateError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return llm.NewServiceError(apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := ""
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return llm.NewServiceError(reqErr.HTTPStatusCode, msg)
	}

	return llm.NewServiceError(0, err.Error())
}

// Close closes the client connection.
// The SDK client does not require explicit closing; this method is retained
// for interface compatibility.
//
// Returns:
//   - error: Always returns nil
func (c *Client) Close() error {
	return nil
}
