// Package llm provides interfaces and utilities for the external inference endpoint.
//
// It defines the Provider interface that all inference adapters must satisfy,
// along with message types, generation options, and the error taxonomy shared
// by the analysis and assistant clients.
package llm

import "context"

// Provider defines the interface for inference providers.
//
// A provider issues exactly one request per call. Retries, queueing, and
// cancellation beyond the passed context are the caller's concern.
type Provider interface {
	// GenerateWithMessages generates text from a conversation history.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - messages: Conversation history (system, user, assistant messages)
	//   - opts: Optional generation parameters
	//
	// Returns the generated text and any error.
	GenerateWithMessages(ctx context.Context, messages []Message, opts ...GenerateOption) (string, error)

	// Close closes the provider and releases resources.
	Close() error
}

// CredentialProvider supplies the API credential for the inference endpoint.
//
// Abstracting the credential behind an interface lets the AI clients be
// exercised with a fake provider in tests, and keeps credential retrieval
// out of the clients themselves.
type CredentialProvider interface {
	// APIKey returns the configured credential, or "" when none is configured.
	APIKey() string
}

// StaticCredential is a CredentialProvider holding a fixed credential value.
type StaticCredential string

// APIKey returns the credential value.
func (s StaticCredential) APIKey() string {
	return string(s)
}

// Message represents a single message in a conversation.
type Message struct {
	// Role is the message role: "system", "user", or "assistant".
	Role string `json:"role"`

	// Content is the message content text.
	Content string `json:"content"`

	// ImageURL optionally attaches an image to the message. The value is an
	// opaque reference (an https URL or a data URL carrying an encoded
	// payload) sent alongside the text as a separate content part.
	ImageURL string `json:"image_url,omitempty"`
}

// Role constants for Message.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// GenerateOptions contains options for text generation.
type GenerateOptions struct {
	// Temperature controls randomness (0.0-2.0). Higher = more random.
	Temperature float64

	// MaxTokens limits the maximum number of tokens in the response.
	MaxTokens int

	// TopP controls nucleus sampling (0.0-1.0). Higher = more diverse.
	TopP float64

	// JSONResponse requests a structured JSON object reply from the endpoint.
	JSONResponse bool
}

// GenerateOption is a function type for configuring generation options.
type GenerateOption func(*GenerateOptions)

// WithTemperature sets the temperature for text generation.
func WithTemperature(temp float64) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.Temperature = temp
	}
}

// WithMaxTokens sets the maximum number of tokens in the response.
func WithMaxTokens(max int) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.MaxTokens = max
	}
}

// WithTopP sets the top-p (nucleus sampling) parameter.
func WithTopP(topP float64) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.TopP = topP
	}
}

// WithJSONResponse requests that the endpoint reply with a JSON object.
// Used by analysis calls; chat calls return free text.
func WithJSONResponse() GenerateOption {
	return func(opts *GenerateOptions) {
		opts.JSONResponse = true
	}
}

// ApplyGenerateOptions applies a slice of GenerateOption functions to create GenerateOptions.
//
// This is a helper function used internally by provider implementations.
// Default values: Temperature=0.7, MaxTokens=1000, TopP=1.0.
func ApplyGenerateOptions(opts []GenerateOption) *GenerateOptions {
	options := &GenerateOptions{
		Temperature: 0.7,
		MaxTokens:   1000,
		TopP:        1.0,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
