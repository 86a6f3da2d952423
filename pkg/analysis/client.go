package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lunahealth/cyclecare-go/pkg/llm"
)

// Client is the AI analysis client.
//
// It performs exactly one inference request per call; there are no retries
// and no internal queueing. All expected failures are returned as the shared
// llm error taxonomy, never panicked or wrapped in opaque errors:
//
//   - llm.ErrMissingAPIKey: no credential configured, no network attempted
//   - *llm.ServiceError: non-success status from the endpoint
//   - llm.ErrEmptyResponse: success status but no text payload
//   - llm.ErrMalformedResponse: text payload that is not a JSON object
type Client struct {
	// provider issues the inference request.
	provider llm.Provider

	// credentials supplies the API credential checked before any call.
	credentials llm.CredentialProvider
}

// Config contains configuration for creating an analysis Client.
type Config struct {
	// Provider is the inference provider to call (required).
	Provider llm.Provider

	// Credentials supplies the API credential (required).
	Credentials llm.CredentialProvider
}

// NewClient creates a new analysis client.
//
// Parameters:
//   - cfg: Configuration containing the provider and credential source
//
// Returns a new Client instance.
func NewClient(cfg *Config) *Client {
	return &Client{
		provider:    cfg.Provider,
		credentials: cfg.Credentials,
	}
}

// AnalyzeImage analyzes the food in imageURL for the given profile.
//
// The imageURL is an opaque reference: an https URL or a data URL carrying an
// encoded payload. The reply is normalized into the strict Result shape; the
// caller decides whether a FoodName of "unknown" (case-insensitive) should be
// treated as a soft failure.
//
// Parameters:
//   - ctx: Context for cancellation
//   - imageURL: Reference to the source image
//   - profile: Profile fields the instruction is conditioned on
//
// Returns the normalized result, or an error from the shared taxonomy.
func (c *Client) AnalyzeImage(ctx context.Context, imageURL string, profile ProfileContext) (*Result, error) {
	if c.credentials.APIKey() == "" {
		return nil, llm.ErrMissingAPIKey
	}

	messages := []llm.Message{
		{
			Role:     llm.RoleUser,
			Content:  buildInstruction(profile),
			ImageURL: imageURL,
		},
	}

	reply, err := c.provider.GenerateWithMessages(ctx, messages,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(1024),
		llm.WithJSONResponse(),
	)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(reply) == "" {
		return nil, llm.ErrEmptyResponse
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(reply), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}

	return Normalize(doc), nil
}
