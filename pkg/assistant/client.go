// Package assistant provides the AI chat client for the companion conversation.
//
// The client prepends one system instruction built from the user's profile,
// sends the full turn history in a single request, and returns the trimmed
// reply text. No retries, no streaming, no internal cancellation.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lunahealth/cyclecare-go/pkg/llm"
)

// Turn is one prior conversational exchange sent to the endpoint.
type Turn struct {
	// Role is "user" or "assistant".
	Role string

	// Content is the turn text.
	Content string
}

// ProfileContext carries the profile fields the system instruction is
// conditioned on. It mirrors the relevant subset of the core profile so this
// package stays free of a dependency on the core state layer.
type ProfileContext struct {
	// Name is the user's display name ("" if unknown).
	Name string

	// Symptoms is the list of self-reported symptoms.
	Symptoms []string
}

// Client is the AI chat client.
//
// Expected failures surface as the shared llm taxonomy:
//   - llm.ErrMissingAPIKey: no credential configured, no network attempted
//   - *llm.ServiceError: non-success status from the endpoint
//   - llm.ErrMalformedResponse: success status but no usable text payload
type Client struct {
	// provider issues the inference request.
	provider llm.Provider

	// credentials supplies the API credential checked before any call.
	credentials llm.CredentialProvider
}

// Config contains configuration for creating an assistant Client.
type Config struct {
	// Provider is the inference provider to call (required).
	Provider llm.Provider

	// Credentials supplies the API credential (required).
	Credentials llm.CredentialProvider
}

// NewClient creates a new assistant client.
func NewClient(cfg *Config) *Client {
	return &Client{
		provider:    cfg.Provider,
		credentials: cfg.Credentials,
	}
}

// buildSystemInstruction assembles the persona instruction for one request.
// Profile fields follow the same fallback discipline as the analysis prompt:
// no slot is ever left empty.
func buildSystemInstruction(profile ProfileContext) string {
	name := "Unknown"
	if profile.Name != "" {
		name = profile.Name
	}

	symptoms := "None specified"
	if len(profile.Symptoms) > 0 {
		symptoms = strings.Join(profile.Symptoms, ", ")
	}

	var b strings.Builder
	b.WriteString("You are a warm, supportive nutrition companion for people managing PCOS ")
	b.WriteString("(polycystic ovary syndrome). Give practical, food-focused guidance. ")
	b.WriteString("You are not a doctor and must not diagnose; encourage consulting a ")
	b.WriteString("healthcare professional for medical decisions.\n\n")
	fmt.Fprintf(&b, "The user's name is: %s\n", name)
	fmt.Fprintf(&b, "Their reported symptoms are: %s\n", symptoms)
	b.WriteString("\nKeep replies concise and encouraging.")
	return b.String()
}

// Reply generates the assistant's reply to the given conversation.
//
// Parameters:
//   - ctx: Context for cancellation
//   - history: Ordered prior turns, oldest first, including the latest user turn
//   - profile: Profile fields the system instruction is conditioned on
//
// Returns the trimmed reply text, or an error from the shared taxonomy.
func (c *Client) Reply(ctx context.Context, history []Turn, profile ProfileContext) (string, error) {
	if c.credentials.APIKey() == "" {
		return "", llm.ErrMissingAPIKey
	}

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: buildSystemInstruction(profile),
	})
	for _, turn := range history {
		messages = append(messages, llm.Message{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	reply, err := c.provider.GenerateWithMessages(ctx, messages,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(600),
	)
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", llm.ErrMalformedResponse
	}

	return reply, nil
}
