package assistant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunahealth/cyclecare-go/pkg/assistant"
	"github.com/lunahealth/cyclecare-go/pkg/llm"
)

// fakeProvider is an llm.Provider returning a canned reply.
type fakeProvider struct {
	reply string
	err   error
	calls [][]llm.Message
}

func (f *fakeProvider) GenerateWithMessages(_ context.Context, messages []llm.Message, _ ...llm.GenerateOption) (string, error) {
	f.calls = append(f.calls, messages)
	return f.reply, f.err
}

func (f *fakeProvider) Close() error { return nil }

func newTestClient(provider llm.Provider, apiKey string) *assistant.Client {
	return assistant.NewClient(&assistant.Config{
		Provider:    provider,
		Credentials: llm.StaticCredential(apiKey),
	})
}

func TestReply_MissingCredentialFailsFast(t *testing.T) {
	provider := &fakeProvider{}
	client := newTestClient(provider, "")

	_, err := client.Reply(context.Background(), nil, assistant.ProfileContext{})
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.Empty(t, provider.calls)
}

func TestReply_SendsSystemInstructionAndHistory(t *testing.T) {
	provider := &fakeProvider{reply: "Try a veggie omelette."}
	client := newTestClient(provider, "sk-test")

	history := []assistant.Turn{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi Dana!"},
		{Role: "user", Content: "breakfast ideas?"},
	}
	reply, err := client.Reply(context.Background(), history, assistant.ProfileContext{
		Name:     "Dana",
		Symptoms: []string{"acne", "fatigue"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Try a veggie omelette.", reply)

	require.Len(t, provider.calls, 1)
	sent := provider.calls[0]
	require.Len(t, sent, 4)
	assert.Equal(t, llm.RoleSystem, sent[0].Role)
	assert.Contains(t, sent[0].Content, "Dana")
	assert.Contains(t, sent[0].Content, "acne, fatigue")
	assert.Equal(t, "hello", sent[1].Content)
	assert.Equal(t, "breakfast ideas?", sent[3].Content)
}

func TestReply_EmptyProfileUsesFallbacks(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	client := newTestClient(provider, "sk-test")

	_, err := client.Reply(context.Background(), nil, assistant.ProfileContext{})
	require.NoError(t, err)

	system := provider.calls[0][0].Content
	assert.Contains(t, system, "name is: Unknown")
	assert.Contains(t, system, "symptoms are: None specified")
}

func TestReply_TrimsWhitespace(t *testing.T) {
	provider := &fakeProvider{reply: "\n  Hello!  \n"}
	client := newTestClient(provider, "sk-test")

	reply, err := client.Reply(context.Background(), nil, assistant.ProfileContext{})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", reply)
}

func TestReply_BlankReplyIsMalformed(t *testing.T) {
	provider := &fakeProvider{reply: "   \n "}
	client := newTestClient(provider, "sk-test")

	_, err := client.Reply(context.Background(), nil, assistant.ProfileContext{})
	assert.ErrorIs(t, err, llm.ErrMalformedResponse)
}

func TestReply_ServiceErrorPassesThrough(t *testing.T) {
	provider := &fakeProvider{err: llm.NewServiceError(500, "upstream down")}
	client := newTestClient(provider, "sk-test")

	_, err := client.Reply(context.Background(), nil, assistant.ProfileContext{})
	var svcErr *llm.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 500, svcErr.StatusCode)
}
