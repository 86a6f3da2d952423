package analysis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunahealth/cyclecare-go/pkg/analysis"
	"github.com/lunahealth/cyclecare-go/pkg/llm"
)

// fakeProvider is an llm.Provider returning a canned reply.
type fakeProvider struct {
	reply   string
	err     error
	calls   [][]llm.Message
	options []*llm.GenerateOptions
}

func (f *fakeProvider) GenerateWithMessages(_ context.Context, messages []llm.Message, opts ...llm.GenerateOption) (string, error) {
	f.calls = append(f.calls, messages)
	f.options = append(f.options, llm.ApplyGenerateOptions(opts))
	return f.reply, f.err
}

func (f *fakeProvider) Close() error { return nil }

func newTestClient(provider llm.Provider, apiKey string) *analysis.Client {
	return analysis.NewClient(&analysis.Config{
		Provider:    provider,
		Credentials: llm.StaticCredential(apiKey),
	})
}

func TestAnalyzeImage_MissingCredentialFailsFast(t *testing.T) {
	provider := &fakeProvider{}
	client := newTestClient(provider, "")

	_, err := client.AnalyzeImage(context.Background(), "img", analysis.ProfileContext{})
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.Empty(t, provider.calls)
}

func TestAnalyzeImage_Success(t *testing.T) {
	provider := &fakeProvider{
		reply: `{"foodName": "Oatmeal", "pcosCompatibility": 75, "alternatives": ["chia pudding"]}`,
	}
	client := newTestClient(provider, "sk-test")

	age := 30
	result, err := client.AnalyzeImage(context.Background(), "data:image/png;base64,BBBB", analysis.ProfileContext{
		Age:                &age,
		Symptoms:           []string{"fatigue"},
		InsulinResistant:   boolPtr(true),
		WeightGoal:         "lose",
		DietaryPreferences: []string{"vegetarian"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Oatmeal", result.FoodName)
	assert.Equal(t, 75, result.PCOSCompatibility)
	assert.Equal(t, []string{"chia pudding"}, result.Alternatives)

	// One user message, image attached, JSON reply requested.
	require.Len(t, provider.calls, 1)
	require.Len(t, provider.calls[0], 1)
	msg := provider.calls[0][0]
	assert.Equal(t, llm.RoleUser, msg.Role)
	assert.Equal(t, "data:image/png;base64,BBBB", msg.ImageURL)
	assert.Contains(t, msg.Content, "PCOS")
	assert.True(t, provider.options[0].JSONResponse)
}

func TestAnalyzeImage_ServiceErrorPassesThrough(t *testing.T) {
	provider := &fakeProvider{err: llm.NewServiceError(429, "rate limited")}
	client := newTestClient(provider, "sk-test")

	_, err := client.AnalyzeImage(context.Background(), "img", analysis.ProfileContext{})
	var svcErr *llm.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 429, svcErr.StatusCode)
	assert.Equal(t, "rate limited", svcErr.Message)
}

func TestAnalyzeImage_EmptyReply(t *testing.T) {
	provider := &fakeProvider{reply: "   "}
	client := newTestClient(provider, "sk-test")

	_, err := client.AnalyzeImage(context.Background(), "img", analysis.ProfileContext{})
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestAnalyzeImage_MalformedReply(t *testing.T) {
	provider := &fakeProvider{reply: "this is not json"}
	client := newTestClient(provider, "sk-test")

	_, err := client.AnalyzeImage(context.Background(), "img", analysis.ProfileContext{})
	assert.ErrorIs(t, err, llm.ErrMalformedResponse)
}

func TestAnalyzeImage_NormalizesPartialReply(t *testing.T) {
	provider := &fakeProvider{reply: `{"pcosCompatibility": 85, "alternatives": ["X"]}`}
	client := newTestClient(provider, "sk-test")

	result, err := client.AnalyzeImage(context.Background(), "img", analysis.ProfileContext{})
	require.NoError(t, err)
	assert.Equal(t, "Unknown Food", result.FoodName)
	assert.Equal(t, []string{}, result.Alternatives)
}

func boolPtr(b bool) *bool { return &b }
