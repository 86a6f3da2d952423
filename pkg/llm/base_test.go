package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lunahealth/cyclecare-go/pkg/llm"
)

func TestApplyGenerateOptionsDefaults(t *testing.T) {
	options := llm.ApplyGenerateOptions(nil)

	assert.Equal(t, 0.7, options.Temperature)
	assert.Equal(t, 1000, options.MaxTokens)
	assert.Equal(t, 1.0, options.TopP)
	assert.False(t, options.JSONResponse)
}

func TestApplyGenerateOptionsOverrides(t *testing.T) {
	options := llm.ApplyGenerateOptions([]llm.GenerateOption{
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(1024),
		llm.WithTopP(0.9),
		llm.WithJSONResponse(),
	})

	assert.Equal(t, 0.2, options.Temperature)
	assert.Equal(t, 1024, options.MaxTokens)
	assert.Equal(t, 0.9, options.TopP)
	assert.True(t, options.JSONResponse)
}

func TestStaticCredential(t *testing.T) {
	assert.Equal(t, "sk-test", llm.StaticCredential("sk-test").APIKey())
	assert.Equal(t, "", llm.StaticCredential("").APIKey())
}
