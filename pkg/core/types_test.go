package core_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunahealth/cyclecare-go/pkg/core"
)

func TestProfileRoundTrip(t *testing.T) {
	age := 31
	original := core.Profile{
		Name:                  "Dana",
		Age:                   &age,
		Symptoms:              []string{"acne", "fatigue"},
		InsulinResistant:      core.Bool(true),
		WeightGoal:            core.WeightGoalLose,
		DietaryPreferences:    []string{"vegetarian"},
		PeriodRegularity:      core.PeriodIrregular,
		PrimaryGoal:           "symptom management",
		HasBeenDiagnosed:      core.Bool(false),
		Height:                &core.Measurement{Value: 168, Unit: "cm"},
		Weight:                &core.Measurement{Value: 64, Unit: "kg"},
		DiagnosedConditions:   []string{"hypothyroidism"},
		FamilyHistory:         []string{"diabetes"},
		Medications:           []string{"metformin"},
		TryingToConceive:      core.Bool(false),
		StressLevel:           "moderate",
		CompletedSetup:        true,
		CompletedQuiz:         true,
		CompletedExtendedQuiz: false,
		PCOSProbability:       core.RiskMedium,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded core.Profile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestFoodAnalysisListRoundTrip(t *testing.T) {
	original := []core.FoodAnalysisItem{
		analysisItem(2, "salad"),
		analysisItem(1, "oatmeal"),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded []core.FoodAnalysisItem
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	for i := range original {
		assert.Equal(t, original[i].ID, decoded[i].ID)
		assert.Equal(t, original[i].FoodName, decoded[i].FoodName)
		assert.Equal(t, original[i].NutritionalInfo, decoded[i].NutritionalInfo)
		assert.Equal(t, original[i].Alternatives, decoded[i].Alternatives)
		assert.WithinDuration(t, original[i].Date, decoded[i].Date, time.Second)
	}
}

func TestChatMessageListRoundTrip(t *testing.T) {
	shared := analysisItem(9, "salmon")
	original := []core.ChatMessage{
		{ID: 1, Role: core.RoleUser, Content: "hello", Timestamp: time.Now()},
		{ID: 2, Role: core.RoleAssistant, Content: "hi!", Timestamp: time.Now(), FoodAnalysis: &shared},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	// Timestamps are serialized as ISO-8601 strings.
	assert.Contains(t, string(data), original[0].Timestamp.Format("2006-01-02T15:04:05"))

	var decoded []core.ChatMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, original[0].ID, decoded[0].ID)
	assert.Equal(t, original[1].Content, decoded[1].Content)
	require.NotNil(t, decoded[1].FoodAnalysis)
	assert.Equal(t, "salmon", decoded[1].FoodAnalysis.FoodName)
	assert.WithinDuration(t, original[0].Timestamp, decoded[0].Timestamp, time.Second)
}

func TestFoodAnalysisItemUnrecognized(t *testing.T) {
	item := analysisItem(1, "unknown")
	assert.True(t, item.Unrecognized())

	item.FoodName = "Unknown"
	assert.True(t, item.Unrecognized())

	item.FoodName = "Unknown Food"
	assert.False(t, item.Unrecognized())

	item.FoodName = "oatmeal"
	assert.False(t, item.Unrecognized())
}
