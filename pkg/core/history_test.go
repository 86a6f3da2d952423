package core_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunahealth/cyclecare-go/pkg/core"
	memoryStore "github.com/lunahealth/cyclecare-go/pkg/kvstore/memory"
)

func analysisItem(id int64, name string) core.FoodAnalysisItem {
	return core.FoodAnalysisItem{
		ID:                id,
		Date:              time.Now(),
		ImageURL:          "https://example.com/food.jpg",
		FoodName:          name,
		PCOSCompatibility: 60,
		NutritionalInfo: core.NutritionalInfo{
			Carbs:             30,
			Protein:           12,
			Fats:              8,
			GlycemicLoad:      "Medium",
			InflammatoryScore: "Neutral",
		},
		Recommendation: "Pair with protein.",
		Alternatives:   []string{"quinoa bowl"},
	}
}

func TestHistoryLog_AppendNewestFirst(t *testing.T) {
	log := core.NewHistoryLog(memoryStore.NewStore(), 100)

	log.Append(analysisItem(1, "oatmeal"))
	log.Append(analysisItem(2, "salad"))

	items := log.List()
	require.Len(t, items, 2)
	assert.Equal(t, "salad", items[0].FoodName)
	assert.Equal(t, "oatmeal", items[1].FoodName)
}

func TestHistoryLog_EvictsOldestAtCapacity(t *testing.T) {
	log := core.NewHistoryLog(memoryStore.NewStore(), 100)

	for i := 1; i <= 101; i++ {
		log.Append(analysisItem(int64(i), fmt.Sprintf("food-%d", i)))
	}

	items := log.List()
	require.Len(t, items, 100)
	// Newest first; the very first append is the one evicted.
	assert.Equal(t, "food-101", items[0].FoodName)
	assert.Equal(t, "food-2", items[99].FoodName)
	for _, item := range items {
		assert.NotEqual(t, "food-1", item.FoodName)
	}
}

func TestHistoryLog_HighCompatibilityClearsAlternatives(t *testing.T) {
	log := core.NewHistoryLog(memoryStore.NewStore(), 100)

	item := analysisItem(1, "salmon")
	item.PCOSCompatibility = 85
	item.Alternatives = []string{"should be dropped"}
	log.Append(item)

	items := log.List()
	require.Len(t, items, 1)
	assert.Empty(t, items[0].Alternatives)
}

func TestHistoryLog_PersistsAcrossReload(t *testing.T) {
	kv := memoryStore.NewStore()

	first := core.NewHistoryLog(kv, 100)
	first.Append(analysisItem(1, "oatmeal"))
	first.Append(analysisItem(2, "salad"))

	second := core.NewHistoryLog(kv, 100)
	items := second.List()
	require.Len(t, items, 2)
	assert.Equal(t, "salad", items[0].FoodName)
	assert.Equal(t, int64(2), items[0].ID)
	// Timestamps survive the round trip at second granularity.
	assert.WithinDuration(t, first.List()[0].Date, items[0].Date, time.Second)
}

func TestHistoryLog_MalformedStoredDataYieldsEmpty(t *testing.T) {
	kv := memoryStore.NewStore()
	require.NoError(t, kv.Set(context.Background(), "food_history", []byte("[broken")))

	log := core.NewHistoryLog(kv, 100)
	assert.Zero(t, log.Len())
}

func TestHistoryLog_ResetClearsStateAndStorage(t *testing.T) {
	kv := memoryStore.NewStore()
	log := core.NewHistoryLog(kv, 100)
	log.Append(analysisItem(1, "oatmeal"))

	log.Reset()
	assert.Zero(t, log.Len())

	reloaded := core.NewHistoryLog(kv, 100)
	assert.Zero(t, reloaded.Len())
}
