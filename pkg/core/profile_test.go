package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunahealth/cyclecare-go/pkg/core"
	memoryStore "github.com/lunahealth/cyclecare-go/pkg/kvstore/memory"
)

func TestProfileStore_Defaults(t *testing.T) {
	store := core.NewProfileStore(memoryStore.NewStore())

	profile := store.Get()
	assert.Equal(t, "", profile.Name)
	assert.Nil(t, profile.Age)
	assert.Empty(t, profile.Symptoms)
	assert.Nil(t, profile.InsulinResistant)
	assert.Equal(t, core.WeightGoalUnset, profile.WeightGoal)
	assert.False(t, profile.CompletedSetup)
	assert.False(t, store.IsComplete())
}

func TestProfileStore_UpdateMergesWithoutDroppingFields(t *testing.T) {
	store := core.NewProfileStore(memoryStore.NewStore())

	age := 29
	goal := core.WeightGoalLose
	store.Update(core.ProfileUpdate{
		Name:     core.String("Dana"),
		Age:      &age,
		Symptoms: []string{"acne", "fatigue"},
	})
	store.Update(core.ProfileUpdate{
		WeightGoal:         &goal,
		DietaryPreferences: []string{"vegetarian"},
	})
	store.Update(core.ProfileUpdate{
		InsulinResistant: core.Bool(true),
	})

	profile := store.Get()
	assert.Equal(t, "Dana", profile.Name)
	require.NotNil(t, profile.Age)
	assert.Equal(t, 29, *profile.Age)
	assert.Equal(t, []string{"acne", "fatigue"}, profile.Symptoms)
	assert.Equal(t, core.WeightGoalLose, profile.WeightGoal)
	assert.Equal(t, []string{"vegetarian"}, profile.DietaryPreferences)
	require.NotNil(t, profile.InsulinResistant)
	assert.True(t, *profile.InsulinResistant)
}

func TestProfileStore_MeasurementsReplacedWholesale(t *testing.T) {
	store := core.NewProfileStore(memoryStore.NewStore())

	store.Update(core.ProfileUpdate{
		Height: &core.Measurement{Value: 168, Unit: "cm"},
		Weight: &core.Measurement{Value: 64, Unit: "kg"},
	})
	store.Update(core.ProfileUpdate{
		Height: &core.Measurement{Value: 66, Unit: "in"},
	})

	profile := store.Get()
	require.NotNil(t, profile.Height)
	assert.Equal(t, core.Measurement{Value: 66, Unit: "in"}, *profile.Height)
	require.NotNil(t, profile.Weight)
	assert.Equal(t, core.Measurement{Value: 64, Unit: "kg"}, *profile.Weight)
}

func TestProfileStore_SetupFlow(t *testing.T) {
	store := core.NewProfileStore(memoryStore.NewStore())

	store.Update(core.ProfileUpdate{Name: core.String("Dana")})
	assert.Equal(t, "Dana", store.Get().Name)
	assert.False(t, store.IsComplete())

	store.Update(core.ProfileUpdate{CompletedSetup: core.Bool(true)})
	assert.True(t, store.IsComplete())
	assert.Equal(t, "Dana", store.Get().Name)
}

func TestProfileStore_PersistsAcrossReload(t *testing.T) {
	kv := memoryStore.NewStore()

	first := core.NewProfileStore(kv)
	age := 34
	first.Update(core.ProfileUpdate{
		Name:             core.String("Dana"),
		Age:              &age,
		Symptoms:         []string{"acne"},
		InsulinResistant: core.Bool(false),
		Height:           &core.Measurement{Value: 168, Unit: "cm"},
		CompletedSetup:   core.Bool(true),
	})

	second := core.NewProfileStore(kv)
	assert.Equal(t, first.Get(), second.Get())
}

func TestProfileStore_MalformedStoredDataYieldsDefaults(t *testing.T) {
	kv := memoryStore.NewStore()
	require.NoError(t, kv.Set(context.Background(), "profile", []byte("{not json")))

	store := core.NewProfileStore(kv)
	assert.Equal(t, "", store.Get().Name)
	assert.False(t, store.IsComplete())
}

func TestProfileStore_ResetClearsStateAndStorage(t *testing.T) {
	kv := memoryStore.NewStore()
	store := core.NewProfileStore(kv)
	store.Update(core.ProfileUpdate{Name: core.String("Dana")})

	store.Reset()
	assert.Equal(t, "", store.Get().Name)

	reloaded := core.NewProfileStore(kv)
	assert.Equal(t, "", reloaded.Get().Name)
}

func TestProfileStore_GetReturnsCopy(t *testing.T) {
	store := core.NewProfileStore(memoryStore.NewStore())
	store.Update(core.ProfileUpdate{Symptoms: []string{"acne"}})

	profile := store.Get()
	profile.Symptoms[0] = "mutated"

	assert.Equal(t, []string{"acne"}, store.Get().Symptoms)
}
