package core

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/lunahealth/cyclecare-go/pkg/kvstore"
)

// profileKey is the key-value store key holding the serialized profile.
const profileKey = "profile"

// ProfileStore owns the Profile entity.
//
// The store is the sole writer of the profile key in the key-value store.
// Every mutation persists the full profile synchronously; a failed write is
// logged and the in-memory value stays authoritative for the session, which
// keeps callers responsive at the cost of durability for that write.
type ProfileStore struct {
	// store is the backing key-value store.
	store kvstore.Store

	// profile is the current in-memory value.
	profile Profile

	// mu protects concurrent access to the profile.
	mu sync.RWMutex
}

// NewProfileStore creates a ProfileStore backed by the given key-value store.
//
// Any previously persisted profile is loaded; malformed or missing stored
// data yields all-empty defaults, never an error.
func NewProfileStore(store kvstore.Store) *ProfileStore {
	s := &ProfileStore{
		store:   store,
		profile: defaultProfile(),
	}

	data, err := store.Get(context.Background(), profileKey)
	if err != nil {
		if err != kvstore.ErrKeyNotFound {
			log.Printf("cyclecare: profile load failed, starting with defaults: %v", err)
		}
		return s
	}

	var loaded Profile
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Printf("cyclecare: profile parse failed, starting with defaults: %v", err)
		return s
	}
	s.profile = loaded
	return s
}

// defaultProfile returns the all-empty profile used on first access and
// after logout.
func defaultProfile() Profile {
	return Profile{
		Symptoms:           []string{},
		DietaryPreferences: []string{},
	}
}

// Get returns the current profile. Never fails.
func (s *ProfileStore) Get() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProfile(s.profile)
}

// IsComplete reports whether initial setup has finished.
func (s *ProfileStore) IsComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.CompletedSetup
}

// Update merges the partial update over the current profile field-by-field
// and persists the result.
//
// The merge is shallow: nil fields in the update are left untouched, non-nil
// fields (including slices and Measurement values) replace the current value
// wholesale. No update ever loses previously set fields. Never fails; a
// persistence write failure is logged, and the in-memory update still takes
// effect.
//
// Returns the new profile value.
func (s *ProfileStore) Update(update ProfileUpdate) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	applyUpdate(&s.profile, update)
	s.persistLocked()
	return copyProfile(s.profile)
}

// Reset restores the all-empty defaults and removes the persisted record.
// Used on logout.
func (s *ProfileStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = defaultProfile()
	if err := s.store.Delete(context.Background(), profileKey); err != nil {
		log.Printf("cyclecare: profile delete failed: %v", err)
	}
}

// persistLocked writes the full profile under the profile key.
// Callers must hold mu.
func (s *ProfileStore) persistLocked() {
	data, err := json.Marshal(s.profile)
	if err != nil {
		log.Printf("cyclecare: profile marshal failed: %v", err)
		return
	}
	if err := s.store.Set(context.Background(), profileKey, data); err != nil {
		log.Printf("cyclecare: profile write failed: %v", err)
	}
}

// applyUpdate merges update onto profile. Non-nil fields replace the current
// value wholesale.
func applyUpdate(profile *Profile, update ProfileUpdate) {
	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Age != nil {
		profile.Age = update.Age
	}
	if update.Symptoms != nil {
		profile.Symptoms = update.Symptoms
	}
	if update.InsulinResistant != nil {
		profile.InsulinResistant = update.InsulinResistant
	}
	if update.WeightGoal != nil {
		profile.WeightGoal = *update.WeightGoal
	}
	if update.DietaryPreferences != nil {
		profile.DietaryPreferences = update.DietaryPreferences
	}
	if update.PeriodRegularity != nil {
		profile.PeriodRegularity = *update.PeriodRegularity
	}
	if update.PrimaryGoal != nil {
		profile.PrimaryGoal = *update.PrimaryGoal
	}
	if update.HasBeenDiagnosed != nil {
		profile.HasBeenDiagnosed = update.HasBeenDiagnosed
	}
	if update.Height != nil {
		profile.Height = update.Height
	}
	if update.Weight != nil {
		profile.Weight = update.Weight
	}
	if update.DiagnosedConditions != nil {
		profile.DiagnosedConditions = update.DiagnosedConditions
	}
	if update.FamilyHistory != nil {
		profile.FamilyHistory = update.FamilyHistory
	}
	if update.Medications != nil {
		profile.Medications = update.Medications
	}
	if update.TryingToConceive != nil {
		profile.TryingToConceive = update.TryingToConceive
	}
	if update.StressLevel != nil {
		profile.StressLevel = *update.StressLevel
	}
	if update.CompletedSetup != nil {
		profile.CompletedSetup = *update.CompletedSetup
	}
	if update.CompletedQuiz != nil {
		profile.CompletedQuiz = *update.CompletedQuiz
	}
	if update.CompletedExtendedQuiz != nil {
		profile.CompletedExtendedQuiz = *update.CompletedExtendedQuiz
	}
	if update.PCOSProbability != nil {
		profile.PCOSProbability = *update.PCOSProbability
	}
}

// copyProfile returns a copy of p with its slices duplicated, so callers
// cannot mutate store-owned state.
func copyProfile(p Profile) Profile {
	out := p
	out.Symptoms = copyStrings(p.Symptoms)
	out.DietaryPreferences = copyStrings(p.DietaryPreferences)
	out.DiagnosedConditions = copyStrings(p.DiagnosedConditions)
	out.FamilyHistory = copyStrings(p.FamilyHistory)
	out.Medications = copyStrings(p.Medications)
	return out
}

// copyStrings duplicates a string slice, preserving nil.
func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
