// Package core provides the CycleCare client and its state engine: the
// profile store, food-analysis history log, chat session, risk scoring, and
// the facade that ties them to the AI clients and the key-value store.
package core

import (
	"strings"
	"time"
)

// WeightGoal is the user's weight objective.
type WeightGoal string

const (
	// WeightGoalMaintain keeps current weight.
	WeightGoalMaintain WeightGoal = "maintain"

	// WeightGoalLose reduces weight.
	WeightGoalLose WeightGoal = "lose"

	// WeightGoalGain increases weight.
	WeightGoalGain WeightGoal = "gain"

	// WeightGoalUnset means no goal has been chosen yet.
	WeightGoalUnset WeightGoal = ""
)

// PeriodRegularity describes the user's menstrual cycle pattern.
type PeriodRegularity string

const (
	// PeriodRegular means cycles arrive on a predictable schedule.
	PeriodRegular PeriodRegularity = "regular"

	// PeriodIrregular means cycles arrive unpredictably.
	PeriodIrregular PeriodRegularity = "irregular"

	// PeriodAbsent means cycles are currently absent.
	PeriodAbsent PeriodRegularity = "absent"
)

// RiskLevel is the derived three-level risk classification.
type RiskLevel string

const (
	// RiskLow indicates a low derived risk.
	RiskLow RiskLevel = "low"

	// RiskMedium indicates a medium derived risk.
	RiskMedium RiskLevel = "medium"

	// RiskHigh indicates a high derived risk.
	RiskHigh RiskLevel = "high"
)

// Measurement is a single body measurement with its unit.
//
// Measurements are replaced wholesale on update, never merged field-by-field;
// a partial update that sets a measurement must carry the complete value.
type Measurement struct {
	// Value is the numeric measurement.
	Value float64 `json:"value"`

	// Unit is the measurement unit (e.g. "cm", "kg").
	Unit string `json:"unit"`
}

// Profile is the durable record of one user's self-reported health
// attributes and questionnaire completion flags.
//
// The profile is a single mutable record: partial updates always merge onto
// the current value, so fields never regress to their defaults except on
// logout. CompletedSetup, CompletedQuiz, and CompletedExtendedQuiz are
// independent flags; each gates a different downstream feature.
type Profile struct {
	// Name is the user's display name (may be empty until set).
	Name string `json:"name"`

	// Age is the user's age in years (nil until answered). Range validation
	// is the questionnaire's concern, not the store's.
	Age *int `json:"age,omitempty"`

	// Symptoms is the set of self-reported symptoms. Insertion order is not
	// meaningful and duplicates are kept as given.
	Symptoms []string `json:"symptoms"`

	// InsulinResistant reports insulin resistance: true, false, or nil for unknown.
	InsulinResistant *bool `json:"insulin_resistant,omitempty"`

	// WeightGoal is the user's weight objective.
	WeightGoal WeightGoal `json:"weight_goal"`

	// DietaryPreferences is the set of self-reported dietary preferences.
	DietaryPreferences []string `json:"dietary_preferences"`

	// PeriodRegularity describes the menstrual cycle pattern ("" until answered).
	PeriodRegularity PeriodRegularity `json:"period_regularity,omitempty"`

	// PrimaryGoal is the user's main reason for using the app ("" until answered).
	PrimaryGoal string `json:"primary_goal,omitempty"`

	// HasBeenDiagnosed reports a prior PCOS diagnosis (nil until answered).
	HasBeenDiagnosed *bool `json:"has_been_diagnosed,omitempty"`

	// Height is the user's height (nil until answered).
	Height *Measurement `json:"height,omitempty"`

	// Weight is the user's weight (nil until answered).
	Weight *Measurement `json:"weight,omitempty"`

	// DiagnosedConditions lists other diagnosed conditions (extended questionnaire).
	DiagnosedConditions []string `json:"diagnosed_conditions,omitempty"`

	// FamilyHistory lists relevant family medical history (extended questionnaire).
	FamilyHistory []string `json:"family_history,omitempty"`

	// Medications lists current medications (extended questionnaire).
	Medications []string `json:"medications,omitempty"`

	// TryingToConceive reports conception intent (extended questionnaire).
	TryingToConceive *bool `json:"trying_to_conceive,omitempty"`

	// StressLevel is the self-reported stress level (extended questionnaire).
	StressLevel string `json:"stress_level,omitempty"`

	// CompletedSetup is set once initial setup has finished.
	CompletedSetup bool `json:"completed_setup"`

	// CompletedQuiz is set once the risk questionnaire has finished.
	CompletedQuiz bool `json:"completed_quiz"`

	// CompletedExtendedQuiz is set once the extended questionnaire has finished.
	CompletedExtendedQuiz bool `json:"completed_extended_quiz"`

	// PCOSProbability is the derived risk classification. Written only by
	// the risk scoring step at questionnaire completion.
	PCOSProbability RiskLevel `json:"pcos_probability,omitempty"`
}

// ProfileUpdate is a partial profile for merge updates.
//
// Nil fields are left untouched; non-nil fields replace the current value
// wholesale. This is one consistent shallow-merge policy: nested Measurement
// values are replaced as units, never deep-merged.
type ProfileUpdate struct {
	Name                  *string           `json:"name,omitempty"`
	Age                   *int              `json:"age,omitempty"`
	Symptoms              []string          `json:"symptoms,omitempty"`
	InsulinResistant      *bool             `json:"insulin_resistant,omitempty"`
	WeightGoal            *WeightGoal       `json:"weight_goal,omitempty"`
	DietaryPreferences    []string          `json:"dietary_preferences,omitempty"`
	PeriodRegularity      *PeriodRegularity `json:"period_regularity,omitempty"`
	PrimaryGoal           *string           `json:"primary_goal,omitempty"`
	HasBeenDiagnosed      *bool             `json:"has_been_diagnosed,omitempty"`
	Height                *Measurement      `json:"height,omitempty"`
	Weight                *Measurement      `json:"weight,omitempty"`
	DiagnosedConditions   []string          `json:"diagnosed_conditions,omitempty"`
	FamilyHistory         []string          `json:"family_history,omitempty"`
	Medications           []string          `json:"medications,omitempty"`
	TryingToConceive      *bool             `json:"trying_to_conceive,omitempty"`
	StressLevel           *string           `json:"stress_level,omitempty"`
	CompletedSetup        *bool             `json:"completed_setup,omitempty"`
	CompletedQuiz         *bool             `json:"completed_quiz,omitempty"`
	CompletedExtendedQuiz *bool             `json:"completed_extended_quiz,omitempty"`
	PCOSProbability       *RiskLevel        `json:"pcos_probability,omitempty"`
}

// NutritionalInfo contains the per-food nutritional estimates.
type NutritionalInfo struct {
	// Carbs is the estimated carbohydrate content in grams.
	Carbs float64 `json:"carbs"`

	// Protein is the estimated protein content in grams.
	Protein float64 `json:"protein"`

	// Fats is the estimated fat content in grams.
	Fats float64 `json:"fats"`

	// GlycemicLoad is one of "Low", "Medium", "High", or "Unknown".
	GlycemicLoad string `json:"glycemic_load"`

	// InflammatoryScore is one of "Anti-inflammatory", "Neutral",
	// "Pro-inflammatory", or "Unknown".
	InflammatoryScore string `json:"inflammatory_score"`
}

// FoodAnalysisItem is one completed food-image analysis.
//
// Items are immutable after insertion into the history log.
// Invariant: if PCOSCompatibility >= 80, Alternatives is empty.
type FoodAnalysisItem struct {
	// ID is the unique identifier of the item.
	ID int64 `json:"id"`

	// Date is when the analysis was created.
	Date time.Time `json:"date"`

	// ImageURL is an opaque reference to the source image. May be a large
	// encoded payload (data URL).
	ImageURL string `json:"image_url"`

	// FoodName is the identified food ("Unknown Food" when not identified).
	FoodName string `json:"food_name"`

	// PCOSCompatibility scores how suitable the food is, 0-100.
	PCOSCompatibility int `json:"pcos_compatibility"`

	// NutritionalInfo contains the nutritional estimates.
	NutritionalInfo NutritionalInfo `json:"nutritional_info"`

	// Recommendation is free advisory text.
	Recommendation string `json:"recommendation"`

	// Alternatives lists suggested substitute foods, best first.
	Alternatives []string `json:"alternatives"`
}

// Unrecognized reports whether the model could not identify the food.
// The soft-failure decision belongs to the caller, not the analysis client.
func (f *FoodAnalysisItem) Unrecognized() bool {
	return strings.EqualFold(f.FoodName, "unknown")
}

// Chat message roles.
const (
	// RoleUser marks a message sent by the user.
	RoleUser = "user"

	// RoleAssistant marks a message sent by the assistant.
	RoleAssistant = "assistant"
)

// ChatMessage is one conversational turn in the chat session.
//
// Messages are strictly append-ordered by creation. Role alternation is not
// enforced; a user may send two messages in a row.
type ChatMessage struct {
	// ID is the unique identifier of the message.
	ID int64 `json:"id"`

	// Role is "user" or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Timestamp is when the message was created.
	Timestamp time.Time `json:"timestamp"`

	// FoodAnalysis is the embedded analysis when the turn shares one (nil otherwise).
	FoodAnalysis *FoodAnalysisItem `json:"food_analysis,omitempty"`
}
