// Package analysis provides the AI client that turns a food image into a
// structured PCOS-compatibility assessment.
//
// The client builds a natural-language instruction from the caller's profile,
// issues one vision request against the inference endpoint, and normalizes
// the untyped JSON reply into the strict Result shape. Normalization is the
// schema-validation layer: every field has a deterministic default when the
// model omits it or returns the wrong type.
package analysis

// ProfileContext carries the profile fields the analysis prompt is
// conditioned on.
//
// This type mirrors the relevant subset of the core profile to keep the
// package free of a dependency on the core state layer; the facade converts
// between the two.
type ProfileContext struct {
	// Age is the user's age in years (nil if unknown).
	Age *int

	// Symptoms is the list of self-reported symptoms.
	Symptoms []string

	// InsulinResistant reports insulin resistance: true, false, or nil for unknown.
	InsulinResistant *bool

	// WeightGoal is one of "maintain", "lose", "gain", or "" when unset.
	WeightGoal string

	// DietaryPreferences is the list of self-reported dietary preferences.
	DietaryPreferences []string
}

// Glycemic load classifications returned by normalization.
const (
	GlycemicLow     = "Low"
	GlycemicMedium  = "Medium"
	GlycemicHigh    = "High"
	GlycemicUnknown = "Unknown"
)

// Inflammatory score classifications returned by normalization.
const (
	AntiInflammatory    = "Anti-inflammatory"
	NeutralInflammatory = "Neutral"
	ProInflammatory     = "Pro-inflammatory"
	UnknownInflammatory = "Unknown"
)

// Nutrition contains the per-food nutritional estimates.
type Nutrition struct {
	// Carbs is the estimated carbohydrate content in grams.
	Carbs float64 `json:"carbs"`

	// Protein is the estimated protein content in grams.
	Protein float64 `json:"protein"`

	// Fats is the estimated fat content in grams.
	Fats float64 `json:"fats"`

	// GlycemicLoad is one of Low, Medium, High, or Unknown.
	GlycemicLoad string `json:"glycemicLoad"`

	// InflammatoryScore is one of Anti-inflammatory, Neutral,
	// Pro-inflammatory, or Unknown.
	InflammatoryScore string `json:"inflammatoryScore"`
}

// Result is the normalized outcome of one food-image analysis.
//
// Invariant: if PCOSCompatibility >= 80, Alternatives is empty regardless of
// what the model returned.
type Result struct {
	// FoodName is the identified food ("Unknown Food" when not identified).
	FoodName string `json:"foodName"`

	// PCOSCompatibility scores how suitable the food is, 0-100.
	PCOSCompatibility int `json:"pcosCompatibility"`

	// Nutrition contains the nutritional estimates.
	Nutrition Nutrition `json:"nutritionalInfo"`

	// Recommendation is free advisory text.
	Recommendation string `json:"recommendation"`

	// Alternatives lists suggested substitute foods, best first.
	Alternatives []string `json:"alternatives"`
}
