package analysis

import "strconv"

// Normalize coerces an untyped response document into the strict Result shape.
//
// Every field has a deterministic default when missing or of the wrong type:
//   - foodName: "Unknown Food"
//   - pcosCompatibility: 50 (numbers and numeric strings are accepted)
//   - glycemicLoad / inflammatoryScore: "Unknown" (values outside their
//     classification sets are treated as wrong-typed)
//   - recommendation: ""
//   - alternatives: []
//
// The compatibility invariant is applied here: a score of 80 or above clears
// the alternatives list regardless of what the model returned. The score is
// not otherwise range-clamped.
func Normalize(doc map[string]interface{}) *Result {
	result := &Result{
		FoodName:          "Unknown Food",
		PCOSCompatibility: 50,
		Nutrition: Nutrition{
			GlycemicLoad:      GlycemicUnknown,
			InflammatoryScore: UnknownInflammatory,
		},
		Alternatives: []string{},
	}

	if doc == nil {
		return result
	}

	if name, ok := doc["foodName"].(string); ok && name != "" {
		result.FoodName = name
	}

	result.PCOSCompatibility = toInt(doc["pcosCompatibility"], 50)

	if info, ok := doc["nutritionalInfo"].(map[string]interface{}); ok {
		result.Nutrition.Carbs = toFloat(info["carbs"], 0)
		result.Nutrition.Protein = toFloat(info["protein"], 0)
		result.Nutrition.Fats = toFloat(info["fats"], 0)
		result.Nutrition.GlycemicLoad = toEnum(info["glycemicLoad"],
			[]string{GlycemicLow, GlycemicMedium, GlycemicHigh}, GlycemicUnknown)
		result.Nutrition.InflammatoryScore = toEnum(info["inflammatoryScore"],
			[]string{AntiInflammatory, NeutralInflammatory, ProInflammatory}, UnknownInflammatory)
	}

	if rec, ok := doc["recommendation"].(string); ok {
		result.Recommendation = rec
	}

	if raw, ok := doc["alternatives"].([]interface{}); ok {
		alternatives := make([]string, 0, len(raw))
		for _, entry := range raw {
			if s, ok := entry.(string); ok {
				alternatives = append(alternatives, s)
			}
		}
		result.Alternatives = alternatives
	}

	// A compatible food needs no substitutes.
	if result.PCOSCompatibility >= 80 {
		result.Alternatives = []string{}
	}

	return result
}

// toInt coerces a JSON value to an int, accepting numbers and numeric strings.
func toInt(value interface{}, fallback int) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return int(n)
		}
	}
	return fallback
}

// toFloat coerces a JSON value to a float64, accepting numbers and numeric strings.
func toFloat(value interface{}, fallback float64) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return fallback
}

// toEnum returns value if it is a string within allowed, else fallback.
func toEnum(value interface{}, allowed []string, fallback string) string {
	s, ok := value.(string)
	if !ok {
		return fallback
	}
	for _, candidate := range allowed {
		if s == candidate {
			return s
		}
	}
	return fallback
}
