package analysis

import (
	"fmt"
	"strings"
)

// Static domain facts embedded in every analysis instruction. These condition
// the model toward PCOS-relevant reasoning regardless of the profile.
const domainFacts = `Relevant background:
- Up to 70% of people with PCOS have insulin resistance, so high-glycemic foods can worsen symptoms.
- Chronic low-grade inflammation is common in PCOS; anti-inflammatory foods (fatty fish, leafy greens, berries, olive oil) are preferred.
- Balanced meals pairing carbohydrates with protein and fat blunt glucose spikes.
- Highly processed foods and added sugars are the most common aggravators.`

// buildInstruction assembles the analysis instruction for one request.
// Every profile field is substituted with an explicit fallback when absent;
// the instruction never contains an empty slot.
func buildInstruction(profile ProfileContext) string {
	age := "Unknown"
	if profile.Age != nil {
		age = fmt.Sprintf("%d", *profile.Age)
	}

	symptoms := "None specified"
	if len(profile.Symptoms) > 0 {
		symptoms = strings.Join(profile.Symptoms, ", ")
	}

	insulin := "Unknown"
	if profile.InsulinResistant != nil {
		if *profile.InsulinResistant {
			insulin = "Yes"
		} else {
			insulin = "No"
		}
	}

	weightGoal := "Unknown"
	if profile.WeightGoal != "" {
		weightGoal = profile.WeightGoal
	}

	preferences := "None specified"
	if len(profile.DietaryPreferences) > 0 {
		preferences = strings.Join(profile.DietaryPreferences, ", ")
	}

	var b strings.Builder
	b.WriteString("You are a nutrition analyst specialized in PCOS (polycystic ovary syndrome).\n\n")
	b.WriteString(domainFacts)
	b.WriteString("\n\nUser profile:\n")
	fmt.Fprintf(&b, "- Age: %s\n", age)
	fmt.Fprintf(&b, "- Symptoms: %s\n", symptoms)
	fmt.Fprintf(&b, "- Insulin resistant: %s\n", insulin)
	fmt.Fprintf(&b, "- Weight goal: %s\n", weightGoal)
	fmt.Fprintf(&b, "- Dietary preferences: %s\n", preferences)
	b.WriteString("\nAnalyze the food in the attached image for this user. ")
	b.WriteString("Respond with a single JSON object with exactly these fields:\n")
	b.WriteString(`{
  "foodName": string,
  "pcosCompatibility": number (0-100),
  "nutritionalInfo": {
    "carbs": number (grams),
    "protein": number (grams),
    "fats": number (grams),
    "glycemicLoad": "Low" | "Medium" | "High",
    "inflammatoryScore": "Anti-inflammatory" | "Neutral" | "Pro-inflammatory"
  },
  "recommendation": string,
  "alternatives": [string]
}`)
	b.WriteString("\nIf you cannot identify the food, set foodName to \"unknown\". ")
	b.WriteString("Only suggest alternatives when the food scores below 80.")
	return b.String()
}
