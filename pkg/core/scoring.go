package core

// RiskScore computes the questionnaire risk score for the profile answered
// so far. Pure and total: defined for every reachable partial profile.
//
// Scoring:
//   - +2 if period regularity is irregular or absent
//   - +1 per selected symptom
//   - +1 if insulin resistance is known to be true
func RiskScore(p Profile) int {
	score := 0
	if p.PeriodRegularity == PeriodIrregular || p.PeriodRegularity == PeriodAbsent {
		score += 2
	}
	score += len(p.Symptoms)
	if p.InsulinResistant != nil && *p.InsulinResistant {
		score++
	}
	return score
}

// ClassifyRisk maps a risk score to the three-level classification:
// score >= 4 is high, score >= 2 is medium, else low.
func ClassifyRisk(score int) RiskLevel {
	switch {
	case score >= 4:
		return RiskHigh
	case score >= 2:
		return RiskMedium
	default:
		return RiskLow
	}
}

// AssessRisk scores and classifies in one step.
func AssessRisk(p Profile) RiskLevel {
	return ClassifyRisk(RiskScore(p))
}
