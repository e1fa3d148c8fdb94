package services

const maxRecommendations = 4

var baseRecommendations = []string{
	"Rotate tasks to reduce exposure time.",
	"Provide micro-breaks and encourage neutral postures.",
	"Train staff on safe techniques and early symptom reporting.",
}

var toolRecommendations = map[Tool]string{
	ToolLifting:    "Reduce load weight or split lifts into smaller units.",
	ToolPushPull:   "Reduce initial push/pull force and improve wheel/surface condition.",
	ToolRepetitive: "Redesign tasks to lower repetition rate or awkward neck/shoulder posture.",
}

// Recommend selects advisory controls for a scored task. The general
// controls always lead; for Med-High and High tiers an engineering-controls
// advisory is prepended and one tool-specific suggestion appended. The list
// is capped at four entries, so the tool-specific suggestion only survives
// when the tier qualifies.
func Recommend(tier Tier, tool Tool) []string {
	recs := make([]string, 0, maxRecommendations+1)
	if tier == TierMedHigh || tier == TierHigh {
		recs = append(recs, "Consider engineering controls (lifting aids, height-adjustable benches).")
	}
	recs = append(recs, baseRecommendations...)
	if tier == TierMedHigh || tier == TierHigh {
		if extra, ok := toolRecommendations[tool]; ok {
			recs = append(recs, extra)
		}
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
