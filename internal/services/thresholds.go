package services

// Tier is the ordered risk category derived from a score.
type Tier string

const (
	TierLow     Tier = "Low"
	TierMedium  Tier = "Medium"
	TierMedHigh Tier = "Med-High"
	TierHigh    Tier = "High"
)

// Thresholds holds the three score cutoffs that map scores to tiers.
// Valid sets satisfy Med <= MedHigh <= High, with each cutoff in [0, 100].
// The ordering is enforced where thresholds are mutated (ThresholdService),
// not here.
type Thresholds struct {
	High    int `json:"high"`
	MedHigh int `json:"med_high"`
	Med     int `json:"med"`
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 70, MedHigh: 50, Med: 35}
}

// Valid reports whether the cutoffs are in range and ordered.
func (t Thresholds) Valid() bool {
	for _, v := range []int{t.High, t.MedHigh, t.Med} {
		if v < 0 || v > 100 {
			return false
		}
	}
	return t.Med <= t.MedHigh && t.MedHigh <= t.High
}

// ClassifyTier maps a score to a tier. Boundaries are inclusive of the upper
// tier: a score exactly at High classifies as High. The score is taken as-is;
// callers pass already-clamped values but any float is accepted.
func ClassifyTier(score float64, t Thresholds) Tier {
	switch {
	case score >= float64(t.High):
		return TierHigh
	case score >= float64(t.MedHigh):
		return TierMedHigh
	case score >= float64(t.Med):
		return TierMedium
	default:
		return TierLow
	}
}
