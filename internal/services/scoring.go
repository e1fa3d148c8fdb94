package services

// Tool identifies which assessment a survey record was collected with.
type Tool string

const (
	ToolLifting    Tool = "lifting"
	ToolPushPull   Tool = "push_pull"
	ToolRepetitive Tool = "repetitive"
)

// ValidTool reports whether t is one of the three assessment tools.
func ValidTool(t Tool) bool {
	switch t {
	case ToolLifting, ToolPushPull, ToolRepetitive:
		return true
	}
	return false
}

const (
	minScore = 5
	maxScore = 100
)

// Categorical multipliers. Unrecognized values score as 1.0 (neutral); the
// lookup never fails.
var (
	liftPostureMult = map[string]float64{"neutral": 1.0, "bending": 1.15, "twisting": 1.2, "reaching": 1.1}
	liftHeightMult  = map[string]float64{"floor": 1.25, "knee": 1.15, "waist": 1.0, "shoulder": 1.2}
	surfaceMult     = map[string]float64{"smooth": 1.0, "rough": 1.15}
	neckMult        = map[string]float64{"none": 1.0, "mild": 1.15, "severe": 1.35}
	repPostureMult  = map[string]float64{"neutral": 1.0, "bending": 1.1, "twisting": 1.15, "reaching": 1.2}
)

func multiplier(m map[string]float64, key string) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return 1.0
}

// ScoreLifting scores a lifting task. Base points come from the load curve,
// scaled by frequency, posture and lift height, clamped to [5, 100].
func ScoreLifting(loadKg, frequencyPerHr float64, posture, liftHeight string) float64 {
	base := Interp([]float64{0, 5, 10, 20, 35}, []float64{5, 15, 30, 55, 75}, loadKg)
	freq := Interp([]float64{0, 10, 30, 60}, []float64{1.0, 1.1, 1.25, 1.4}, frequencyPerHr)
	return clampScore(base * freq * multiplier(liftPostureMult, posture) * multiplier(liftHeightMult, liftHeight))
}

// ScorePushPull scores a pushing/pulling task from initial force, travel
// distance, floor surface and frequency, clamped to [5, 100].
func ScorePushPull(forceKg, distanceM float64, surface string, frequencyPerHr float64) float64 {
	base := Interp([]float64{0, 5, 10, 20, 35}, []float64{5, 15, 28, 48, 70}, forceKg)
	dist := Interp([]float64{0, 10, 30, 60}, []float64{1.0, 1.05, 1.15, 1.25}, distanceM)
	freq := Interp([]float64{0, 10, 30, 60}, []float64{1.0, 1.1, 1.2, 1.3}, frequencyPerHr)
	return clampScore(base * dist * multiplier(surfaceMult, surface) * freq)
}

// ScoreRepetitive scores a repetitive upper-limb task. The cycle-time curve
// is inverted: shorter cycles mean more repetition and a higher multiplier.
func ScoreRepetitive(repsPerMin, cycleTimeSec float64, neckShoulderAwk, posture string) float64 {
	base := Interp([]float64{0, 10, 20, 40, 60}, []float64{5, 15, 30, 55, 75}, repsPerMin)
	cycle := Interp([]float64{5, 20, 60}, []float64{1.25, 1.1, 1.0}, cycleTimeSec)
	return clampScore(base * cycle * multiplier(neckMult, neckShoulderAwk) * multiplier(repPostureMult, posture))
}
