package services

import (
	"math"
	"testing"
)

func TestScoreLifting(t *testing.T) {
	// load 12 interpolates to 35 base points; 30/hr is the 1.25 breakpoint;
	// bending and knee each add 1.15.
	got := ScoreLifting(12, 30, "bending", "knee")
	want := 35 * 1.25 * 1.15 * 1.15 // 57.859375
	if !almostEqual(got, want) {
		t.Fatalf("ScoreLifting=%v, want %v", got, want)
	}
	if tier := ClassifyTier(got, DefaultThresholds()); tier != TierMedHigh {
		t.Fatalf("tier=%v, want Med-High", tier)
	}
}

func TestScorePushPull(t *testing.T) {
	got := ScorePushPull(18, 25, "smooth", 20)
	want := 44 * 1.125 * 1.0 * 1.15 // 56.925
	if !almostEqual(got, want) {
		t.Fatalf("ScorePushPull=%v, want %v", got, want)
	}
	if tier := ClassifyTier(got, DefaultThresholds()); tier != TierMedHigh {
		t.Fatalf("tier=%v, want Med-High", tier)
	}
}

func TestScoreRepetitive(t *testing.T) {
	got := ScoreRepetitive(28, 12, "severe", "reaching")
	want := 40 * 1.18 * 1.35 * 1.2 // 76.464
	if !almostEqual(got, want) {
		t.Fatalf("ScoreRepetitive=%v, want %v", got, want)
	}
	if tier := ClassifyTier(got, DefaultThresholds()); tier != TierHigh {
		t.Fatalf("tier=%v, want High", tier)
	}
}

// All scorers stay inside [5, 100] for any numeric input, including
// out-of-table and negative values.
func TestScoreClamping(t *testing.T) {
	scores := []float64{
		ScoreLifting(0, 0, "neutral", "waist"),
		ScoreLifting(-10, -5, "neutral", "waist"),
		ScoreLifting(500, 500, "twisting", "floor"),
		ScorePushPull(0, 0, "smooth", 0),
		ScorePushPull(1000, 1000, "rough", 1000),
		ScoreRepetitive(0, 60, "none", "neutral"),
		ScoreRepetitive(300, 0.1, "severe", "reaching"),
	}
	for i, s := range scores {
		if s < 5 || s > 100 {
			t.Fatalf("score %d out of range: %v", i, s)
		}
	}
	if got := ScoreLifting(500, 500, "twisting", "floor"); got != 100 {
		t.Fatalf("extreme lifting should clamp to 100, got %v", got)
	}
	if got := ScoreLifting(-10, 0, "neutral", "waist"); got != 5 {
		t.Fatalf("negative load should clamp to 5, got %v", got)
	}
}

// Unrecognized categorical values score as a neutral 1.0 multiplier.
func TestScoreUnknownCategoricals(t *testing.T) {
	base := ScoreLifting(12, 30, "neutral", "waist")
	if got := ScoreLifting(12, 30, "handstand", "orbit"); !almostEqual(got, base) {
		t.Fatalf("unknown categoricals: got %v, want neutral %v", got, base)
	}
	if got := ScorePushPull(18, 25, "icy", 20); !almostEqual(got, ScorePushPull(18, 25, "smooth", 20)) {
		t.Fatalf("unknown surface should be neutral")
	}
	if got := ScoreRepetitive(28, 12, "extreme", "neutral"); !almostEqual(got, ScoreRepetitive(28, 12, "none", "neutral")) {
		t.Fatalf("unknown neck/shoulder should be neutral")
	}
}

// Base points never decrease as the primary input grows, holding the rest
// fixed. The repetitive cycle-time curve is intentionally inverse.
func TestScoreMonotonic(t *testing.T) {
	prev := math.Inf(-1)
	for load := 0.0; load <= 50; load += 0.5 {
		s := ScoreLifting(load, 20, "neutral", "waist")
		if s < prev {
			t.Fatalf("lifting score decreased at load=%v", load)
		}
		prev = s
	}
	prev = math.Inf(-1)
	for force := 0.0; force <= 50; force += 0.5 {
		s := ScorePushPull(force, 10, "smooth", 20)
		if s < prev {
			t.Fatalf("push/pull score decreased at force=%v", force)
		}
		prev = s
	}
	prev = math.Inf(-1)
	for reps := 0.0; reps <= 80; reps += 1 {
		s := ScoreRepetitive(reps, 30, "none", "neutral")
		if s < prev {
			t.Fatalf("repetitive score decreased at reps=%v", reps)
		}
		prev = s
	}
	// Shorter cycle time means more repetition, so score must not increase
	// as cycle time grows.
	prev = math.Inf(1)
	for cycle := 1.0; cycle <= 90; cycle += 1 {
		s := ScoreRepetitive(28, cycle, "none", "neutral")
		if s > prev {
			t.Fatalf("repetitive score increased at cycle=%v", cycle)
		}
		prev = s
	}
}

func TestValidTool(t *testing.T) {
	for _, tool := range []Tool{ToolLifting, ToolPushPull, ToolRepetitive} {
		if !ValidTool(tool) {
			t.Fatalf("%s should be valid", tool)
		}
	}
	if ValidTool("forklift") {
		t.Fatalf("unknown tool should be invalid")
	}
}
