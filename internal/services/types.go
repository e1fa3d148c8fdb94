package services

import "time"

// SurveyRecord is one completed assessment. Only the field subset matching
// Tool is semantically meaningful; the other tool-specific pointers stay nil.
// RiskScore and RiskTier are derived at save time and never recomputed in
// place: re-deriving tiers against newer thresholds is a separate, read-only
// operation.
type SurveyRecord struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Tool            Tool      `json:"tool"`
	TaskName        string    `json:"task_name"`
	DurationMin     float64   `json:"duration_min"`
	FrequencyPerHr  float64   `json:"frequency_per_hr"`
	Posture         string    `json:"posture"`
	LoadKg          *float64  `json:"load_kg,omitempty"`
	LiftHeight      *string   `json:"lift_height,omitempty"`
	PushPullForceKg *float64  `json:"push_pull_force_kg,omitempty"`
	DistanceM       *float64  `json:"distance_m,omitempty"`
	Surface         *string   `json:"surface,omitempty"`
	RepsPerMin      *float64  `json:"reps_per_min,omitempty"`
	CycleTimeSec    *float64  `json:"cycle_time_sec,omitempty"`
	NeckShoulderAwk *string   `json:"neck_shoulder_awk,omitempty"`
	RiskScore       float64   `json:"risk_score"`
	RiskTier        Tier      `json:"risk_tier"`
}

// RecordColumns is the fixed export schema, one column per field in order.
// Import normalizes any incoming table to this layout.
var RecordColumns = []string{
	"timestamp",
	"tool",
	"task_name",
	"duration_min",
	"frequency_per_hr",
	"posture",
	"load_kg",
	"lift_height",
	"push_pull_force_kg",
	"distance_m",
	"surface",
	"reps_per_min",
	"cycle_time_sec",
	"neck_shoulder_awk",
	"risk_score",
	"risk_tier",
}

// TimestampLayout is the wire format for record timestamps in CSV.
const TimestampLayout = "2006-01-02 15:04"

// User is an admin account allowed to mutate thresholds and replace data.
type User struct {
	ID        string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}

// AuditEntry records an administrative action.
type AuditEntry struct {
	Time   time.Time
	Actor  string
	Action string
	Target string
	Note   string
}
