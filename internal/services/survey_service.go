package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SurveyStore abstracts persistence operations required by SurveyService.
type SurveyStore interface {
	AddRecord(r *SurveyRecord) error
	ListRecords() ([]*SurveyRecord, error)
	GetThresholds() (Thresholds, error)
}

// SubmitSurveyRequest transports the sanitized handler input into the
// service layer. Tool-specific pointers follow the selected tool; the
// scoring core trusts the caller to supply the matching subset.
type SubmitSurveyRequest struct {
	Tool            Tool     `json:"tool"`
	TaskName        string   `json:"task_name"`
	DurationMin     float64  `json:"duration_min"`
	FrequencyPerHr  float64  `json:"frequency_per_hr"`
	Posture         string   `json:"posture"`
	LoadKg          *float64 `json:"load_kg,omitempty"`
	LiftHeight      *string  `json:"lift_height,omitempty"`
	PushPullForceKg *float64 `json:"push_pull_force_kg,omitempty"`
	DistanceM       *float64 `json:"distance_m,omitempty"`
	Surface         *string  `json:"surface,omitempty"`
	RepsPerMin      *float64 `json:"reps_per_min,omitempty"`
	CycleTimeSec    *float64 `json:"cycle_time_sec,omitempty"`
	NeckShoulderAwk *string  `json:"neck_shoulder_awk,omitempty"`
}

// SubmitSurveyResult collects the data needed to emit the HTTP response.
type SubmitSurveyResult struct {
	Record          *SurveyRecord `json:"record"`
	Recommendations []string      `json:"recommendations"`
}

// SurveyService hosts the submission workflow: score, classify against the
// thresholds in effect, select recommendations, persist.
type SurveyService struct {
	store SurveyStore
	now   func() time.Time
	idGen func() string
}

func NewSurveyService(store SurveyStore) *SurveyService {
	return &SurveyService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] },
	}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (s *SurveyService) Submit(req *SubmitSurveyRequest) (*SubmitSurveyResult, error) {
	if req == nil {
		return nil, NewInvalidError("request required")
	}
	if !ValidTool(req.Tool) {
		return nil, NewInvalidError("unknown tool")
	}

	var score float64
	switch req.Tool {
	case ToolLifting:
		score = ScoreLifting(deref(req.LoadKg), req.FrequencyPerHr, req.Posture, derefStr(req.LiftHeight))
	case ToolPushPull:
		score = ScorePushPull(deref(req.PushPullForceKg), deref(req.DistanceM), derefStr(req.Surface), req.FrequencyPerHr)
	case ToolRepetitive:
		score = ScoreRepetitive(deref(req.RepsPerMin), deref(req.CycleTimeSec), derefStr(req.NeckShoulderAwk), req.Posture)
	}

	thresholds, err := s.store.GetThresholds()
	if err != nil {
		return nil, err
	}
	tier := ClassifyTier(score, thresholds)

	taskName := strings.TrimSpace(req.TaskName)
	if taskName == "" {
		taskName = "(untitled task)"
	}

	rec := &SurveyRecord{
		ID:              s.idGen(),
		Timestamp:       s.now(),
		Tool:            req.Tool,
		TaskName:        taskName,
		DurationMin:     req.DurationMin,
		FrequencyPerHr:  req.FrequencyPerHr,
		Posture:         req.Posture,
		LoadKg:          req.LoadKg,
		LiftHeight:      req.LiftHeight,
		PushPullForceKg: req.PushPullForceKg,
		DistanceM:       req.DistanceM,
		Surface:         req.Surface,
		RepsPerMin:      req.RepsPerMin,
		CycleTimeSec:    req.CycleTimeSec,
		NeckShoulderAwk: req.NeckShoulderAwk,
		RiskScore:       round1(score),
		RiskTier:        tier,
	}
	if err := s.store.AddRecord(rec); err != nil {
		return nil, err
	}
	return &SubmitSurveyResult{Record: rec, Recommendations: Recommend(tier, req.Tool)}, nil
}

// List returns stored records in insertion order, optionally filtered by
// tool and limited to the most recent n entries.
func (s *SurveyService) List(tool Tool, limit int) ([]*SurveyRecord, error) {
	recs, err := s.store.ListRecords()
	if err != nil {
		return nil, err
	}
	if tool != "" {
		filtered := make([]*SurveyRecord, 0, len(recs))
		for _, r := range recs {
			if r.Tool == tool {
				filtered = append(filtered, r)
			}
		}
		recs = filtered
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[len(recs)-limit:]
	}
	return recs, nil
}
