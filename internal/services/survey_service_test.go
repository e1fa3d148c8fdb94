package services

import (
	"strings"
	"testing"
	"time"
)

type surveyStubStore struct {
	records    []*SurveyRecord
	thresholds Thresholds
	addErr     error
}

func newSurveyStubStore() *surveyStubStore {
	return &surveyStubStore{thresholds: DefaultThresholds()}
}

func (s *surveyStubStore) AddRecord(r *SurveyRecord) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.records = append(s.records, r)
	return nil
}

func (s *surveyStubStore) ListRecords() ([]*SurveyRecord, error) {
	return append([]*SurveyRecord(nil), s.records...), nil
}

func (s *surveyStubStore) GetThresholds() (Thresholds, error) {
	return s.thresholds, nil
}

func newTestSurveyService(store *surveyStubStore) *SurveyService {
	svc := NewSurveyService(store)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	n := 0
	svc.idGen = func() string { n++; return strings.Repeat("a", 11) + string(rune('0'+n)) }
	return svc
}

func TestSubmitLifting(t *testing.T) {
	store := newSurveyStubStore()
	svc := newTestSurveyService(store)

	res, err := svc.Submit(&SubmitSurveyRequest{
		Tool: ToolLifting, TaskName: "Lift cartons", DurationMin: 10, FrequencyPerHr: 30,
		Posture: "bending", LoadKg: f(12), LiftHeight: sp("knee"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	rec := res.Record
	if rec.RiskScore != 57.9 {
		t.Fatalf("risk score: got %v, want 57.9", rec.RiskScore)
	}
	if rec.RiskTier != TierMedHigh {
		t.Fatalf("tier: got %v", rec.RiskTier)
	}
	if len(store.records) != 1 || store.records[0] != rec {
		t.Fatalf("record not persisted")
	}
	if rec.Timestamp.IsZero() || rec.ID == "" {
		t.Fatalf("id/timestamp not assigned: %+v", rec)
	}
	if len(res.Recommendations) != 4 || !strings.Contains(res.Recommendations[0], "engineering controls") {
		t.Fatalf("recommendations: %v", res.Recommendations)
	}
}

func TestSubmitPushPullAndRepetitive(t *testing.T) {
	store := newSurveyStubStore()
	svc := newTestSurveyService(store)

	res, err := svc.Submit(&SubmitSurveyRequest{
		Tool: ToolPushPull, TaskName: "Push trolley", DurationMin: 8, FrequencyPerHr: 20,
		Posture: "neutral", PushPullForceKg: f(18), DistanceM: f(25), Surface: sp("smooth"),
	})
	if err != nil {
		t.Fatalf("submit push/pull: %v", err)
	}
	if res.Record.RiskScore != 56.9 || res.Record.RiskTier != TierMedHigh {
		t.Fatalf("push/pull: got %v/%v", res.Record.RiskScore, res.Record.RiskTier)
	}

	res, err = svc.Submit(&SubmitSurveyRequest{
		Tool: ToolRepetitive, TaskName: "Soldering", DurationMin: 15, FrequencyPerHr: 40,
		Posture: "reaching", RepsPerMin: f(28), CycleTimeSec: f(12), NeckShoulderAwk: sp("severe"),
	})
	if err != nil {
		t.Fatalf("submit repetitive: %v", err)
	}
	if res.Record.RiskScore != 76.5 || res.Record.RiskTier != TierHigh {
		t.Fatalf("repetitive: got %v/%v", res.Record.RiskScore, res.Record.RiskTier)
	}
}

func TestSubmitDefaultsAndValidation(t *testing.T) {
	store := newSurveyStubStore()
	svc := newTestSurveyService(store)

	res, err := svc.Submit(&SubmitSurveyRequest{Tool: ToolLifting, TaskName: "   "})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Record.TaskName != "(untitled task)" {
		t.Fatalf("task name placeholder: %q", res.Record.TaskName)
	}
	if res.Record.RiskScore != 5 {
		t.Fatalf("zero inputs should float at the clamp floor, got %v", res.Record.RiskScore)
	}

	if _, err := svc.Submit(&SubmitSurveyRequest{Tool: "forklift"}); err == nil {
		t.Fatalf("unknown tool should fail")
	} else if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("want invalid error, got %v", err)
	}
	if _, err := svc.Submit(nil); err == nil {
		t.Fatalf("nil request should fail")
	}
}

func TestSubmitUsesCurrentThresholds(t *testing.T) {
	store := newSurveyStubStore()
	store.thresholds = Thresholds{High: 55, MedHigh: 40, Med: 20}
	svc := newTestSurveyService(store)

	res, err := svc.Submit(&SubmitSurveyRequest{
		Tool: ToolLifting, FrequencyPerHr: 30, Posture: "bending",
		LoadKg: f(12), LiftHeight: sp("knee"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Record.RiskTier != TierHigh {
		t.Fatalf("57.9 against high=55 should be High, got %v", res.Record.RiskTier)
	}
}

func TestListFilterAndLimit(t *testing.T) {
	store := newSurveyStubStore()
	svc := newTestSurveyService(store)
	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(&SubmitSurveyRequest{Tool: ToolLifting, LoadKg: f(10)}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if _, err := svc.Submit(&SubmitSurveyRequest{Tool: ToolPushPull, PushPullForceKg: f(10)}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	all, err := svc.List("", 0)
	if err != nil || len(all) != 4 {
		t.Fatalf("list all: %v %d", err, len(all))
	}
	lifting, err := svc.List(ToolLifting, 0)
	if err != nil || len(lifting) != 3 {
		t.Fatalf("list lifting: %v %d", err, len(lifting))
	}
	limited, err := svc.List("", 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("list limited: %v %d", err, len(limited))
	}
	if limited[1].Tool != ToolPushPull {
		t.Fatalf("limit should keep the most recent records")
	}
}
