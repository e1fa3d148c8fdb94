package services

import "time"

// ThresholdStore abstracts the threshold configuration slot and the records
// needed for re-derivation previews. SetThresholds must swap the whole value
// at once; concurrent readers may observe the old or new set but never a
// partially-updated one.
type ThresholdStore interface {
	GetThresholds() (Thresholds, error)
	SetThresholds(t Thresholds) error
	ListRecords() ([]*SurveyRecord, error)
	AddAudit(e AuditEntry)
}

// TierPreview is one stored record's tier re-derived under candidate
// thresholds. The stored record is untouched.
type TierPreview struct {
	RecordID  string  `json:"record_id"`
	TaskName  string  `json:"task_name"`
	Tool      Tool    `json:"tool"`
	RiskScore float64 `json:"risk_score"`
	Tier      Tier    `json:"tier"`
}

// ThresholdService owns mutation of the shared threshold set. The ordering
// invariant Med <= MedHigh <= High is enforced here, at the mutation
// boundary; the classifier itself never re-validates.
type ThresholdService struct {
	store ThresholdStore
	now   func() time.Time
}

func NewThresholdService(store ThresholdStore) *ThresholdService {
	return &ThresholdService{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (s *ThresholdService) Get() (Thresholds, error) {
	return s.store.GetThresholds()
}

func (s *ThresholdService) Update(actor string, t Thresholds) (Thresholds, error) {
	if !t.Valid() {
		return Thresholds{}, NewInvalidError("thresholds must be in [0,100] with med <= med_high <= high")
	}
	if err := s.store.SetThresholds(t); err != nil {
		return Thresholds{}, err
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: actor, Action: "thresholds.update"})
	return t, nil
}

func (s *ThresholdService) Reset(actor string) (Thresholds, error) {
	t := DefaultThresholds()
	if err := s.store.SetThresholds(t); err != nil {
		return Thresholds{}, err
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: actor, Action: "thresholds.reset"})
	return t, nil
}

// Preview re-runs the classifier over stored scores with candidate
// thresholds. Pure derivation: stored scores and tiers are not modified.
func (s *ThresholdService) Preview(t Thresholds) ([]TierPreview, error) {
	if !t.Valid() {
		return nil, NewInvalidError("thresholds must be in [0,100] with med <= med_high <= high")
	}
	recs, err := s.store.ListRecords()
	if err != nil {
		return nil, err
	}
	out := make([]TierPreview, 0, len(recs))
	for _, r := range recs {
		out = append(out, TierPreview{
			RecordID:  r.ID,
			TaskName:  r.TaskName,
			Tool:      r.Tool,
			RiskScore: r.RiskScore,
			Tier:      ClassifyTier(r.RiskScore, t),
		})
	}
	return out, nil
}
