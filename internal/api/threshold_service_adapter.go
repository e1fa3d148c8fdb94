package api

import "github.com/kaimahi/ergosurvey/internal/services"

type thresholdStoreAdapter struct {
	store Store
}

func newThresholdStoreAdapter(store Store) services.ThresholdStore {
	return &thresholdStoreAdapter{store: store}
}

func (a *thresholdStoreAdapter) GetThresholds() (services.Thresholds, error) {
	return a.store.GetThresholds(), nil
}

func (a *thresholdStoreAdapter) SetThresholds(t services.Thresholds) error {
	a.store.SetThresholds(t)
	return nil
}

func (a *thresholdStoreAdapter) ListRecords() ([]*services.SurveyRecord, error) {
	return a.store.ListRecords(), nil
}

func (a *thresholdStoreAdapter) AddAudit(e services.AuditEntry) {
	a.store.AddAudit(e)
}

var _ services.ThresholdStore = (*thresholdStoreAdapter)(nil)
