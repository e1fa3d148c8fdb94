package api

import "github.com/kaimahi/ergosurvey/internal/services"

type surveyStoreAdapter struct {
	store Store
}

func newSurveyStoreAdapter(store Store) services.SurveyStore {
	return &surveyStoreAdapter{store: store}
}

func (a *surveyStoreAdapter) AddRecord(r *services.SurveyRecord) error {
	a.store.AddRecord(r)
	return nil
}

func (a *surveyStoreAdapter) ListRecords() ([]*services.SurveyRecord, error) {
	return a.store.ListRecords(), nil
}

func (a *surveyStoreAdapter) GetThresholds() (services.Thresholds, error) {
	return a.store.GetThresholds(), nil
}

var _ services.SurveyStore = (*surveyStoreAdapter)(nil)
