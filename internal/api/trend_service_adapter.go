package api

import "github.com/kaimahi/ergosurvey/internal/services"

type trendStoreAdapter struct {
	store Store
}

func newTrendStoreAdapter(store Store) services.TrendStore {
	return &trendStoreAdapter{store: store}
}

func (a *trendStoreAdapter) ListRecords() ([]*services.SurveyRecord, error) {
	return a.store.ListRecords(), nil
}

func (a *trendStoreAdapter) GetThresholds() (services.Thresholds, error) {
	return a.store.GetThresholds(), nil
}

var _ services.TrendStore = (*trendStoreAdapter)(nil)
