package api

import "github.com/kaimahi/ergosurvey/internal/services"

type exportStoreAdapter struct {
	store Store
}

func newExportStoreAdapter(store Store) services.ExportStore {
	return &exportStoreAdapter{store: store}
}

func (a *exportStoreAdapter) ListRecords() ([]*services.SurveyRecord, error) {
	return a.store.ListRecords(), nil
}

var _ services.ExportStore = (*exportStoreAdapter)(nil)

type importStoreAdapter struct {
	store Store
}

func newImportStoreAdapter(store Store) services.ImportStore {
	return &importStoreAdapter{store: store}
}

func (a *importStoreAdapter) ReplaceRecords(rs []*services.SurveyRecord) error {
	a.store.ReplaceRecords(rs)
	return nil
}

func (a *importStoreAdapter) AddAudit(e services.AuditEntry) {
	a.store.AddAudit(e)
}

var _ services.ImportStore = (*importStoreAdapter)(nil)
