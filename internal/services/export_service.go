package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExportStore abstracts read access for CSV export.
type ExportStore interface {
	ListRecords() ([]*SurveyRecord, error)
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportService struct {
	store ExportStore
}

func NewExportService(store ExportStore) *ExportService {
	return &ExportService{store: store}
}

// ExportCSV renders the full record store as a CSV attachment.
func (s *ExportService) ExportCSV() (*ExportResult, error) {
	recs, err := s.store.ListRecords()
	if err != nil {
		return nil, err
	}
	b, err := ExportRecordsCSV(recs)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    "msd_survey_data.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        b,
	}, nil
}

// ImportStore abstracts the replace-all operation used by import.
type ImportStore interface {
	ReplaceRecords(rs []*SurveyRecord) error
	AddAudit(e AuditEntry)
}

// ImportService replaces the active record store with an uploaded table.
// Import is all-or-nothing: a failed parse leaves the store untouched.
type ImportService struct {
	store ImportStore
	now   func() time.Time
	idGen func() string
}

func NewImportService(store ImportStore) *ImportService {
	return &ImportService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] },
	}
}

func (s *ImportService) ImportCSV(actor string, data []byte) (int, error) {
	recs, err := ParseRecordsCSV(data)
	if err != nil {
		return 0, NewInvalidError("import failed: " + err.Error())
	}
	for _, r := range recs {
		r.ID = s.idGen()
	}
	if err := s.store.ReplaceRecords(recs); err != nil {
		return 0, err
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: actor, Action: "records.import", Note: "replace all"})
	return len(recs), nil
}
