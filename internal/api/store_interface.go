package api

import "github.com/kaimahi/ergosurvey/internal/services"

// Store is the persistence surface the router and services run against.
// Implementations: the in-memory store here and the SQLite store in
// internal/db. Records are append-only except for the wholesale replacement
// performed by import; thresholds are swapped as a whole value.
type Store interface {
	AddRecord(r *services.SurveyRecord)
	ListRecords() []*services.SurveyRecord
	ReplaceRecords(rs []*services.SurveyRecord)
	CountRecords() int

	GetThresholds() services.Thresholds
	SetThresholds(t services.Thresholds)

	AddUser(u *services.User)
	FindUserByEmail(email string) *services.User

	AddAudit(e services.AuditEntry)
	ListAudit() []services.AuditEntry
}

var _ Store = (*memoryStore)(nil)
