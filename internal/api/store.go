package api

import (
	"sync"

	"github.com/kaimahi/ergosurvey/internal/services"
)

type memoryStore struct {
	mu           sync.RWMutex
	records      []*services.SurveyRecord
	thresholds   services.Thresholds
	usersByEmail map[string]*services.User
	audit        []services.AuditEntry
}

// NewMemoryStore returns an empty in-memory store with default thresholds.
func NewMemoryStore() Store {
	return &memoryStore{
		records:      []*services.SurveyRecord{},
		thresholds:   services.DefaultThresholds(),
		usersByEmail: map[string]*services.User{},
		audit:        []services.AuditEntry{},
	}
}

func (s *memoryStore) AddRecord(r *services.SurveyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

func (s *memoryStore) ListRecords() []*services.SurveyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*services.SurveyRecord(nil), s.records...)
}

func (s *memoryStore) ReplaceRecords(rs []*services.SurveyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]*services.SurveyRecord(nil), rs...)
}

func (s *memoryStore) CountRecords() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *memoryStore) GetThresholds() services.Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholds
}

// SetThresholds replaces the whole value under the lock; readers see either
// the old or the new set, never a partial update.
func (s *memoryStore) SetThresholds(t services.Thresholds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds = t
}

func (s *memoryStore) AddUser(u *services.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByEmail[u.Email] = u
}

func (s *memoryStore) FindUserByEmail(email string) *services.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByEmail[email]
}

func (s *memoryStore) AddAudit(e services.AuditEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, e)
}

func (s *memoryStore) ListAudit() []services.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]services.AuditEntry(nil), s.audit...)
}
