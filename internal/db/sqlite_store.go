package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kaimahi/ergosurvey/internal/api"
	"github.com/kaimahi/ergosurvey/internal/services"
)

// SQLiteStore is the durable api.Store. Store methods do not return errors;
// failures are logged and surface as empty reads, matching the in-memory
// store's contract.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	s := &SQLiteStore{db: db}
	if err := s.ensureThresholds(); err != nil {
		return nil, err
	}
	return s, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

var _ api.Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) logErr(prefix string, err error) {
	if err != nil {
		log.Printf("sqlite store: %s: %v", prefix, err)
	}
}

func (s *SQLiteStore) ensureThresholds() error {
	t := services.DefaultThresholds()
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO thresholds (id, high, med_high, med) VALUES (1, ?, ?, ?)`,
		t.High, t.MedHigh, t.Med,
	)
	if err != nil {
		return fmt.Errorf("seed thresholds: %w", err)
	}
	return nil
}

const timeStoreLayout = time.RFC3339Nano

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func toNullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func fromNullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

func toNullStringPtr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

const recordCols = `id, ts, tool, task_name, duration_min, frequency_per_hr, posture,
load_kg, lift_height, push_pull_force_kg, distance_m, surface,
reps_per_min, cycle_time_sec, neck_shoulder_awk, risk_score, risk_tier`

func (s *SQLiteStore) insertRecordTx(tx *sql.Tx, r *services.SurveyRecord) error {
	_, err := tx.Exec(
		`INSERT INTO survey_records (`+recordCols+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Timestamp.Format(timeStoreLayout),
		string(r.Tool),
		r.TaskName,
		r.DurationMin,
		r.FrequencyPerHr,
		r.Posture,
		toNullFloat(r.LoadKg),
		toNullStringPtr(r.LiftHeight),
		toNullFloat(r.PushPullForceKg),
		toNullFloat(r.DistanceM),
		toNullStringPtr(r.Surface),
		toNullFloat(r.RepsPerMin),
		toNullFloat(r.CycleTimeSec),
		toNullStringPtr(r.NeckShoulderAwk),
		r.RiskScore,
		string(r.RiskTier),
	)
	return err
}

func (s *SQLiteStore) AddRecord(r *services.SurveyRecord) {
	tx, err := s.db.Begin()
	if err != nil {
		s.logErr("add record: begin", err)
		return
	}
	if err := s.insertRecordTx(tx, r); err != nil {
		s.logErr("add record", err)
		_ = tx.Rollback()
		return
	}
	s.logErr("add record: commit", tx.Commit())
}

func (s *SQLiteStore) ListRecords() []*services.SurveyRecord {
	rows, err := s.db.Query(`SELECT ` + recordCols + ` FROM survey_records ORDER BY rowid`)
	if err != nil {
		s.logErr("list records", err)
		return nil
	}
	defer rows.Close()
	var out []*services.SurveyRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			s.logErr("scan record", err)
			return nil
		}
		out = append(out, r)
	}
	s.logErr("list records: rows", rows.Err())
	return out
}

func scanRecord(rows *sql.Rows) (*services.SurveyRecord, error) {
	var (
		r          services.SurveyRecord
		ts         string
		tool, tier string
		loadKg     sql.NullFloat64
		liftHeight sql.NullString
		forceKg    sql.NullFloat64
		distanceM  sql.NullFloat64
		surface    sql.NullString
		repsPerMin sql.NullFloat64
		cycleSec   sql.NullFloat64
		neck       sql.NullString
	)
	if err := rows.Scan(
		&r.ID, &ts, &tool, &r.TaskName, &r.DurationMin, &r.FrequencyPerHr, &r.Posture,
		&loadKg, &liftHeight, &forceKg, &distanceM, &surface,
		&repsPerMin, &cycleSec, &neck, &r.RiskScore, &tier,
	); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(timeStoreLayout, ts)
	if err != nil {
		return nil, fmt.Errorf("parse record timestamp %q: %w", ts, err)
	}
	r.Timestamp = parsed
	r.Tool = services.Tool(tool)
	r.RiskTier = services.Tier(tier)
	r.LoadKg = fromNullFloat(loadKg)
	r.LiftHeight = fromNullString(liftHeight)
	r.PushPullForceKg = fromNullFloat(forceKg)
	r.DistanceM = fromNullFloat(distanceM)
	r.Surface = fromNullString(surface)
	r.RepsPerMin = fromNullFloat(repsPerMin)
	r.CycleTimeSec = fromNullFloat(cycleSec)
	r.NeckShoulderAwk = fromNullString(neck)
	return &r, nil
}

// ReplaceRecords swaps the whole record set in one transaction so a reader
// never sees a half-imported table.
func (s *SQLiteStore) ReplaceRecords(rs []*services.SurveyRecord) {
	tx, err := s.db.Begin()
	if err != nil {
		s.logErr("replace records: begin", err)
		return
	}
	if _, err := tx.Exec(`DELETE FROM survey_records`); err != nil {
		s.logErr("replace records: clear", err)
		_ = tx.Rollback()
		return
	}
	for _, r := range rs {
		if err := s.insertRecordTx(tx, r); err != nil {
			s.logErr("replace records: insert", err)
			_ = tx.Rollback()
			return
		}
	}
	s.logErr("replace records: commit", tx.Commit())
}

func (s *SQLiteStore) CountRecords() int {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM survey_records`).Scan(&n); err != nil {
		s.logErr("count records", err)
		return 0
	}
	return n
}

func (s *SQLiteStore) GetThresholds() services.Thresholds {
	var t services.Thresholds
	err := s.db.QueryRow(`SELECT high, med_high, med FROM thresholds WHERE id = 1`).
		Scan(&t.High, &t.MedHigh, &t.Med)
	if err != nil {
		s.logErr("get thresholds", err)
		return services.DefaultThresholds()
	}
	return t
}

// SetThresholds updates all three cutoffs in a single statement; a
// concurrent reader sees the old or the new row, never a mix.
func (s *SQLiteStore) SetThresholds(t services.Thresholds) {
	_, err := s.db.Exec(
		`UPDATE thresholds SET high = ?, med_high = ?, med = ? WHERE id = 1`,
		t.High, t.MedHigh, t.Med,
	)
	s.logErr("set thresholds", err)
}

func (s *SQLiteStore) AddUser(u *services.User) {
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, pass_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PassHash, u.CreatedAt.Format(timeStoreLayout),
	)
	s.logErr("add user", err)
}

func (s *SQLiteStore) FindUserByEmail(email string) *services.User {
	var (
		u  services.User
		at string
	)
	err := s.db.QueryRow(
		`SELECT id, email, pass_hash, created_at FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.PassHash, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logErr("find user", err)
		return nil
	}
	if ts, err := time.Parse(timeStoreLayout, at); err == nil {
		u.CreatedAt = ts
	}
	return &u
}

func (s *SQLiteStore) AddAudit(e services.AuditEntry) {
	_, err := s.db.Exec(
		`INSERT INTO audit_log (ts, actor, action, target, note) VALUES (?, ?, ?, ?, ?)`,
		e.Time.Format(timeStoreLayout), e.Actor, e.Action, e.Target, e.Note,
	)
	s.logErr("add audit", err)
}

func (s *SQLiteStore) ListAudit() []services.AuditEntry {
	rows, err := s.db.Query(`SELECT ts, actor, action, target, note FROM audit_log ORDER BY rowid`)
	if err != nil {
		s.logErr("list audit", err)
		return nil
	}
	defer rows.Close()
	var out []services.AuditEntry
	for rows.Next() {
		var (
			e  services.AuditEntry
			ts string
		)
		if err := rows.Scan(&ts, &e.Actor, &e.Action, &e.Target, &e.Note); err != nil {
			s.logErr("scan audit", err)
			return nil
		}
		if parsed, err := time.Parse(timeStoreLayout, ts); err == nil {
			e.Time = parsed
		}
		out = append(out, e)
	}
	s.logErr("list audit: rows", rows.Err())
	return out
}
