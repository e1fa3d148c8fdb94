package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ExportRecordsCSV renders records into the fixed-schema CSV table.
// Column order is RecordColumns; absent tool-specific fields render empty.
func ExportRecordsCSV(rs []*SurveyRecord) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write(RecordColumns)
	for _, r := range rs {
		if err := w.Write(recordRow(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func recordRow(r *SurveyRecord) []string {
	return []string{
		r.Timestamp.Format(TimestampLayout),
		string(r.Tool),
		r.TaskName,
		ftoa(r.DurationMin),
		ftoa(r.FrequencyPerHr),
		r.Posture,
		ftoaPtr(r.LoadKg),
		strPtr(r.LiftHeight),
		ftoaPtr(r.PushPullForceKg),
		ftoaPtr(r.DistanceM),
		strPtr(r.Surface),
		ftoaPtr(r.RepsPerMin),
		ftoaPtr(r.CycleTimeSec),
		strPtr(r.NeckShoulderAwk),
		strconv.FormatFloat(r.RiskScore, 'f', 1, 64),
		string(r.RiskTier),
	}
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func ftoaPtr(p *float64) string {
	if p == nil {
		return ""
	}
	return ftoa(*p)
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ParseRecordsCSV parses a CSV table into records. Column order is
// normalized against RecordColumns: missing schema columns fill as absent,
// columns outside the schema are dropped. Any unparseable cell fails the
// whole parse so a bad import never partially lands.
func ParseRecordsCSV(data []byte) ([]*SurveyRecord, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse csv: empty table")
	}

	known := map[string]struct{}{}
	for _, c := range RecordColumns {
		known[c] = struct{}{}
	}
	colIdx := map[string]int{}
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if _, ok := known[name]; ok {
			colIdx[name] = i
		}
	}

	out := make([]*SurveyRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		cell := func(col string) string {
			i, ok := colIdx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		rec := &SurveyRecord{
			Tool:     Tool(cell("tool")),
			TaskName: cell("task_name"),
			Posture:  cell("posture"),
			RiskTier: Tier(cell("risk_tier")),
		}
		line := n + 2 // 1-based, after header
		if v := cell("timestamp"); v != "" {
			ts, err := parseTimestamp(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", line, err)
			}
			rec.Timestamp = ts
		}
		var err error
		if rec.DurationMin, err = parseFloatCell(cell("duration_min"), "duration_min", line); err != nil {
			return nil, err
		}
		if rec.FrequencyPerHr, err = parseFloatCell(cell("frequency_per_hr"), "frequency_per_hr", line); err != nil {
			return nil, err
		}
		if rec.RiskScore, err = parseFloatCell(cell("risk_score"), "risk_score", line); err != nil {
			return nil, err
		}
		if rec.LoadKg, err = parseFloatPtrCell(cell("load_kg"), "load_kg", line); err != nil {
			return nil, err
		}
		if rec.PushPullForceKg, err = parseFloatPtrCell(cell("push_pull_force_kg"), "push_pull_force_kg", line); err != nil {
			return nil, err
		}
		if rec.DistanceM, err = parseFloatPtrCell(cell("distance_m"), "distance_m", line); err != nil {
			return nil, err
		}
		if rec.RepsPerMin, err = parseFloatPtrCell(cell("reps_per_min"), "reps_per_min", line); err != nil {
			return nil, err
		}
		if rec.CycleTimeSec, err = parseFloatPtrCell(cell("cycle_time_sec"), "cycle_time_sec", line); err != nil {
			return nil, err
		}
		rec.LiftHeight = strPtrCell(cell("lift_height"))
		rec.Surface = strPtrCell(cell("surface"))
		rec.NeckShoulderAwk = strPtrCell(cell("neck_shoulder_awk"))
		out = append(out, rec)
	}
	return out, nil
}

func parseTimestamp(v string) (time.Time, error) {
	if ts, err := time.Parse(TimestampLayout, v); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q", v)
	}
	return ts, nil
}

func parseFloatCell(v, col string, line int) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: bad %s %q", line, col, v)
	}
	return f, nil
}

func parseFloatPtrCell(v, col string, line int) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("row %d: bad %s %q", line, col, v)
	}
	return &f, nil
}

func strPtrCell(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
