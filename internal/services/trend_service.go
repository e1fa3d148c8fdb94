package services

import "sort"

// TrendStore abstracts read access for trend aggregation.
type TrendStore interface {
	ListRecords() ([]*SurveyRecord, error)
	GetThresholds() (Thresholds, error)
}

type TrendPoint struct {
	Date     string  `json:"date"`
	AvgScore float64 `json:"avg_score"`
	Count    int     `json:"count"`
}

type TrendSummary struct {
	Tool         Tool         `json:"tool,omitempty"`
	TotalRecords int          `json:"total_records"`
	Points       []TrendPoint `json:"points"`
	Tiers        map[Tier]int `json:"tiers"`
}

// TrendService aggregates stored records into trend views. Tier counts are
// re-derived from stored scores against the thresholds current at call time,
// without rewriting the tier snapshots persisted on the records.
type TrendService struct {
	store TrendStore
}

func NewTrendService(store TrendStore) *TrendService {
	return &TrendService{store: store}
}

func (s *TrendService) Summary(tool Tool) (*TrendSummary, error) {
	recs, err := s.store.ListRecords()
	if err != nil {
		return nil, err
	}
	thresholds, err := s.store.GetThresholds()
	if err != nil {
		return nil, err
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	tiers := map[Tier]int{}
	total := 0
	for _, r := range recs {
		if tool != "" && r.Tool != tool {
			continue
		}
		total++
		day := r.Timestamp.Format("2006-01-02")
		sums[day] += r.RiskScore
		counts[day]++
		tiers[ClassifyTier(r.RiskScore, thresholds)]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)
	points := make([]TrendPoint, 0, len(days))
	for _, day := range days {
		points = append(points, TrendPoint{
			Date:     day,
			AvgScore: round1(sums[day] / float64(counts[day])),
			Count:    counts[day],
		})
	}
	return &TrendSummary{Tool: tool, TotalRecords: total, Points: points, Tiers: tiers}, nil
}
