package readiness

import (
	"sort"

	"github.com/bryanwahyu/esg-responder/internal/domain/esg"
)

// ConfidenceStats counts records per confidence bucket.
type ConfidenceStats struct {
	Total           int `json:"total"`
	High            int `json:"high"`
	Medium          int `json:"medium"`
	Low             int `json:"low"`
	None            int `json:"none"`
	Complete        int `json:"complete"`
	SafeToShare     int `json:"safe_to_share"`
	SafePercent     int `json:"safe_percent"`
	CompletePercent int `json:"complete_percent"`
}

// CategoryStats is ConfidenceStats for one category.
type CategoryStats struct {
	Category string `json:"category"`
	ConfidenceStats
}

// ConfidenceSummary is the dashboard view over all confidence records.
type ConfidenceSummary struct {
	Overall    ConfidenceStats `json:"overall"`
	Categories []CategoryStats `json:"categories"`
}

// Aggregate counts records by confidence bucket. Zero records yield all zeros.
func Aggregate(records []esg.ConfidenceRecord) ConfidenceStats {
	var s ConfidenceStats
	for _, r := range records {
		s.add(r)
	}
	s.finish()
	return s
}

// Summarize aggregates overall and per category, categories sorted by name.
func Summarize(records []esg.ConfidenceRecord) ConfidenceSummary {
	byCat := map[string]*ConfidenceStats{}
	var overall ConfidenceStats
	for _, r := range records {
		overall.add(r)
		cs, ok := byCat[r.Category]
		if !ok {
			cs = &ConfidenceStats{}
			byCat[r.Category] = cs
		}
		cs.add(r)
	}
	overall.finish()

	out := ConfidenceSummary{Overall: overall, Categories: make([]CategoryStats, 0, len(byCat))}
	for cat, cs := range byCat {
		cs.finish()
		out.Categories = append(out.Categories, CategoryStats{Category: cat, ConfidenceStats: *cs})
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		return out.Categories[i].Category < out.Categories[j].Category
	})
	return out
}

func (s *ConfidenceStats) add(r esg.ConfidenceRecord) {
	s.Total++
	switch NormalizeConfidence(r.Confidence) {
	case esg.ConfidenceHigh:
		s.High++
	case esg.ConfidenceMedium:
		s.Medium++
	case esg.ConfidenceLow:
		s.Low++
	default:
		s.None++
	}
	if NormalizeStatus(r.Status) == esg.StatusComplete {
		s.Complete++
	}
	if SafeToShare(r) {
		s.SafeToShare++
	}
}

func (s *ConfidenceStats) finish() {
	s.SafePercent = percent(s.SafeToShare, s.Total)
	s.CompletePercent = percent(s.Complete, s.Total)
}

// percent rounds part/total to the nearest integer; 0 when total is 0.
func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*100 + total/2) / total
}
