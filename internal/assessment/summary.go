package assessment

import (
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/glucoscope/glucoscope/internal/store"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

// ChartWindow is the number of most recent records plotted on the dashboard.
const ChartWindow = 10

// Summary is the dashboard view over all records.
type Summary struct {
	Count          int                      `json:"count"`
	AverageRisk    float64                  `json:"averageRisk"`
	LatestCategory scoring.Category         `json:"latestCategory,omitempty"`
	Trend          float64                  `json:"trend"` // latest minus previous risk score
	Categories     map[scoring.Category]int `json:"categories"`
	Chart          []ChartPoint             `json:"chart"` // oldest first
}

// ChartPoint is one record plotted on the dashboard risk chart.
type ChartPoint struct {
	ID       string           `json:"id"`
	Date     string           `json:"date"` // e.g. "Jan 2"
	Risk     int              `json:"risk"` // percent
	Category scoring.Category `json:"category"`
}

// Summarize computes a Summary from records ordered newest first.
func Summarize(recs []store.Record) Summary {
	sum := Summary{
		Count:      len(recs),
		Categories: map[scoring.Category]int{},
		Chart:      []ChartPoint{},
	}
	if len(recs) == 0 {
		return sum
	}

	sum.AverageRisk = lo.SumBy(recs, func(r store.Record) float64 { return r.RiskScore }) / float64(len(recs))
	sum.LatestCategory = recs[0].RiskCategory
	if len(recs) > 1 {
		sum.Trend = recs[0].RiskScore - recs[1].RiskScore
	}
	for cat, n := range lo.CountValuesBy(recs, func(r store.Record) scoring.Category { return r.RiskCategory }) {
		sum.Categories[cat] = n
	}

	window := lo.Reverse(slices.Clone(recs[:min(ChartWindow, len(recs))]))
	sum.Chart = lo.Map(window, func(r store.Record, _ int) ChartPoint {
		return ChartPoint{
			ID:       r.ID,
			Date:     r.CreatedAt.UTC().Format("Jan 2"),
			Risk:     int(math.Round(r.RiskScore * 100)),
			Category: r.RiskCategory,
		}
	})
	return sum
}
