package networth

import (
	"math"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

// Summary describes a list of snapshots, oldest to latest.
type Summary struct {
	TotalEntries       int      `json:"totalEntries"`
	CurrentNetWorth    float64  `json:"currentNetWorth"`
	CurrentAssets      float64  `json:"currentAssets"`
	CurrentLiabilities float64  `json:"currentLiabilities"`
	TotalChange        float64  `json:"totalChange"`
	PercentageChange   *float64 `json:"percentageChange,omitempty"`
	AverageNetWorth    float64  `json:"averageNetWorth"`
}

// Analytics is the long-run view over actual (non-hypothetical) snapshots.
type Analytics struct {
	TotalEntries       int                   `json:"totalEntries"`
	FirstEntry         domain.WealthSnapshot `json:"firstEntry"`
	LatestEntry        domain.WealthSnapshot `json:"latestEntry"`
	TotalGrowth        float64               `json:"totalGrowth"`
	PercentageGrowth   *float64              `json:"percentageGrowth,omitempty"`
	AverageNetWorth    float64               `json:"averageNetWorth"`
	HighestNetWorth    float64               `json:"highestNetWorth"`
	LowestNetWorth     float64               `json:"lowestNetWorth"`
	AssetBreakdown     map[string]float64    `json:"assetBreakdown"`
	LiabilityBreakdown map[string]float64    `json:"liabilityBreakdown"`
}

// Summarize reports on every entry, including hypothetical ones.
func Summarize(entries []domain.WealthSnapshot) Summary {
	if len(entries) == 0 {
		return Summary{}
	}
	sorted := append([]domain.WealthSnapshot(nil), entries...)
	SortByDate(sorted)
	first, latest := sorted[0], sorted[len(sorted)-1]

	return Summary{
		TotalEntries:       len(sorted),
		CurrentNetWorth:    latest.NetWorth,
		CurrentAssets:      latest.TotalAssets,
		CurrentLiabilities: latest.TotalLiabilities,
		TotalChange:        latest.NetWorth - first.NetWorth,
		PercentageChange:   percentOf(latest.NetWorth-first.NetWorth, first.NetWorth),
		AverageNetWorth:    average(sorted),
	}
}

// Analyze ignores hypothetical entries and returns nil when none remain.
func Analyze(entries []domain.WealthSnapshot) *Analytics {
	actual := make([]domain.WealthSnapshot, 0, len(entries))
	for _, e := range entries {
		if !e.IsHypothetical {
			actual = append(actual, e)
		}
	}
	if len(actual) == 0 {
		return nil
	}
	SortByDate(actual)
	first, latest := actual[0], actual[len(actual)-1]

	highest, lowest := math.Inf(-1), math.Inf(1)
	for _, e := range actual {
		highest = math.Max(highest, e.NetWorth)
		lowest = math.Min(lowest, e.NetWorth)
	}

	return &Analytics{
		TotalEntries:       len(actual),
		FirstEntry:         first,
		LatestEntry:        latest,
		TotalGrowth:        latest.NetWorth - first.NetWorth,
		PercentageGrowth:   percentOf(latest.NetWorth-first.NetWorth, first.NetWorth),
		AverageNetWorth:    average(actual),
		HighestNetWorth:    highest,
		LowestNetWorth:     lowest,
		AssetBreakdown:     breakdown(domain.StandardAssets, latest.Assets),
		LiabilityBreakdown: breakdown(domain.StandardLiabilities, latest.Liabilities),
	}
}

func average(entries []domain.WealthSnapshot) float64 {
	sum := 0.0
	for _, e := range entries {
		sum += e.NetWorth
	}
	return sum / float64(len(entries))
}

// breakdown lists every standard item (zero when absent) plus any custom ones.
func breakdown(standard []string, items map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(standard)+len(items))
	for _, name := range standard {
		out[name] = 0
	}
	for name, v := range items {
		out[name] = v
	}
	return out
}
