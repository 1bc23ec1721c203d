package networth

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 9, d, 0, 0, 0, 0, time.UTC)
}

func mustSnapshot(t *testing.T, date time.Time, assets, liabilities map[string]float64) domain.WealthSnapshot {
	t.Helper()
	s, err := NewSnapshot("enr-1", date, assets, liabilities)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return s
}

func TestNewSnapshotTotals(t *testing.T) {
	s := mustSnapshot(t, day(1),
		map[string]float64{domain.AssetCashSavings: 500, domain.AssetInvestments: 1500},
		map[string]float64{domain.LiabilityStudentLoans: 3000},
	)
	if s.TotalAssets != 2000 || s.TotalLiabilities != 3000 || s.NetWorth != -1000 {
		t.Fatalf("unexpected totals %+v", s)
	}

	empty := mustSnapshot(t, day(1), nil, nil)
	if empty.NetWorth != 0 || empty.Assets == nil {
		t.Fatalf("expected zero snapshot with empty maps, got %+v", empty)
	}

	bad := []struct {
		assets, liabilities map[string]float64
	}{
		{assets: map[string]float64{"cash": -1}},
		{assets: map[string]float64{"cash": math.NaN()}},
		{liabilities: map[string]float64{"carLoan": math.Inf(1)}},
	}
	for _, b := range bad {
		if _, err := NewSnapshot("enr-1", day(1), b.assets, b.liabilities); !errors.Is(err, domain.ErrInvalidLineItem) {
			t.Fatalf("%v / %v: expected invalid line item, got %v", b.assets, b.liabilities, err)
		}
	}
}

func TestGrowthFromHistory(t *testing.T) {
	first := mustSnapshot(t, day(1), map[string]float64{"cash": 1000}, nil)
	first.ID = "s1"
	second := mustSnapshot(t, day(11), map[string]float64{"cash": 1500}, nil)
	second.ID = "s2"

	if g := GrowthFromHistory(nil, first); g != nil {
		t.Fatalf("expected no growth for first snapshot, got %+v", g)
	}

	current := mustSnapshot(t, day(21).Add(23*time.Hour), map[string]float64{"cash": 1200}, nil)
	g := GrowthFromHistory([]domain.WealthSnapshot{second, first}, current)
	if g == nil {
		t.Fatalf("expected growth")
	}
	if g.NetWorthChange != -300 || g.DaysElapsed != 10 {
		t.Fatalf("unexpected growth %+v", g)
	}
	if g.PercentageChange == nil || *g.PercentageChange != -20 {
		t.Fatalf("expected -20%%, got %v", g.PercentageChange)
	}

	// Snapshots on or after the current date are not predecessors.
	if g := GrowthFromHistory([]domain.WealthSnapshot{second}, first); g != nil {
		t.Fatalf("expected no growth against a later snapshot, got %+v", g)
	}
}

func TestGrowthWithZeroPreviousNetWorth(t *testing.T) {
	prev := mustSnapshot(t, day(1), map[string]float64{"cash": 100}, map[string]float64{"card": 100})
	cur := mustSnapshot(t, day(2), map[string]float64{"cash": 300}, nil)

	g := GrowthBetween(prev, cur)
	if g.NetWorthChange != 300 || g.PercentageChange != nil {
		t.Fatalf("expected undefined percentage, got %+v", g)
	}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "percentageChange") {
		t.Fatalf("percentage must be absent, got %s", data)
	}
}

func TestGrowthAgainstNegativeNetWorthUsesMagnitude(t *testing.T) {
	prev := mustSnapshot(t, day(1), nil, map[string]float64{"loan": 1000})
	cur := mustSnapshot(t, day(2), nil, map[string]float64{"loan": 500})
	g := GrowthBetween(prev, cur)
	if g.PercentageChange == nil || *g.PercentageChange != 50 {
		t.Fatalf("expected +50%%, got %v", g.PercentageChange)
	}
}

func TestSummarizeAndAnalyze(t *testing.T) {
	a := mustSnapshot(t, day(1), map[string]float64{domain.AssetCashSavings: 1000}, nil)
	b := mustSnapshot(t, day(5), map[string]float64{domain.AssetCashSavings: 3750}, nil)
	b.IsHypothetical = true
	c := mustSnapshot(t, day(9), map[string]float64{domain.AssetCashSavings: 1500}, map[string]float64{domain.LiabilityCarLoan: 250})

	summary := Summarize([]domain.WealthSnapshot{c, a, b})
	if summary.TotalEntries != 3 || summary.CurrentNetWorth != 1250 || summary.TotalChange != 250 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.PercentageChange == nil || *summary.PercentageChange != 25 {
		t.Fatalf("expected 25%%, got %v", summary.PercentageChange)
	}
	if summary.AverageNetWorth != 2000 {
		t.Fatalf("expected average 2000, got %v", summary.AverageNetWorth)
	}

	analytics := Analyze([]domain.WealthSnapshot{c, a, b})
	if analytics == nil {
		t.Fatalf("expected analytics")
	}
	if analytics.TotalEntries != 2 || analytics.HighestNetWorth != 1250 || analytics.LowestNetWorth != 1000 {
		t.Fatalf("hypothetical entries must be ignored, got %+v", analytics)
	}
	if analytics.AssetBreakdown[domain.AssetRetirement] != 0 || analytics.LiabilityBreakdown[domain.LiabilityCarLoan] != 250 {
		t.Fatalf("unexpected breakdown %+v / %+v", analytics.AssetBreakdown, analytics.LiabilityBreakdown)
	}

	if Analyze([]domain.WealthSnapshot{b}) != nil {
		t.Fatalf("expected nil analytics without real entries")
	}
	if s := Summarize(nil); s.TotalEntries != 0 || s.PercentageChange != nil {
		t.Fatalf("unexpected empty summary %+v", s)
	}
}
