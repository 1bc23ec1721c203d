// Package networth computes net worth snapshots and their growth over time.
package networth

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

// Growth compares a snapshot to the one immediately before it.
// PercentageChange is nil when the previous net worth was zero.
type Growth struct {
	NetWorthChange   float64  `json:"netWorthChange"`
	PercentageChange *float64 `json:"percentageChange,omitempty"`
	DaysElapsed      int      `json:"daysElapsed"`
}

// Totals sums line items. Missing items count as zero.
func Totals(assets, liabilities map[string]float64) (totalAssets, totalLiabilities, netWorth float64) {
	for _, v := range assets {
		totalAssets += v
	}
	for _, v := range liabilities {
		totalLiabilities += v
	}
	return totalAssets, totalLiabilities, totalAssets - totalLiabilities
}

// NewSnapshot validates line items and fills in the derived totals.
func NewSnapshot(enrollmentID string, recordDate time.Time, assets, liabilities map[string]float64) (domain.WealthSnapshot, error) {
	for name, v := range assets {
		if !validAmount(v) {
			return domain.WealthSnapshot{}, fmt.Errorf("%w: asset %s=%v", domain.ErrInvalidLineItem, name, v)
		}
	}
	for name, v := range liabilities {
		if !validAmount(v) {
			return domain.WealthSnapshot{}, fmt.Errorf("%w: liability %s=%v", domain.ErrInvalidLineItem, name, v)
		}
	}
	s := domain.WealthSnapshot{
		EnrollmentID: enrollmentID,
		RecordDate:   recordDate,
		Assets:       copyItems(assets),
		Liabilities:  copyItems(liabilities),
	}
	s.TotalAssets, s.TotalLiabilities, s.NetWorth = Totals(s.Assets, s.Liabilities)
	return s, nil
}

// validAmount rejects negative, NaN and infinite line items.
func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// GrowthBetween compares current against previous.
func GrowthBetween(previous, current domain.WealthSnapshot) Growth {
	change := current.NetWorth - previous.NetWorth
	return Growth{
		NetWorthChange:   change,
		PercentageChange: percentOf(change, previous.NetWorth),
		DaysElapsed:      int(math.Floor(current.RecordDate.Sub(previous.RecordDate).Hours() / 24)),
	}
}

// GrowthFromHistory finds the latest snapshot strictly before current and
// compares against it. It returns nil when there is none.
func GrowthFromHistory(history []domain.WealthSnapshot, current domain.WealthSnapshot) *Growth {
	var previous *domain.WealthSnapshot
	for i := range history {
		h := &history[i]
		if h.ID != "" && h.ID == current.ID {
			continue
		}
		if !h.RecordDate.Before(current.RecordDate) {
			continue
		}
		if previous == nil || h.RecordDate.After(previous.RecordDate) {
			previous = h
		}
	}
	if previous == nil {
		return nil
	}
	g := GrowthBetween(*previous, current)
	return &g
}

// SortByDate orders snapshots oldest first.
func SortByDate(entries []domain.WealthSnapshot) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RecordDate.Before(entries[j].RecordDate)
	})
}

func percentOf(change, base float64) *float64 {
	if base == 0 {
		return nil
	}
	p := 100 * change / math.Abs(base)
	return &p
}

func copyItems(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
