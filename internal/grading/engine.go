// Package grading combines scored work into category percentages, a weighted
// overall grade and a letter grade. Every function is a pure computation.
package grading

import (
	"fmt"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

// CategoryResult is the aggregate of one category's scored items.
type CategoryResult struct {
	Category   domain.Category `json:"category"`
	Earned     float64         `json:"earned"`
	Possible   float64         `json:"possible"`
	Percentage float64         `json:"percentage"`
	Weight     float64         `json:"weight"`
	Items      int             `json:"items"`
}

// Report is the outcome of grading one enrollment.
type Report struct {
	Categories    []CategoryResult `json:"categories"`
	WeightedGrade float64          `json:"weightedGrade"`
	LetterGrade   string           `json:"letterGrade"`
}

// Compute aggregates items per category and combines category percentages
// with weights. Only categories with possible points contribute to the
// weighted grade, and the result is normalized by their total weight.
func Compute(items []domain.ScoredItem, weights domain.CategoryWeights) (Report, error) {
	type totals struct {
		earned, possible float64
		count            int
	}
	byCategory := make(map[domain.Category]*totals, len(domain.Categories))
	for _, item := range items {
		if !item.Category.Valid() {
			return Report{}, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, item.Category)
		}
		if item.EarnedPoints < 0 || item.PossiblePoints < 0 {
			return Report{}, fmt.Errorf("%w: %s item has negative points (%v/%v)",
				domain.ErrInvalidScore, item.Category, item.EarnedPoints, item.PossiblePoints)
		}
		t, ok := byCategory[item.Category]
		if !ok {
			t = &totals{}
			byCategory[item.Category] = t
		}
		t.earned += item.EarnedPoints
		t.possible += item.PossiblePoints
		t.count++
	}

	report := Report{Categories: make([]CategoryResult, 0, len(byCategory))}
	var weighted, totalWeight float64
	for _, c := range domain.Categories {
		t, ok := byCategory[c]
		if !ok {
			continue
		}
		res := CategoryResult{
			Category: c,
			Earned:   t.earned,
			Possible: t.possible,
			Weight:   weights.For(c),
			Items:    t.count,
		}
		if t.possible > 0 {
			res.Percentage = 100 * t.earned / t.possible
			weighted += res.Percentage * res.Weight
			totalWeight += res.Weight
		}
		report.Categories = append(report.Categories, res)
	}

	if totalWeight > 0 {
		report.WeightedGrade = weighted / totalWeight
	}
	report.LetterGrade = LetterGrade(report.WeightedGrade)
	return report, nil
}

// ClassAverage is the mean weighted grade across reports; 0 for an empty class.
func ClassAverage(reports []Report) float64 {
	if len(reports) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range reports {
		sum += r.WeightedGrade
	}
	return sum / float64(len(reports))
}
