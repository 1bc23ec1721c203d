// Package budget checks a learner's monthly allocation against the 50/20/30 rule.
package budget

import (
	"fmt"
	"math"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

// Tolerance is the absolute slack allowed between the allocation total and income.
const Tolerance = 0.01

const (
	NeedsShare   = 0.50
	SavingsShare = 0.20
	WantsShare   = 0.30
)

// MismatchError reports an allocation that does not add up to income.
type MismatchError struct {
	Total  float64 `json:"totalAllocated"`
	Income float64 `json:"monthlyIncome"`
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: allocated %.2f of %.2f", domain.ErrAllocationMismatch, e.Total, e.Income)
}

func (e *MismatchError) Unwrap() error { return domain.ErrAllocationMismatch }

// Split is an amount per budget bucket.
type Split struct {
	Needs   float64 `json:"needs"`
	Wants   float64 `json:"wants"`
	Savings float64 `json:"savings"`
}

// Recommendation is the 50/20/30 split of an income.
type Recommendation struct {
	MonthlyIncome float64 `json:"monthlyIncome"`
	Recommended   Split   `json:"recommended"`
	Percentages   Split   `json:"percentages"`
}

// FeedbackType classifies a feedback item.
type FeedbackType string

const (
	FeedbackSuccess FeedbackType = "success"
	FeedbackWarning FeedbackType = "warning"
	FeedbackInfo    FeedbackType = "info"
)

type Feedback struct {
	Type     FeedbackType `json:"type"`
	Category string       `json:"category,omitempty"`
	Message  string       `json:"message"`
}

// Evaluation bundles everything derived from a valid allocation.
type Evaluation struct {
	Allocation  domain.BudgetAllocation `json:"allocation"`
	Recommended Split                   `json:"recommended"`
	Variance    Split                   `json:"variance"`
	Feedback    []Feedback              `json:"feedback"`
}

// Validate accepts an allocation whose buckets sum to income within Tolerance.
// NaN and infinite amounts are rejected.
func Validate(a domain.BudgetAllocation) error {
	if !finite(a.MonthlyIncome) || a.MonthlyIncome <= 0 {
		return domain.ErrInvalidIncome
	}
	for _, v := range []float64{a.Needs, a.Wants, a.Savings} {
		if !finite(v) || v < 0 {
			return domain.ErrInvalidAllocation
		}
	}
	total := a.Needs + a.Wants + a.Savings
	if !(math.Abs(total-a.MonthlyIncome) <= Tolerance) {
		return &MismatchError{Total: total, Income: a.MonthlyIncome}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Recommend computes the canonical 50/20/30 split.
func Recommend(income float64) Split {
	return Split{
		Needs:   income * NeedsShare,
		Savings: income * SavingsShare,
		Wants:   income * WantsShare,
	}
}

// Calculate is Recommend for a validated income, with the fixed percentages.
func Calculate(income float64) (Recommendation, error) {
	if !finite(income) || income <= 0 {
		return Recommendation{}, domain.ErrInvalidIncome
	}
	return Recommendation{
		MonthlyIncome: income,
		Recommended:   Recommend(income),
		Percentages:   Split{Needs: NeedsShare * 100, Wants: WantsShare * 100, Savings: SavingsShare * 100},
	}, nil
}

// Variance is actual minus recommended for each bucket.
func Variance(a domain.BudgetAllocation) Split {
	rec := Recommend(a.MonthlyIncome)
	return Split{
		Needs:   a.Needs - rec.Needs,
		Wants:   a.Wants - rec.Wants,
		Savings: a.Savings - rec.Savings,
	}
}

// Evaluate validates the allocation and derives recommendation, variance and feedback.
func Evaluate(a domain.BudgetAllocation) (Evaluation, error) {
	if err := Validate(a); err != nil {
		return Evaluation{}, err
	}
	variance := Variance(a)
	return Evaluation{
		Allocation:  a,
		Recommended: Recommend(a.MonthlyIncome),
		Variance:    variance,
		Feedback:    GenerateFeedback(variance, a.MonthlyIncome),
	}, nil
}
