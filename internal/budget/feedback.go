package budget

import (
	"fmt"
	"math"
)

const (
	closeEnoughPct    = 2
	savingsDeviatePct = 5
	overspendingPct   = 10
)

// GenerateFeedback turns a variance into qualitative advice. Variances are
// expressed as a share of income in percentage points.
func GenerateFeedback(variance Split, income float64) []Feedback {
	feedback := []Feedback{}
	if income <= 0 {
		return feedback
	}
	needsPct := variance.Needs / income * 100
	wantsPct := variance.Wants / income * 100
	savingsPct := variance.Savings / income * 100

	if math.Abs(needsPct) < closeEnoughPct && math.Abs(wantsPct) < closeEnoughPct && math.Abs(savingsPct) < closeEnoughPct {
		return append(feedback, Feedback{
			Type:    FeedbackSuccess,
			Message: "Excellent! Your budget follows the 50/20/30 rule closely.",
		})
	}

	switch {
	case savingsPct < -savingsDeviatePct:
		feedback = append(feedback, Feedback{
			Type:     FeedbackWarning,
			Category: "savings",
			Message:  fmt.Sprintf("You're saving %.1f%% less than recommended. Consider increasing your savings to 20%% of income.", math.Abs(savingsPct)),
		})
	case savingsPct > savingsDeviatePct:
		feedback = append(feedback, Feedback{
			Type:     FeedbackSuccess,
			Category: "savings",
			Message:  fmt.Sprintf("Great job! You're saving %.1f%% more than the recommended 20%%.", savingsPct),
		})
	}

	if needsPct > overspendingPct {
		feedback = append(feedback, Feedback{
			Type:     FeedbackWarning,
			Category: "needs",
			Message:  fmt.Sprintf("Your needs are %.1f%% higher than recommended. Look for ways to reduce essential expenses.", needsPct),
		})
	}

	if wantsPct > overspendingPct {
		feedback = append(feedback, Feedback{
			Type:     FeedbackInfo,
			Category: "wants",
			Message:  fmt.Sprintf("Your wants are %.1f%% higher than recommended. Consider cutting back on discretionary spending.", wantsPct),
		})
	}
	return feedback
}
