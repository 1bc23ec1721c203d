package domain

import "time"

// BudgetAllocation is a learner's split of one month's income.
type BudgetAllocation struct {
	MonthlyIncome float64 `json:"monthlyIncome"`
	Needs         float64 `json:"needs"`
	Wants         float64 `json:"wants"`
	Savings       float64 `json:"savings"`
}

// BudgetEntry is a saved allocation, possibly a what-if scenario.
type BudgetEntry struct {
	BudgetAllocation
	ID             string    `json:"id"`
	EnrollmentID   string    `json:"enrollmentId"`
	ScenarioName   string    `json:"scenarioName,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	IsHypothetical bool      `json:"isHypothetical"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Standard wealth tracker line items.
const (
	AssetCashSavings     = "cashSavings"
	AssetCheckingAccount = "checkingAccount"
	AssetInvestments     = "investments"
	AssetRetirement      = "retirement"
	AssetRealEstate      = "realEstate"
	AssetOther           = "otherAssets"

	LiabilityCreditCardDebt = "creditCardDebt"
	LiabilityStudentLoans   = "studentLoans"
	LiabilityCarLoan        = "carLoan"
	LiabilityOther          = "otherDebts"
)

var (
	StandardAssets      = []string{AssetCashSavings, AssetCheckingAccount, AssetInvestments, AssetRetirement, AssetRealEstate, AssetOther}
	StandardLiabilities = []string{LiabilityCreditCardDebt, LiabilityStudentLoans, LiabilityCarLoan, LiabilityOther}
)

// WealthSnapshot records assets and liabilities at a point in time.
type WealthSnapshot struct {
	ID               string             `json:"id"`
	EnrollmentID     string             `json:"enrollmentId"`
	RecordDate       time.Time          `json:"recordDate"`
	Assets           map[string]float64 `json:"assets"`
	Liabilities      map[string]float64 `json:"liabilities"`
	TotalAssets      float64            `json:"totalAssets"`
	TotalLiabilities float64            `json:"totalLiabilities"`
	NetWorth         float64            `json:"netWorth"`
	Notes            string             `json:"notes,omitempty"`
	IsHypothetical   bool               `json:"isHypothetical"`
}
