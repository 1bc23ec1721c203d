package sqlstore

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

type classModel struct {
	bun.BaseModel `bun:"table:classes"`

	ID                  string  `bun:"id,pk"`
	Name                string  `bun:"name,notnull"`
	WeightProjects      float64 `bun:"weight_projects,notnull"`
	WeightQuiz          float64 `bun:"weight_quiz,notnull"`
	WeightParticipation float64 `bun:"weight_participation,notnull"`
	WeightRealWorld     float64 `bun:"weight_real_world,notnull"`
}

func toClassModel(c domain.Class) *classModel {
	return &classModel{
		ID:                  c.ID,
		Name:                c.Name,
		WeightProjects:      c.Weights.Projects,
		WeightQuiz:          c.Weights.Quiz,
		WeightParticipation: c.Weights.Participation,
		WeightRealWorld:     c.Weights.RealWorld,
	}
}

func (m *classModel) toDomain() domain.Class {
	return domain.Class{
		ID:   m.ID,
		Name: m.Name,
		Weights: domain.CategoryWeights{
			Projects:      m.WeightProjects,
			Quiz:          m.WeightQuiz,
			Participation: m.WeightParticipation,
			RealWorld:     m.WeightRealWorld,
		},
	}
}

type enrollmentModel struct {
	bun.BaseModel `bun:"table:enrollments"`

	ID        string `bun:"id,pk"`
	StudentID string `bun:"student_id,notnull"`
	ClassID   string `bun:"class_id,notnull"`
}

type gradeModel struct {
	bun.BaseModel `bun:"table:grades"`

	ID             string    `bun:"id,pk"`
	EnrollmentID   string    `bun:"enrollment_id,notnull"`
	Category       string    `bun:"category,notnull"`
	EarnedPoints   float64   `bun:"earned_points,notnull"`
	PossiblePoints float64   `bun:"possible_points,notnull"`
	Source         string    `bun:"source"`
	RecordedAt     time.Time `bun:"recorded_at,notnull"`
}

func toGradeModel(item domain.ScoredItem) *gradeModel {
	return &gradeModel{
		ID:             item.ID,
		EnrollmentID:   item.EnrollmentID,
		Category:       string(item.Category),
		EarnedPoints:   item.EarnedPoints,
		PossiblePoints: item.PossiblePoints,
		Source:         item.Source,
		RecordedAt:     item.RecordedAt.UTC(),
	}
}

func (m *gradeModel) toDomain() domain.ScoredItem {
	return domain.ScoredItem{
		ID:             m.ID,
		EnrollmentID:   m.EnrollmentID,
		Category:       domain.Category(m.Category),
		EarnedPoints:   m.EarnedPoints,
		PossiblePoints: m.PossiblePoints,
		Source:         m.Source,
		RecordedAt:     m.RecordedAt,
	}
}

// quizModel keeps the whole quiz document in data, the same layout the
// Postgres JSONB loader reads.
type quizModel struct {
	bun.BaseModel `bun:"table:quizzes"`

	ID    string      `bun:"id,pk"`
	Title string      `bun:"title"`
	Data  domain.Quiz `bun:"data,type:jsonb,notnull"`
}

type attemptModel struct {
	bun.BaseModel `bun:"table:quiz_attempts"`

	ID             string                           `bun:"id,pk"`
	QuizID         string                           `bun:"quiz_id,notnull"`
	EnrollmentID   string                           `bun:"enrollment_id,notnull"`
	AttemptNumber  int                              `bun:"attempt_number,notnull"`
	StartedAt      time.Time                        `bun:"started_at,notnull"`
	SubmittedAt    *time.Time                       `bun:"submitted_at,nullzero"`
	Answers        map[string]domain.Answer         `bun:"answers,type:jsonb"`
	Results        map[string]domain.QuestionResult `bun:"results,type:jsonb"`
	EarnedPoints   float64                          `bun:"earned_points,notnull"`
	PossiblePoints float64                          `bun:"possible_points,notnull"`
	Score          float64                          `bun:"score,notnull"`
}

func toAttemptModel(a domain.QuizAttempt) *attemptModel {
	m := &attemptModel{
		ID:             a.ID,
		QuizID:         a.QuizID,
		EnrollmentID:   a.EnrollmentID,
		AttemptNumber:  a.AttemptNumber,
		StartedAt:      a.StartedAt.UTC(),
		Answers:        a.Answers,
		Results:        a.Results,
		EarnedPoints:   a.EarnedPoints,
		PossiblePoints: a.PossiblePoints,
		Score:          a.Score,
	}
	if a.SubmittedAt != nil {
		at := a.SubmittedAt.UTC()
		m.SubmittedAt = &at
	}
	return m
}

func (m *attemptModel) toDomain() domain.QuizAttempt {
	return domain.QuizAttempt{
		ID:             m.ID,
		QuizID:         m.QuizID,
		EnrollmentID:   m.EnrollmentID,
		AttemptNumber:  m.AttemptNumber,
		StartedAt:      m.StartedAt,
		SubmittedAt:    m.SubmittedAt,
		Answers:        m.Answers,
		Results:        m.Results,
		EarnedPoints:   m.EarnedPoints,
		PossiblePoints: m.PossiblePoints,
		Score:          m.Score,
	}
}

type budgetModel struct {
	bun.BaseModel `bun:"table:budget_entries"`

	ID             string    `bun:"id,pk"`
	EnrollmentID   string    `bun:"enrollment_id,notnull"`
	MonthlyIncome  float64   `bun:"monthly_income,notnull"`
	Needs          float64   `bun:"needs,notnull"`
	Wants          float64   `bun:"wants,notnull"`
	Savings        float64   `bun:"savings,notnull"`
	ScenarioName   string    `bun:"scenario_name"`
	Notes          string    `bun:"notes"`
	IsHypothetical bool      `bun:"is_hypothetical,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull"`
}

func toBudgetModel(e domain.BudgetEntry) *budgetModel {
	return &budgetModel{
		ID:             e.ID,
		EnrollmentID:   e.EnrollmentID,
		MonthlyIncome:  e.MonthlyIncome,
		Needs:          e.Needs,
		Wants:          e.Wants,
		Savings:        e.Savings,
		ScenarioName:   e.ScenarioName,
		Notes:          e.Notes,
		IsHypothetical: e.IsHypothetical,
		CreatedAt:      e.CreatedAt.UTC(),
	}
}

func (m *budgetModel) toDomain() domain.BudgetEntry {
	return domain.BudgetEntry{
		BudgetAllocation: domain.BudgetAllocation{
			MonthlyIncome: m.MonthlyIncome,
			Needs:         m.Needs,
			Wants:         m.Wants,
			Savings:       m.Savings,
		},
		ID:             m.ID,
		EnrollmentID:   m.EnrollmentID,
		ScenarioName:   m.ScenarioName,
		Notes:          m.Notes,
		IsHypothetical: m.IsHypothetical,
		CreatedAt:      m.CreatedAt,
	}
}

type snapshotModel struct {
	bun.BaseModel `bun:"table:wealth_snapshots"`

	ID               string             `bun:"id,pk"`
	EnrollmentID     string             `bun:"enrollment_id,notnull"`
	RecordDate       time.Time          `bun:"record_date,notnull"`
	Assets           map[string]float64 `bun:"assets,type:jsonb"`
	Liabilities      map[string]float64 `bun:"liabilities,type:jsonb"`
	TotalAssets      float64            `bun:"total_assets,notnull"`
	TotalLiabilities float64            `bun:"total_liabilities,notnull"`
	NetWorth         float64            `bun:"net_worth,notnull"`
	Notes            string             `bun:"notes"`
	IsHypothetical   bool               `bun:"is_hypothetical,notnull"`
}

func toSnapshotModel(s domain.WealthSnapshot) *snapshotModel {
	return &snapshotModel{
		ID:               s.ID,
		EnrollmentID:     s.EnrollmentID,
		RecordDate:       s.RecordDate.UTC(),
		Assets:           s.Assets,
		Liabilities:      s.Liabilities,
		TotalAssets:      s.TotalAssets,
		TotalLiabilities: s.TotalLiabilities,
		NetWorth:         s.NetWorth,
		Notes:            s.Notes,
		IsHypothetical:   s.IsHypothetical,
	}
}

func (m *snapshotModel) toDomain() domain.WealthSnapshot {
	return domain.WealthSnapshot{
		ID:               m.ID,
		EnrollmentID:     m.EnrollmentID,
		RecordDate:       m.RecordDate,
		Assets:           m.Assets,
		Liabilities:      m.Liabilities,
		TotalAssets:      m.TotalAssets,
		TotalLiabilities: m.TotalLiabilities,
		NetWorth:         m.NetWorth,
		Notes:            m.Notes,
		IsHypothetical:   m.IsHypothetical,
	}
}
