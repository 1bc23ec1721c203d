package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sithvalentine/wealth-builder-mvp/internal/budget"
	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
	"github.com/sithvalentine/wealth-builder-mvp/internal/logger"
)

// BudgetService checks and stores 50/20/30 budget allocations.
type BudgetService struct {
	budgets BudgetRepository
	roster  RosterRepository
	now     func() time.Time
	log     *logger.Logger
}

func NewBudgetService(budgets BudgetRepository, roster RosterRepository, log *logger.Logger) *BudgetService {
	if log == nil {
		log = logger.Nop()
	}
	return &BudgetService{budgets: budgets, roster: roster, now: time.Now, log: log.With("service", "budget")}
}

// BudgetInput is a learner-submitted allocation.
type BudgetInput struct {
	domain.BudgetAllocation
	ScenarioName   string `json:"scenarioName,omitempty"`
	Notes          string `json:"notes,omitempty"`
	IsHypothetical bool   `json:"isHypothetical"`
}

// SavedBudget is a stored entry with its evaluation.
type SavedBudget struct {
	Entry      domain.BudgetEntry `json:"budget"`
	Evaluation budget.Evaluation  `json:"evaluation"`
}

// Calculate returns the recommended split of an income.
func (s *BudgetService) Calculate(income float64) (budget.Recommendation, error) {
	return budget.Calculate(income)
}

// Check evaluates an allocation without storing it.
func (s *BudgetService) Check(allocation domain.BudgetAllocation) (budget.Evaluation, error) {
	return budget.Evaluate(allocation)
}

// Create evaluates the allocation and stores it only if it is valid.
func (s *BudgetService) Create(ctx context.Context, enrollmentID string, in BudgetInput) (SavedBudget, error) {
	eval, err := budget.Evaluate(in.BudgetAllocation)
	if err != nil {
		return SavedBudget{}, err
	}
	if _, err := s.roster.GetEnrollment(ctx, enrollmentID); err != nil {
		return SavedBudget{}, err
	}
	entry := domain.BudgetEntry{
		BudgetAllocation: in.BudgetAllocation,
		ID:               uuid.NewString(),
		EnrollmentID:     enrollmentID,
		ScenarioName:     in.ScenarioName,
		Notes:            in.Notes,
		IsHypothetical:   in.IsHypothetical,
		CreatedAt:        s.now(),
	}
	if err := s.budgets.SaveBudget(ctx, entry); err != nil {
		return SavedBudget{}, fmt.Errorf("save budget: %w", err)
	}
	s.log.Info("budget saved", "budget", entry.ID, "enrollment", enrollmentID, "hypothetical", entry.IsHypothetical)
	return SavedBudget{Entry: entry, Evaluation: eval}, nil
}

// Get returns one entry of the enrollment with its evaluation.
func (s *BudgetService) Get(ctx context.Context, enrollmentID, entryID string) (SavedBudget, error) {
	entry, err := s.owned(ctx, enrollmentID, entryID)
	if err != nil {
		return SavedBudget{}, err
	}
	eval, err := budget.Evaluate(entry.BudgetAllocation)
	if err != nil {
		return SavedBudget{}, fmt.Errorf("stored budget %s: %w", entryID, err)
	}
	return SavedBudget{Entry: entry, Evaluation: eval}, nil
}

// List returns the enrollment's entries newest first.
func (s *BudgetService) List(ctx context.Context, enrollmentID string, includeHypothetical bool) ([]domain.BudgetEntry, error) {
	entries, err := s.budgets.ListBudgets(ctx, enrollmentID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	if includeHypothetical {
		return entries, nil
	}
	out := entries[:0:0]
	for _, e := range entries {
		if !e.IsHypothetical {
			out = append(out, e)
		}
	}
	return out, nil
}

// Delete removes one entry of the enrollment.
func (s *BudgetService) Delete(ctx context.Context, enrollmentID, entryID string) error {
	if _, err := s.owned(ctx, enrollmentID, entryID); err != nil {
		return err
	}
	if err := s.budgets.DeleteBudget(ctx, entryID); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	s.log.Info("budget deleted", "budget", entryID, "enrollment", enrollmentID)
	return nil
}

func (s *BudgetService) owned(ctx context.Context, enrollmentID, entryID string) (domain.BudgetEntry, error) {
	entry, err := s.budgets.GetBudget(ctx, entryID)
	if err != nil {
		return domain.BudgetEntry{}, err
	}
	if entry.EnrollmentID != enrollmentID {
		return domain.BudgetEntry{}, domain.ErrBudgetNotFound
	}
	return entry, nil
}
